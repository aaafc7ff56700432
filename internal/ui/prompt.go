package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Interactor asks the user to confirm an action.
type Interactor interface {
	// Confirm asks a yes/no question. Anything but an explicit yes is no.
	Confirm(question string) bool
}

// DefaultInteractor prompts on Writer and reads the answer from Reader.
type DefaultInteractor struct {
	Reader io.Reader
	Writer io.Writer
}

// NewDefaultInteractor creates an interactor bound to stdin and stderr.
func NewDefaultInteractor() *DefaultInteractor {
	return &DefaultInteractor{Reader: os.Stdin, Writer: os.Stderr}
}

// Confirm implements Interactor.
func (i *DefaultInteractor) Confirm(question string) bool {
	fmt.Fprint(i.Writer, promptStyle.Render(question+" [y/N]: "))

	answer, err := bufio.NewReader(i.Reader).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// NonInteractive declines every question.
type NonInteractive struct{}

// Confirm implements Interactor.
func (NonInteractive) Confirm(string) bool { return false }

// AssumeYes accepts every question.
type AssumeYes struct{}

// Confirm implements Interactor.
func (AssumeYes) Confirm(string) bool { return true }
