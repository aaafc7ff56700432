package annotate

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/gitcommit/internal/materialize"
)

// Request describes one run.
type Request struct {
	Summary string
	Body    string
	Mode    materialize.Mode
	// Remove applies the staged rewrites to the working tree after confirmation.
	Remove bool
	// DryRun renders the message without writing any file.
	DryRun bool
}

// Validate checks the request.
func (r Request) Validate() error {
	modes := make([]any, 0, len(materialize.Modes))
	for _, m := range materialize.Modes {
		if m != materialize.ModeInPlace {
			modes = append(modes, m)
		}
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Summary, validation.Required),
		validation.Field(&r.Mode, validation.Required, validation.In(modes...)),
		validation.Field(&r.Remove, validation.When(r.Remove && r.Mode != materialize.ModeStaging,
			validation.By(func(any) error {
				return errors.New("marker removal requires staging mode")
			}))),
	)
}
