// Package materialize writes rewritten files to their destination: nowhere,
// a staging area, a debug copy next to the original, or over the original.
package materialize

import "fmt"

// Mode selects where a rewritten file goes.
type Mode string

const (
	ModeSuppressed  Mode = "suppressed"
	ModeStaging     Mode = "staging"
	ModeDebugSuffix Mode = "debug-suffix"
	ModeInPlace     Mode = "in-place"
)

// Modes lists every recognized mode.
var Modes = []Mode{ModeSuppressed, ModeStaging, ModeDebugSuffix, ModeInPlace}

// ParseMode converts a configuration value into a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown materialize mode %q", s)
}

func (m Mode) String() string { return string(m) }
