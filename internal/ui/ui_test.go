package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestDefaultInteractor_Confirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"y", true},
		{"n\n", false},
		{"\n", false},
		{"yeah\n", false},
		{"", false},
	}
	for _, tc := range cases {
		t.Run(strings.TrimSpace(tc.input), func(t *testing.T) {
			var out bytes.Buffer
			i := &DefaultInteractor{Reader: strings.NewReader(tc.input), Writer: &out}
			if got := i.Confirm("Remove markers?"); got != tc.want {
				t.Errorf("Confirm(%q) = %v, want %v", tc.input, got, tc.want)
			}
			if !strings.Contains(out.String(), "Remove markers?") {
				t.Errorf("prompt not written: %q", out.String())
			}
		})
	}
}

func TestFixedInteractors(t *testing.T) {
	if (NonInteractive{}).Confirm("x") {
		t.Error("NonInteractive must decline")
	}
	if !(AssumeYes{}).Confirm("x") {
		t.Error("AssumeYes must accept")
	}
}

func TestPrinter_List(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)
	p.List("No markers found", []string{"a.py", "b.py"}, p.Warning)
	p.List("Empty", nil, p.Warning)

	got := out.String()
	for _, want := range []string{"No markers found (2):", "a.py", "b.py"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
	if strings.Contains(got, "Empty") {
		t.Error("empty list must print nothing")
	}
}
