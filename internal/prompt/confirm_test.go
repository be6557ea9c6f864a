package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirm_NonInteractive(t *testing.T) {
	c := &Confirmer{
		In:            bytes.NewBufferString("y\n"),
		IsInteractive: func() bool { return false },
	}
	ok, err := c.Confirm("Allow floating controls?", false)
	if err == nil {
		t.Fatalf("expected error for non-interactive confirm, got ok=%v", ok)
	}
}

func TestConfirm_AssumeYes(t *testing.T) {
	c := &Confirmer{
		In:            bytes.NewBufferString("n\n"),
		IsInteractive: func() bool { return false },
	}
	ok, err := c.Confirm("Allow floating controls?", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true with assumeYes")
	}
}

func TestConfirm_Interactive(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "y", input: "y\n", want: true},
		{name: "yes_upper", input: " YES \n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "eof", input: "", want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			c := &Confirmer{
				In:            bytes.NewBufferString(tc.input),
				Out:           &out,
				IsInteractive: func() bool { return true },
			}
			ok, err := c.Confirm("Allow?", false)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tc.want {
				t.Fatalf("ok = %v, want %v", ok, tc.want)
			}
			if !strings.Contains(out.String(), "Allow? (y/n): ") {
				t.Fatalf("question not printed: %q", out.String())
			}
		})
	}
}

func TestConfirm_SuccessiveAnswers(t *testing.T) {
	c := &Confirmer{
		In:            bytes.NewBufferString("y\nn\n"),
		IsInteractive: func() bool { return true },
	}
	first, err := c.Confirm("first?", false)
	if err != nil || !first {
		t.Fatalf("first = (%v, %v), want true", first, err)
	}
	second, err := c.Confirm("second?", false)
	if err != nil || second {
		t.Fatalf("second = (%v, %v), want false", second, err)
	}
}
