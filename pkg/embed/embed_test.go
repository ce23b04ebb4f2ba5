package nerd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEval(t *testing.T) {
	tests := []struct {
		code string
		want any
	}{
		{"42", int64(42)},
		{"-17", int64(-17)},
		{"yes", true},
		{"no", false},
		{"nil", nil},
		{`\a`, byte('a')},
		{`\newline`, byte('\n')},
		{`"hello"`, "hello"},
		{`"a\tb"`, "a\tb"},
		{"1 2 3", int64(3)},
		{"", nil},
	}

	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer v.Close()

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := v.Eval(tt.code)
			if err != nil {
				t.Fatalf("Eval(%q): %v", tt.code, err)
			}
			if got != tt.want {
				t.Errorf("Eval(%q) = %v (%T), want %v (%T)", tt.code, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestEvalError(t *testing.T) {
	var diags []string
	v, err := Open(Config{Output: func(m string) { diags = append(diags, m) }})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer v.Close()

	if _, err := v.Eval(`"unterminated`); err == nil {
		t.Fatal("Eval succeeded on bad input")
	}
	if len(diags) != 1 || !strings.Contains(diags[0], "<eval>") {
		t.Errorf("diagnostics = %v", diags)
	}
}

func TestEvalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.nerd")
	if err := os.WriteFile(path, []byte("; a program\n42\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer v.Close()

	got, err := v.EvalFile(path)
	if err != nil {
		t.Fatalf("EvalFile: %v", err)
	}
	if got != int64(42) {
		t.Errorf("EvalFile = %v, want 42", got)
	}
}

func TestStringOutlivesClose(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := v.Eval(`"survivor"`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	v.Close()

	if got != "survivor" {
		t.Errorf("string after Close = %v", got)
	}
}

func TestIndependentInstances(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Close()

	if _, err := a.Eval(`"in a"`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	a.Close()

	got, err := b.Eval("7")
	if err != nil {
		t.Fatalf("Eval after closing sibling: %v", err)
	}
	if got != int64(7) {
		t.Errorf("Eval = %v, want 7", got)
	}
}
