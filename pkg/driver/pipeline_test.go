package driver

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lumen/interpreter-go/pkg/diag"
)

func runSource(t *testing.T, cfg *Config, source string) (*Result, error) {
	t.Helper()
	prog, err := ParseSource([]byte(source), "test.lm")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return NewSession(cfg, nil).Run(prog)
}

func TestRunAbortsOnFirstTypeError(t *testing.T) {
	result, err := runSource(t, DefaultConfig(), "(print 1)\n(print missing)\n(print 2)")
	if !errors.Is(err, diag.ErrUnboundName) {
		t.Fatalf("expected unbound name, got %v", err)
	}
	if len(result.Output) != 0 {
		t.Fatalf("nothing should run when checking fails, got %v", result.Output)
	}
}

func TestRunContinueOnErrorSkipsFailedStatements(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContinueOnError = true
	source := `
(define x 1)
(print (+ x true))
(define y (+ x 1))
(print y)
(print z)
(print (+ y 1))`
	result, err := runSource(t, cfg, source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"2", "3"}, result.Output); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	var indexes []int
	for _, f := range result.Failures {
		indexes = append(indexes, f.Index)
	}
	if diff := cmp.Diff([]int{1, 4}, indexes); diff != "" {
		t.Fatalf("failure indexes mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(result.Failures[0].Err, diag.ErrTypeMismatch) || !errors.Is(result.Failures[1].Err, diag.ErrUnboundName) {
		t.Fatalf("unexpected failures %v", result.Failures)
	}
}

func TestRunContinueOnRuntimeError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContinueOnError = true
	source := `
(data List Nil (Cons Nat List))
(print (match Nil ((Cons _ _) 1)))
(print 5)`
	result, err := runSource(t, cfg, source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"5"}, result.Output); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if len(result.Failures) != 1 || !errors.Is(result.Failures[0].Err, diag.ErrNonExhaustiveMatch) {
		t.Fatalf("unexpected failures %v", result.Failures)
	}
}

func TestRunWithoutTypecheckFailsAtRuntime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Typecheck = false
	result, err := runSource(t, cfg, "(print 1)\n(print (+ 1 true))\n(print 2)")
	var de *diag.Error
	if !errors.As(err, &de) || de.Kind != diag.TypeMismatch || de.Phase != diag.PhaseRuntime {
		t.Fatalf("expected runtime type mismatch, got %v", err)
	}
	if diff := cmp.Diff([]string{"1"}, result.Output); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunWithoutPrelude(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Prelude = false
	_, err := runSource(t, cfg, "(print (add 1 2))")
	if !errors.Is(err, diag.ErrUnboundName) {
		t.Fatalf("expected unbound name without prelude, got %v", err)
	}
}

func TestCheckDoesNotExecute(t *testing.T) {
	prog, err := ParseSource([]byte("(print 1)\n(print (fst 2))"), "test.lm")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	result, err := NewSession(nil, nil).Check(prog)
	if !errors.Is(err, diag.ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
	if len(result.Output) != 0 {
		t.Fatalf("check must not print, got %v", result.Output)
	}
}

func TestSessionKeepsStateAcrossInputs(t *testing.T) {
	session := NewSession(nil, nil)
	inputs := []struct {
		source string
		want   []string
	}{
		{"(data List Nil (Cons Nat List))", nil},
		{"(define xs (Cons 1 Nil))", nil},
		{"xs", []string{"(Cons 1 (Nil))"}},
		{"(assign xs Nil)\n(print xs)", []string{"(Nil)"}},
		{"(add 40 2)", []string{"42"}},
	}
	for _, in := range inputs {
		result, err := session.RunSource([]byte(in.source), "<repl>")
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in.source, err)
		}
		if diff := cmp.Diff(in.want, result.Output); diff != "" {
			t.Fatalf("%q: output mismatch (-want +got):\n%s", in.source, diff)
		}
	}
	if _, err := session.RunSource([]byte("(print"), "<repl>"); err == nil {
		t.Fatalf("expected parse error")
	} else {
		var pde *ParserDiagnosticError
		if !errors.As(err, &pde) || pde.Diagnostic.Location.Path != "<repl>" {
			t.Fatalf("expected parser diagnostic for <repl>, got %v", err)
		}
	}
}

func TestSessionRollsBackFailedInput(t *testing.T) {
	session := NewSession(nil, nil)
	steps := []struct {
		source string
		want   []string
		kind   diag.Kind
		parse  bool
	}{
		{"(data L Nil)\n(print missing)", nil, diag.UnboundName, false},
		{"(print Nil)", nil, diag.UnboundName, false},
		{"(data L Nil)\n(print Nil)", []string{"(Nil)"}, 0, false},
		{"(define x 1)", nil, 0, false},
		{"(print 9)\n(define y (match x (2 3)))", []string{"9"}, diag.NonExhaustiveMatch, false},
		{"(print y)", nil, diag.UnboundName, false},
		{"(define y 5)\n(print y)", []string{"5"}, 0, false},
		{"(data M (Box Nat))\n(print (lambda x Nat))", nil, 0, true},
		{"(print (Box 1))", nil, diag.UnboundName, false},
	}
	for _, step := range steps {
		result, err := session.RunSource([]byte(step.source), "<repl>")
		var output []string
		if result != nil {
			output = result.Output
		}
		if diff := cmp.Diff(step.want, output); diff != "" {
			t.Fatalf("%q: output mismatch (-want +got):\n%s", step.source, diff)
		}
		if step.parse {
			var pde *ParserDiagnosticError
			if !errors.As(err, &pde) {
				t.Fatalf("%q: expected parse error, got %v", step.source, err)
			}
			continue
		}
		if got := diag.KindOf(err); got != step.kind {
			t.Fatalf("%q: expected %v, got %v", step.source, step.kind, err)
		}
	}
	if diff := cmp.Diff([]string{"L = Nil"}, session.DataTypes()); diff != "" {
		t.Fatalf("data types mismatch (-want +got):\n%s", diff)
	}
}

func TestContinueOnErrorRollsBackRuntimeFailure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContinueOnError = true
	source := `
(define x 1)
(define y (match x (2 3)))
(print y)
(define y 4)
(print y)`
	result, err := runSource(t, cfg, source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"4"}, result.Output); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if len(result.Failures) != 2 || !errors.Is(result.Failures[1].Err, diag.ErrUnboundName) {
		t.Fatalf("unexpected failures %v", result.Failures)
	}
}

func TestCheckKeepsNoBindings(t *testing.T) {
	session := NewSession(nil, nil)
	prog, err := ParseSource([]byte("(define z 1)"), "test.lm")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := session.Check(prog); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := session.RunSource([]byte("(print z)"), "<repl>"); !errors.Is(err, diag.ErrUnboundName) {
		t.Fatalf("expected z to be unbound after a check, got %v", err)
	}
}

func TestRunLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.ContinueOnError = true
	cfg.LogLevel = "debug"
	prog, err := ParseSource([]byte("(print x)\n(print 1)"), "test.lm")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := NewSession(cfg, NewLogger(&buf, cfg.LogLevel)).Run(prog); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logs := buf.String()
	for _, want := range []string{"check statement", "typecheck error", "skipping statement", "execute statement"} {
		if !strings.Contains(logs, want) {
			t.Fatalf("expected %q in logs:\n%s", want, logs)
		}
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.lm")
	if err := os.WriteFile(path, []byte("; sums\n(define n 4)\n(print (+ n n))\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	result, err := RunFile(path, nil, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{"8"}, result.Output); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if _, err := RunFile(filepath.Join(dir, "missing.lm"), nil, nil); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestSessionListsNamesAndData(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Prelude = false
	session := NewSession(cfg, nil)
	if _, err := session.RunSource([]byte("(data List Nil (Cons Nat List))\n(define n 1)"), "<repl>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Cons : (-> Nat List List)", "Nil : List", "n : Nat"}
	if diff := cmp.Diff(want, session.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"List = Nil | Cons"}, session.DataTypes()); diff != "" {
		t.Fatalf("data types mismatch (-want +got):\n%s", diff)
	}
}
