package driver

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"lumen/interpreter-go/pkg/diag"
)

func TestDescribeParserDiagnostic(t *testing.T) {
	_, err := ParseSource([]byte("(print 1)\n(print (+ 1 2)"), "main.lm")
	var pde *ParserDiagnosticError
	if !errors.As(err, &pde) {
		t.Fatalf("expected parser diagnostic, got %v", err)
	}
	got := DescribeError(err, "ignored.lm")
	if !strings.HasPrefix(got, "parse: main.lm:2:1 ") {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestDescribeCheckerError(t *testing.T) {
	prog, err := ParseSource([]byte("(print x)"), "main.lm")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = NewSession(nil, nil).Run(prog)
	got := DescribeError(err, "main.lm")
	if !strings.HasPrefix(got, "typecheck: main.lm:1:8 unbound name: ") {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestDescribeRuntimeErrorWithoutLocation(t *testing.T) {
	err := diag.InPhase(diag.Newf(diag.NonExhaustiveMatch, "no clause matched"), diag.PhaseRuntime)
	if got := DescribeError(err, ""); got != "runtime: non-exhaustive match: no clause matched" {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestDescribePlainError(t *testing.T) {
	if got := DescribeError(fmt.Errorf("boom"), "main.lm"); got != "boom" {
		t.Fatalf("unexpected description %q", got)
	}
	if got := DescribeError(nil, "main.lm"); got != "" {
		t.Fatalf("expected empty description, got %q", got)
	}
}

func TestFormatDiagnosticLocation(t *testing.T) {
	cases := []struct {
		loc  DiagnosticLocation
		want string
	}{
		{DiagnosticLocation{Path: "a.lm", Line: 3, Column: 4}, "a.lm:3:4"},
		{DiagnosticLocation{Path: "a.lm", Line: 3}, "a.lm:3"},
		{DiagnosticLocation{Path: "a.lm"}, "a.lm"},
		{DiagnosticLocation{Line: 3, Column: 4}, "line 3, column 4"},
		{DiagnosticLocation{}, ""},
	}
	for _, tc := range cases {
		if got := formatDiagnosticLocation(tc.loc); got != tc.want {
			t.Fatalf("%+v: expected %q, got %q", tc.loc, tc.want, got)
		}
	}
}
