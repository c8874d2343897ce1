package driver

import (
	"errors"
	"fmt"
	"strings"

	"lumen/interpreter-go/pkg/diag"
	"lumen/interpreter-go/pkg/parser"
)

// DiagnosticLocation references a source position for diagnostics.
type DiagnosticLocation struct {
	Path   string
	Line   int
	Column int
}

// ParserDiagnostic represents a syntax error in a loaded file.
type ParserDiagnostic struct {
	Message  string
	Location DiagnosticLocation
}

// ParserDiagnosticError wraps a diagnostic for error handling.
type ParserDiagnosticError struct {
	Diagnostic ParserDiagnostic
}

func (e *ParserDiagnosticError) Error() string {
	return e.Diagnostic.Message
}

// DescribeParserDiagnostic formats a parser diagnostic for CLI output.
func DescribeParserDiagnostic(d ParserDiagnostic) string {
	message := strings.TrimSpace(d.Message)
	location := formatDiagnosticLocation(d.Location)
	if location != "" {
		return fmt.Sprintf("parse: %s %s", location, message)
	}
	return "parse: " + message
}

// DescribeError formats any error the pipeline can produce, prefixed with
// the phase that raised it.
func DescribeError(err error, path string) string {
	if err == nil {
		return ""
	}
	var pde *ParserDiagnosticError
	if errors.As(err, &pde) {
		return DescribeParserDiagnostic(pde.Diagnostic)
	}
	var perr *parser.Error
	if errors.As(err, &perr) {
		return DescribeParserDiagnostic(parserDiagnostic(perr, path))
	}
	var de *diag.Error
	if errors.As(err, &de) {
		loc := DiagnosticLocation{Path: path, Line: de.Span.Start.Line, Column: de.Span.Start.Column}
		prefix := string(de.Phase)
		if prefix == "" {
			prefix = "error"
		}
		if location := formatDiagnosticLocation(loc); location != "" {
			return fmt.Sprintf("%s: %s %s: %s", prefix, location, de.Kind, de.Error())
		}
		return fmt.Sprintf("%s: %s: %s", prefix, de.Kind, de.Error())
	}
	return err.Error()
}

func parserDiagnostic(perr *parser.Error, path string) ParserDiagnostic {
	return ParserDiagnostic{
		Message:  perr.Message,
		Location: DiagnosticLocation{Path: path, Line: perr.Line, Column: perr.Column},
	}
}

func formatDiagnosticLocation(loc DiagnosticLocation) string {
	path := strings.TrimSpace(loc.Path)
	line := loc.Line
	column := loc.Column
	switch {
	case path != "" && line > 0 && column > 0:
		return fmt.Sprintf("%s:%d:%d", path, line, column)
	case path != "" && line > 0:
		return fmt.Sprintf("%s:%d", path, line)
	case path != "":
		return path
	case line > 0 && column > 0:
		return fmt.Sprintf("line %d, column %d", line, column)
	case line > 0:
		return fmt.Sprintf("line %d", line)
	default:
		return ""
	}
}
