package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/parser"
)

// Program is a parsed source file.
type Program struct {
	Path string
	AST  *ast.Program
}

// LoadProgram reads and parses a Lumen source file. Syntax errors are
// returned as *ParserDiagnosticError carrying the file location.
func LoadProgram(path string) (*Program, error) {
	if path == "" {
		return nil, fmt.Errorf("loader: empty entry path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("loader: resolve entry path: %w", err)
	}
	source, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", absPath, err)
	}
	prog, err := ParseSource(source, absPath)
	if err != nil {
		return nil, err
	}
	return &Program{Path: absPath, AST: prog}, nil
}

// ParseSource parses in-memory source, attributing syntax errors to path.
func ParseSource(source []byte, path string) (*ast.Program, error) {
	prog, err := parser.ParseProgram(source)
	if err != nil {
		return nil, wrapParseError(err, path)
	}
	return prog, nil
}

func wrapParseError(err error, path string) error {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return &ParserDiagnosticError{Diagnostic: parserDiagnostic(perr, path)}
	}
	return err
}
