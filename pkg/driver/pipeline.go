package driver

import (
	"fmt"
	"log/slog"
	"strings"

	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/decls"
	"lumen/interpreter-go/pkg/interpreter"
	"lumen/interpreter-go/pkg/parser"
	"lumen/interpreter-go/pkg/runtime"
	"lumen/interpreter-go/pkg/typechecker"
)

// Failure is a top-level statement that was skipped under continue_on_error.
type Failure struct {
	Index     int
	Statement ast.Statement
	Err       error
}

// Result collects what a run printed and which statements failed.
type Result struct {
	Output   []string
	Failures []Failure
}

// Session keeps the checker context, runtime environment and parser state
// across runs, so a REPL can feed it one input at a time.
type Session struct {
	cfg     *Config
	logger  *slog.Logger
	parser  *parser.ProgramParser
	checker *typechecker.Checker
	ctx     *typechecker.Context
	interp  *interpreter.Interpreter
	env     *runtime.Environment
}

// NewSession prepares an empty session. A nil cfg uses DefaultConfig and a
// nil logger discards output.
func NewSession(cfg *Config, logger *slog.Logger) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = NewLogger(nil, cfg.LogLevel)
	}
	var (
		types  map[string]ast.Type
		values map[string]runtime.Value
	)
	if cfg.Prelude {
		types = interpreter.PreludeTypes()
		values = interpreter.PreludeValues()
	}
	return &Session{
		cfg:     cfg,
		logger:  logger,
		parser:  parser.NewProgramParser(),
		checker: typechecker.New(),
		ctx:     typechecker.NewContext(types),
		interp:  interpreter.New(),
		env:     runtime.NewEnvironment(values),
	}
}

// sessionState is a copy of everything running a statement can change.
type sessionState struct {
	types   map[string]ast.Type
	values  map[string]runtime.Value
	checked *decls.Registry
	defined *decls.Registry
}

func (s *Session) save() sessionState {
	return sessionState{
		types:   s.ctx.Snapshot(),
		values:  s.env.Snapshot(),
		checked: s.checker.Constructors().Clone(),
		defined: s.interp.Constructors().Clone(),
	}
}

// restore rolls the checker, the runtime and the parser back to st. The
// parser only keeps the constructors that were actually declared at runtime.
func (s *Session) restore(st sessionState) {
	s.ctx.Restore(st.types)
	s.env.Restore(st.values)
	s.checker.Constructors().Restore(st.checked)
	s.interp.Constructors().Restore(st.defined)
	s.parser.SetConstructors(s.interp.Constructors().Arities())
}

// Run checks the whole program (when enabled) and then executes it. Without
// continue_on_error the first failure aborts the run and rolls the session
// back to where it was before; the output printed so far is still returned.
// With continue_on_error each statement is checked and executed in turn, and
// a failing statement is rolled back and skipped.
func (s *Session) Run(prog *ast.Program) (*Result, error) {
	if prog == nil {
		return nil, fmt.Errorf("driver: program is nil")
	}
	if s.cfg.ContinueOnError {
		return s.runEach(prog), nil
	}
	saved := s.save()
	result := &Result{}
	if s.cfg.Typecheck {
		if _, err := s.check(prog); err != nil {
			s.restore(saved)
			return result, err
		}
	}
	for idx, stmt := range prog.Body {
		line, printed, err := s.execute(idx, stmt)
		if err != nil {
			s.restore(saved)
			return result, err
		}
		if printed {
			result.Output = append(result.Output, line)
		}
	}
	return result, nil
}

func (s *Session) runEach(prog *ast.Program) *Result {
	result := &Result{}
	for idx, stmt := range prog.Body {
		saved := s.save()
		line, printed, err := s.step(idx, stmt)
		if err != nil {
			s.restore(saved)
			s.logger.Info("skipping statement", "index", idx)
			result.Failures = append(result.Failures, Failure{Index: idx, Statement: stmt, Err: err})
			continue
		}
		if printed {
			result.Output = append(result.Output, line)
		}
	}
	return result
}

func (s *Session) step(idx int, stmt ast.Statement) (string, bool, error) {
	if s.cfg.Typecheck {
		s.logger.Debug("check statement", "index", idx, "kind", stmt.NodeType())
		if err := s.checker.CheckStatement(s.ctx, stmt); err != nil {
			s.logger.Warn("typecheck error", "index", idx, "error", err)
			return "", false, err
		}
	}
	return s.execute(idx, stmt)
}

func (s *Session) execute(idx int, stmt ast.Statement) (string, bool, error) {
	s.logger.Debug("execute statement", "index", idx, "kind", stmt.NodeType())
	line, printed, err := s.interp.ExecuteStatement(s.env, stmt)
	if err != nil {
		s.logger.Warn("runtime error", "index", idx, "error", err)
	}
	return line, printed, err
}

// Check typechecks prog without executing it. The session keeps none of the
// bindings the check introduced.
func (s *Session) Check(prog *ast.Program) (*Result, error) {
	if prog == nil {
		return nil, fmt.Errorf("driver: program is nil")
	}
	saved := s.save()
	defer s.restore(saved)
	failures, err := s.check(prog)
	return &Result{Failures: failures}, err
}

func (s *Session) check(prog *ast.Program) ([]Failure, error) {
	var failures []Failure
	for idx, stmt := range prog.Body {
		saved := s.save()
		s.logger.Debug("check statement", "index", idx, "kind", stmt.NodeType())
		if err := s.checker.CheckStatement(s.ctx, stmt); err != nil {
			s.logger.Warn("typecheck error", "index", idx, "error", err)
			if !s.cfg.ContinueOnError {
				return failures, err
			}
			s.restore(saved)
			s.logger.Info("skipping statement", "index", idx)
			failures = append(failures, Failure{Index: idx, Statement: stmt, Err: err})
		}
	}
	return failures, nil
}

// RunSource parses source with the session's parser and runs it. Forms that
// are not statements are printed. An input that fails leaves the session as
// it was before.
func (s *Session) RunSource(source []byte, path string) (*Result, error) {
	prog, err := s.parser.ParseInteractive(source)
	if err != nil {
		s.parser.SetConstructors(s.interp.Constructors().Arities())
		return nil, wrapParseError(err, path)
	}
	return s.Run(prog)
}

// RunFile loads and runs a program file.
func RunFile(path string, cfg *Config, logger *slog.Logger) (*Result, error) {
	prog, err := LoadProgram(path)
	if err != nil {
		return nil, err
	}
	return NewSession(cfg, logger).Run(prog.AST)
}

// CheckFile loads and typechecks a program file.
func CheckFile(path string, cfg *Config, logger *slog.Logger) (*Result, error) {
	prog, err := LoadProgram(path)
	if err != nil {
		return nil, err
	}
	return NewSession(cfg, logger).Check(prog.AST)
}

// Names lists the session's top-level bindings as "name : type".
func (s *Session) Names() []string {
	keys := s.ctx.Keys()
	out := make([]string, 0, len(keys))
	for _, name := range keys {
		typ, _ := s.ctx.Lookup(name)
		out = append(out, name+" : "+ast.RenderType(typ))
	}
	return out
}

// DataTypes lists the declared data types as "Id = Ctor | Ctor".
func (s *Session) DataTypes() []string {
	reg := s.checker.Constructors()
	ids := reg.DataTypes()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id+" = "+strings.Join(reg.ConstructorsOf(id), " | "))
	}
	return out
}
