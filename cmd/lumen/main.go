package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"lumen/interpreter-go/pkg/driver"
)

const cliToolVersion = "lumen 0.1.0-dev"

type executionMode int

const (
	modeRun executionMode = iota
	modeCheck
)

type cli struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	interactive bool
}

func main() {
	c := &cli{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
	os.Exit(c.run(os.Args[1:]))
}

func (c *cli) run(args []string) int {
	if len(args) == 0 {
		c.printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		c.printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(c.stdout, cliToolVersion)
		return 0
	case "run":
		return c.runEntry(args[1:], modeRun)
	case "check":
		return c.runEntry(args[1:], modeCheck)
	case "fixtures":
		return c.runFixtures(args[1:])
	case "repl":
		return c.runRepl(args[1:])
	default:
		return c.runEntry(args, modeRun)
	}
}

type commonFlags struct {
	config string
	trace  bool
}

func (c *cli) parseFlags(name string, args []string) (*commonFlags, []string, bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	opts := &commonFlags{}
	fs.StringVar(&opts.config, "config", "", "path to a "+driver.ConfigFileName+" file")
	fs.BoolVar(&opts.trace, "trace", false, "log every statement to stderr")
	if err := fs.Parse(args); err != nil {
		return nil, nil, false
	}
	return opts, fs.Args(), true
}

// loadConfig prefers --config, then the file next to entry, then the defaults.
func (c *cli) loadConfig(opts *commonFlags, entry string) (*driver.Config, error) {
	var (
		cfg *driver.Config
		err error
	)
	switch {
	case opts.config != "":
		cfg, err = driver.LoadConfig(opts.config)
	case entry != "":
		cfg, err = driver.FindConfig(entry)
	default:
		cfg = driver.DefaultConfig()
	}
	if err != nil {
		return nil, err
	}
	if opts.trace {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func (c *cli) logger(cfg *driver.Config) *slog.Logger {
	return driver.NewLogger(c.stderr, cfg.LogLevel)
}

func (c *cli) runEntry(args []string, mode executionMode) int {
	opts, rest, ok := c.parseFlags(modeCommandLabel(mode), args)
	if !ok {
		return 1
	}
	if len(rest) != 1 {
		fmt.Fprintf(c.stderr, "%s requires exactly one source file\n", modeCommandLabel(mode))
		return 1
	}
	entry := strings.TrimSpace(rest[0])
	cfg, err := c.loadConfig(opts, entry)
	if err != nil {
		fmt.Fprintf(c.stderr, "failed to load config: %v\n", err)
		return 1
	}
	logger := c.logger(cfg)

	if mode == modeCheck {
		result, err := driver.CheckFile(entry, cfg, logger)
		if err != nil {
			fmt.Fprintln(c.stderr, driver.DescribeError(err, entry))
			return 1
		}
		if c.reportFailures(result, entry) {
			return 1
		}
		fmt.Fprintln(c.stdout, "typecheck: ok")
		return 0
	}

	result, err := driver.RunFile(entry, cfg, logger)
	if result != nil {
		c.writeOutput(result.Output)
	}
	if err != nil {
		fmt.Fprintln(c.stderr, driver.DescribeError(err, entry))
		return 1
	}
	if c.reportFailures(result, entry) {
		return 1
	}
	return 0
}

func (c *cli) writeOutput(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(c.stdout, line)
	}
}

func (c *cli) reportFailures(result *driver.Result, path string) bool {
	if result == nil || len(result.Failures) == 0 {
		return false
	}
	for _, failure := range result.Failures {
		fmt.Fprintln(c.stderr, driver.DescribeError(failure.Err, path))
	}
	return true
}

func (c *cli) runFixtures(args []string) int {
	opts, rest, ok := c.parseFlags("fixtures", args)
	if !ok {
		return 1
	}
	if len(rest) == 0 {
		fmt.Fprintln(c.stderr, "fixtures requires a directory or suite file")
		return 1
	}
	cfg, err := c.loadConfig(opts, "")
	if err != nil {
		fmt.Fprintf(c.stderr, "failed to load config: %v\n", err)
		return 1
	}

	var files []string
	for _, target := range rest {
		info, err := os.Stat(target)
		if err != nil {
			fmt.Fprintf(c.stderr, "fixtures: %v\n", err)
			return 1
		}
		if !info.IsDir() {
			files = append(files, target)
			continue
		}
		found, err := driver.FixtureFiles(target)
		if err != nil {
			fmt.Fprintf(c.stderr, "%v\n", err)
			return 1
		}
		files = append(files, found...)
	}

	passed, failed, skipped := 0, 0, 0
	for _, file := range files {
		suite, err := driver.LoadFixtureSuite(file)
		if err != nil {
			fmt.Fprintf(c.stderr, "%v\n", err)
			return 1
		}
		for _, outcome := range driver.RunFixtureSuite(suite, cfg) {
			switch {
			case outcome.Skipped:
				skipped++
				fmt.Fprintf(c.stdout, "SKIP %s/%s\n", outcome.Suite, outcome.Case)
			case outcome.Passed():
				passed++
				fmt.Fprintf(c.stdout, "PASS %s/%s\n", outcome.Suite, outcome.Case)
			default:
				failed++
				fmt.Fprintf(c.stdout, "FAIL %s/%s: %s\n", outcome.Suite, outcome.Case, outcome.Problem)
			}
		}
	}
	fmt.Fprintf(c.stdout, "%d passed, %d failed, %d skipped\n", passed, failed, skipped)
	if failed > 0 {
		return 1
	}
	return 0
}

func (c *cli) runRepl(args []string) int {
	opts, rest, ok := c.parseFlags("repl", args)
	if !ok {
		return 1
	}
	if len(rest) > 0 {
		fmt.Fprintf(c.stderr, "unexpected arguments: %s\n", strings.Join(rest, " "))
		return 1
	}
	cfg, err := c.loadConfig(opts, "")
	if err != nil {
		fmt.Fprintf(c.stderr, "failed to load config: %v\n", err)
		return 1
	}
	// Every input runs on its own; an error never ends the session.
	cfg.ContinueOnError = false
	session := driver.NewSession(cfg, c.logger(cfg))

	scanner := bufio.NewScanner(c.stdin)
	var pending strings.Builder
	c.prompt(false)
	for scanner.Scan() {
		pending.WriteString(scanner.Text())
		pending.WriteByte('\n')
		if openParens(pending.String()) > 0 {
			c.prompt(true)
			continue
		}
		source := pending.String()
		pending.Reset()
		switch strings.TrimSpace(source) {
		case "":
		case ":names":
			c.writeOutput(session.Names())
		case ":data":
			c.writeOutput(session.DataTypes())
		default:
			result, err := session.RunSource([]byte(source), "<repl>")
			if result != nil {
				c.writeOutput(result.Output)
			}
			if err != nil {
				fmt.Fprintln(c.stderr, driver.DescribeError(err, ""))
			}
		}
		c.prompt(false)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(c.stderr, "repl: %v\n", err)
		return 1
	}
	if c.interactive {
		fmt.Fprintln(c.stdout)
	}
	return 0
}

func (c *cli) prompt(continuation bool) {
	if !c.interactive {
		return
	}
	if continuation {
		fmt.Fprint(c.stdout, "...   ")
		return
	}
	fmt.Fprint(c.stdout, "lumen> ")
}

// openParens counts unclosed brackets, ignoring strings and comments.
func openParens(text string) int {
	depth := 0
	inString, inComment, escaped := false, false, false
	for _, r := range text {
		switch {
		case inComment:
			if r == '\n' {
				inComment = false
			}
		case escaped:
			escaped = false
		case inString:
			switch r {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
		case r == '"':
			inString = true
		case r == ';':
			inComment = true
		case r == '(' || r == '[':
			depth++
		case r == ')' || r == ']':
			depth--
		}
	}
	return depth
}

func modeCommandLabel(mode executionMode) string {
	switch mode {
	case modeCheck:
		return "check"
	default:
		return "run"
	}
}

func (c *cli) printUsage() {
	fmt.Fprintln(c.stderr, "Usage:")
	fmt.Fprintln(c.stderr, "  lumen run [--config file] [--trace] <file.lm>")
	fmt.Fprintln(c.stderr, "  lumen <file.lm>")
	fmt.Fprintln(c.stderr, "  lumen check [--config file] <file.lm>")
	fmt.Fprintln(c.stderr, "  lumen fixtures [--config file] <dir|suite.yml> ...")
	fmt.Fprintln(c.stderr, "  lumen repl [--config file] [--trace]")
	fmt.Fprintln(c.stderr, "  lumen version")
}
