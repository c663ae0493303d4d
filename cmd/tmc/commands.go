package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/MBogda/turing-machine-translator/internal/ast"
	"github.com/MBogda/turing-machine-translator/internal/cli"
	"github.com/MBogda/turing-machine-translator/internal/compiler"
	"github.com/MBogda/turing-machine-translator/internal/diagnostic"
	"github.com/MBogda/turing-machine-translator/internal/position"
	"github.com/MBogda/turing-machine-translator/internal/typechecker"
	"github.com/MBogda/turing-machine-translator/internal/watch"
)

// stdinName selects standard input in place of a file path.
const stdinName = "-"

type environment struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	config *cli.Config
	logger *cli.Logger
}

// commonFlags are shared by the tokens, parse and check subcommands. Flags
// set explicitly override the configuration file.
type commonFlags struct {
	configPath string
	verbose    bool
	debug      bool
	jsonOutput bool
	color      string
	maxDepth   int
}

// newFlagSet creates a flag set whose help output is the command's usage.
func (e *environment) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.Usage = func() {
		cli.PrintCommandUsage(e.stderr, toolName, commandInfo(name))
	}
	return fs
}

func (e *environment) flagSet(name string, cf *commonFlags) *flag.FlagSet {
	fs := e.newFlagSet(name)
	fs.StringVar(&cf.configPath, "config", cli.DefaultConfigFile, "configuration file")
	fs.BoolVar(&cf.verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&cf.debug, "debug", false, "enable debug output")
	fs.BoolVar(&cf.jsonOutput, "json", false, "write machine-readable JSON")
	fs.StringVar(&cf.color, "color", cli.ColorAuto, "colorize diagnostics: auto, always or never")
	fs.IntVar(&cf.maxDepth, "max-depth", 0, "maximum nesting depth accepted by the parser")
	return fs
}

// setup parses args, loads the configuration and checks the language
// constraint.
func (e *environment) setup(fs *flag.FlagSet, cf *commonFlags, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := cli.LoadConfig(cf.configPath)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "verbose":
			cfg.Verbose = cf.verbose
		case "debug":
			cfg.Debug = cf.debug
		case "json":
			cfg.JSON = cf.jsonOutput
		case "color":
			cfg.Color = cf.color
		case "max-depth":
			cfg.MaxNestingDepth = cf.maxDepth
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.CheckLanguage(compiler.LanguageVersion); err != nil {
		return err
	}

	e.config = cfg
	e.logger = cli.NewLogger(cfg.Verbose, cfg.Debug)
	e.logger.SetOutput(e.stderr)
	e.logger.Debug("config loaded from %s", cf.configPath)
	return nil
}

// fail reports a setup error and picks the exit code.
func (e *environment) fail(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	fmt.Fprintf(e.stderr, "Error: %v\n", err)
	return exitUsage
}

func (e *environment) options(src source) compiler.Options {
	return compiler.Options{Filename: src.name, MaxNestingDepth: e.config.MaxNestingDepth}
}

type source struct {
	name string
	text string
}

func (e *environment) load(path string) (source, error) {
	if path == stdinName {
		data, err := io.ReadAll(e.stdin)
		if err != nil {
			return source{}, fmt.Errorf("read stdin: %w", err)
		}
		return source{text: string(data)}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return source{}, fmt.Errorf("read %s: %w", path, err)
	}
	return source{name: path, text: string(data)}, nil
}

func (e *environment) renderer(src source) *diagnostic.Renderer {
	sources := position.NewSourceMap()
	sources.AddFile(src.name, src.text)
	var out *os.File
	if f, ok := e.stderr.(*os.File); ok {
		out = f
	}
	return diagnostic.NewRenderer(sources, e.config.UseColor(out))
}

func (e *environment) writeJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(e.stdout, string(data))
	return err
}

func (e *environment) version(args []string) int {
	fs := e.newFlagSet("version")
	jsonOutput := fs.Bool("json", false, "write machine-readable JSON")
	if err := fs.Parse(args); err != nil {
		return e.fail(err)
	}
	if err := cli.PrintVersion(e.stdout, toolName, cli.GetVersionInfo(compiler.LanguageVersion), *jsonOutput); err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return exitUsage
	}
	return exitOK
}

func (e *environment) initConfig(args []string) int {
	fs := e.newFlagSet("init")
	path := fs.String("config", cli.DefaultConfigFile, "configuration file to write")
	force := fs.Bool("force", false, "overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return e.fail(err)
	}

	if _, err := os.Stat(*path); err == nil && !*force {
		return e.fail(fmt.Errorf("%s already exists (use -force to overwrite)", *path))
	}
	if err := cli.DefaultConfig().SaveConfig(*path); err != nil {
		return e.fail(err)
	}
	fmt.Fprintf(e.stdout, "wrote %s\n", *path)
	return exitOK
}

type tokenRecord struct {
	Type    string `json:"type"`
	Literal string `json:"literal"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

func (e *environment) tokens(args []string) int {
	var cf commonFlags
	fs := e.flagSet("tokens", &cf)
	if err := e.setup(fs, &cf, args); err != nil {
		return e.fail(err)
	}
	if err := cli.ValidateArgs(fs.Args(), 1, commandInfo("tokens").Usage); err != nil {
		return e.fail(err)
	}

	src, err := e.load(fs.Arg(0))
	if err != nil {
		return e.fail(err)
	}
	result := compiler.Tokenize(src.text, e.options(src))

	if e.config.JSON {
		records := make([]tokenRecord, len(result.Tokens))
		for i, tok := range result.Tokens {
			records[i] = tokenRecord{Type: tok.Type.String(), Literal: tok.Literal, Line: tok.Pos.Line, Column: tok.Pos.Column}
		}
		if err := e.writeJSON(map[string]interface{}{
			"file":        src.name,
			"tokens":      records,
			"diagnostics": result.Diagnostics,
		}); err != nil {
			return e.fail(err)
		}
	} else {
		for _, tok := range result.Tokens {
			fmt.Fprintf(e.stdout, "%d:%d\t%s\t%q\n", tok.Pos.Line, tok.Pos.Column, tok.Type, tok.Literal)
		}
		e.renderer(src).WriteAll(e.stderr, result.Diagnostics.All())
	}

	if result.Diagnostics.HasErrors() {
		return exitDiagnostics
	}
	return exitOK
}

func (e *environment) parse(args []string) int {
	var cf commonFlags
	fs := e.flagSet("parse", &cf)
	if err := e.setup(fs, &cf, args); err != nil {
		return e.fail(err)
	}
	if err := cli.ValidateArgs(fs.Args(), 1, commandInfo("parse").Usage); err != nil {
		return e.fail(err)
	}

	src, err := e.load(fs.Arg(0))
	if err != nil {
		return e.fail(err)
	}
	result, parseErr := compiler.Parse(src.text, e.options(src))

	if e.config.JSON {
		out := fileReport{File: src.name, OK: parseErr == nil && result.OK(), Diagnostics: result.Diagnostics}
		if parseErr != nil {
			out.Error = parseErr.Error()
		} else {
			out.Tree = ast.Print(result.Program)
		}
		if err := e.writeJSON(out); err != nil {
			return e.fail(err)
		}
	} else {
		if parseErr == nil {
			fmt.Fprint(e.stdout, ast.Print(result.Program))
		}
		e.renderer(src).WriteAll(e.stderr, result.Diagnostics.All())
		if parseErr != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", parseErr)
		}
	}

	if parseErr != nil || result.Diagnostics.HasErrors() {
		return exitDiagnostics
	}
	return exitOK
}

// fileReport is the JSON record written for each parsed or checked file.
type fileReport struct {
	File        string                `json:"file"`
	OK          bool                  `json:"ok"`
	Error       string                `json:"error,omitempty"`
	Tree        string                `json:"tree,omitempty"`
	Symbols     map[string]string     `json:"symbols,omitempty"`
	Diagnostics *diagnostic.Collector `json:"diagnostics"`
}

type checked struct {
	src    source
	result *compiler.Result
	err    error
}

func (e *environment) check(args []string) int {
	var cf commonFlags
	fs := e.flagSet("check", &cf)
	watchFiles := fs.Bool("watch", false, "re-check files when they change")
	printTypes := fs.Bool("types", false, "print the annotated tree and symbol table")
	if err := e.setup(fs, &cf, args); err != nil {
		return e.fail(err)
	}
	if err := cli.ValidateArgs(fs.Args(), 1, commandInfo("check").Usage); err != nil {
		return e.fail(err)
	}
	paths := fs.Args()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := e.checkFiles(ctx, paths)
	if err != nil {
		return e.fail(err)
	}
	code := e.report(results, *printTypes)

	if !*watchFiles {
		return code
	}
	if err := e.watchAndCheck(ctx, paths, *printTypes); err != nil {
		return e.fail(err)
	}
	return code
}

// checkFiles compiles every path concurrently. Each run owns its own
// diagnostics, so the results are independent of scheduling order.
func (e *environment) checkFiles(ctx context.Context, paths []string) ([]checked, error) {
	out := make([]checked, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := e.load(path)
			if err != nil {
				return err
			}
			result, err := compiler.Analyze(src.text, e.options(src))
			out[i] = checked{src: src, result: result, err: err}
			e.logger.Debug("checked %s: %d diagnostic(s)", path, result.Diagnostics.Len())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// report writes the results in argument order and returns the exit code.
func (e *environment) report(results []checked, printTypes bool) int {
	code := exitOK
	reports := make([]fileReport, 0, len(results))

	for _, c := range results {
		failed := c.err != nil || c.result.Diagnostics.HasErrors()
		if failed {
			code = exitDiagnostics
		}

		if e.config.JSON {
			r := fileReport{File: c.src.name, OK: !failed, Diagnostics: c.result.Diagnostics}
			if c.err != nil {
				r.Error = c.err.Error()
			}
			if printTypes && c.result.Program != nil {
				r.Tree = ast.Print(c.result.Program)
				r.Symbols = symbolMap(c.result.Symbols)
			}
			reports = append(reports, r)
			continue
		}

		if printTypes && c.result.Program != nil {
			fmt.Fprint(e.stdout, ast.Print(c.result.Program))
			writeSymbols(e.stdout, c.result.Symbols)
		}
		e.renderer(c.src).WriteAll(e.stderr, c.result.Diagnostics.All())
		if c.err != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", c.err)
		}
		if !failed {
			e.logger.Info("%s: ok", displayName(c.src))
		} else {
			e.logger.Info("%s: %d diagnostic(s)", displayName(c.src), c.result.Diagnostics.Len())
		}
	}

	if e.config.JSON {
		if err := e.writeJSON(reports); err != nil {
			return e.fail(err)
		}
	}
	return code
}

// watchAndCheck re-checks each file after it changes until ctx is cancelled.
func (e *environment) watchAndCheck(ctx context.Context, paths []string, printTypes bool) error {
	byAbs := make(map[string]string, len(paths))
	for _, p := range paths {
		if p == stdinName {
			return fmt.Errorf("cannot watch standard input")
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		byAbs[abs] = p
	}

	w, err := watch.New(paths, 0)
	if err != nil {
		return err
	}
	defer w.Close()

	e.logger.Info("watching %d file(s)", len(paths))
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-w.Errors():
			e.logger.Warn("watch: %v", err)
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if ev.Op&(watch.OpRemove|watch.OpRename) != 0 && ev.Op&(watch.OpCreate|watch.OpWrite) == 0 {
				e.logger.Warn("%s was removed", byAbs[ev.Path])
				continue
			}
			e.logger.Debug("%s: %s", ev.Op, ev.Path)
			results, err := e.checkFiles(ctx, []string{byAbs[ev.Path]})
			if err != nil {
				e.logger.Error("%v", err)
				continue
			}
			e.report(results, printTypes)
		}
	}
}

func symbolMap(symbols *typechecker.SymbolTable) map[string]string {
	if symbols == nil {
		return nil
	}
	out := make(map[string]string, symbols.Len())
	for _, name := range symbols.Names() {
		typ, _ := symbols.Lookup(name)
		out[name] = typ.String()
	}
	return out
}

func writeSymbols(w io.Writer, symbols *typechecker.SymbolTable) {
	if symbols == nil {
		return
	}
	for _, name := range symbols.Names() {
		typ, _ := symbols.Lookup(name)
		fmt.Fprintf(w, "%s : %s\n", name, typ)
	}
}

func displayName(src source) string {
	if src.name == "" {
		return "<stdin>"
	}
	return src.name
}
