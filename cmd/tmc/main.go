// Command tmc is the command-line front end for the Turing-machine language.
// It tokenizes, parses and type-checks source files and reports diagnostics.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/MBogda/turing-machine-translator/internal/cli"
	"github.com/MBogda/turing-machine-translator/internal/parser"
)

const toolName = "tmc"

// Exit codes
const (
	exitOK          = 0
	exitDiagnostics = 1
	exitUsage       = 2
)

// sharedFlags are accepted by tokens, parse and check.
var sharedFlags = []cli.FlagInfo{
	{Name: "config", Usage: "configuration file", Default: cli.DefaultConfigFile},
	{Name: "verbose", Usage: "enable verbose output", Default: "false"},
	{Name: "debug", Usage: "enable debug output", Default: "false"},
	{Name: "json", Usage: "write machine-readable JSON", Default: "false"},
	{Name: "color", Usage: "colorize diagnostics: auto, always or never", Default: cli.ColorAuto},
	{Name: "max-depth", Usage: "maximum nesting depth accepted by the parser", Default: strconv.Itoa(parser.DefaultMaxNestingDepth)},
}

var commands = []cli.CommandInfo{
	{
		Name:        "tokens",
		Usage:       "tmc tokens [OPTIONS] <file>",
		Description: "Print the token stream of a source file",
		Examples:    []string{"tmc tokens prog.tm", "tmc tokens -json - < prog.tm"},
		Flags:       sharedFlags,
	},
	{
		Name:        "parse",
		Usage:       "tmc parse [OPTIONS] <file>",
		Description: "Print the syntax tree of a source file",
		Examples:    []string{"tmc parse prog.tm"},
		Flags:       sharedFlags,
	},
	{
		Name:        "check",
		Usage:       "tmc check [OPTIONS] <file>...",
		Description: "Type-check source files and report diagnostics",
		Examples:    []string{"tmc check a.tm b.tm", "tmc check -watch prog.tm"},
		Flags: append([]cli.FlagInfo{
			{Name: "watch", Usage: "re-check files when they change", Default: "false"},
			{Name: "types", Usage: "print the annotated tree and symbol table", Default: "false"},
		}, sharedFlags...),
	},
	{
		Name:        "version",
		Usage:       "tmc version [-json]",
		Description: "Print version information",
		Flags: []cli.FlagInfo{
			{Name: "json", Usage: "write machine-readable JSON", Default: "false"},
		},
	},
	{
		Name:        "init",
		Usage:       "tmc init [-config path] [-force]",
		Description: "Write a default configuration file",
		Flags: []cli.FlagInfo{
			{Name: "config", Usage: "configuration file to write", Default: cli.DefaultConfigFile},
			{Name: "force", Usage: "overwrite an existing file", Default: "false"},
		},
	},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		cli.PrintUsage(stderr, toolName, commands)
		return exitUsage
	}

	sub, rest := args[0], args[1:]
	env := &environment{stdin: stdin, stdout: stdout, stderr: stderr}

	switch sub {
	case "help", "-h", "-help", "--help":
		cli.PrintUsage(stdout, toolName, commands)
		return exitOK
	case "version", "-v", "--version":
		return env.version(rest)
	case "tokens":
		return env.tokens(rest)
	case "parse":
		return env.parse(rest)
	case "check":
		return env.check(rest)
	case "init":
		return env.initConfig(rest)
	default:
		fmt.Fprintf(stderr, "unknown subcommand: %s\n", sub)
		cli.PrintUsage(stderr, toolName, commands)
		return exitUsage
	}
}

func commandInfo(name string) cli.CommandInfo {
	for _, c := range commands {
		if c.Name == name {
			return c
		}
	}
	return cli.CommandInfo{Name: name}
}
