// Package command implements the revm command line.
package command

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/coregx/revm"
	"github.com/coregx/revm/meta"
)

// Flag names. Each can also be set in the --config file or through a
// REVM_* environment variable, e.g. REVM_MAX_THREADS.
const (
	flagEngine     = "engine"
	flagMaxThreads = "max-threads"
	flagTrace      = "trace"
	flagAnchored   = "anchored"
	flagLogLevel   = "log-level"
	flagLogFmt     = "log-fmt"
	flagConfig     = "config"
)

// engineAll runs every engine and cross-checks them.
const engineAll = "all"

// errFailed is returned once the failures have already been reported.
var errFailed = errors.New("check failed")

// usageError marks errors in how revm was invoked; they exit with status 2.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

// app holds the state shared by the root command and its subcommands.
type app struct {
	fs     afero.Fs
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// NewRootCommand builds the revm command. Files, including the --config
// file, are read through fs.
func NewRootCommand(fs afero.Fs, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		fs:     fs,
		v:      viper.New(),
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.DiscardHandler),
	}

	root := &cobra.Command{
		Use:   "revm <regexp> <string>...",
		Short: "revm compiles a regular expression to bytecode and runs it on every engine.",
		Long: "`revm` parses a regular expression, prints its syntax tree and bytecode program, " +
			"then runs the program against each string on the recursive, loop, backtrack, " +
			"thompson and pikevm engines and prints a table of their results.\n\n" +
			"With the default --engine=all the engines are cross-checked and revm exits " +
			"with status 1 if any two disagree.",
		Args:              usageArgs(cobra.MinimumNArgs(1)),
		PersistentPreRunE: a.setup,
		RunE:              a.runMatch,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := root.PersistentFlags()
	registerFlags(flags)

	a.v.SetFs(fs)
	a.v.SetEnvPrefix("REVM")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(flags); err != nil {
		panic(err)
	}

	root.AddCommand(newProgCommand(a), newCheckCommand(a))
	return root
}

// registerFlags adds the flags shared by every revm command to fs.
func registerFlags(fs *pflag.FlagSet) {
	fs.String(flagEngine, engineAll, "engine to run: all, recursive, loop, backtrack, thompson or pikevm")
	fs.Int(flagMaxThreads, meta.DefaultConfig().MaxBacktrackThreads, "thread limit of the backtrack engine")
	fs.Bool(flagTrace, false, "write a step trace of every search to stderr")
	fs.Bool(flagAnchored, false, "match only at the start of each string")
	fs.String(flagLogLevel, "warn", "log level: debug, info, warn or error")
	fs.String(flagLogFmt, "tint", "log format: text, json or tint")
	fs.String(flagConfig, "", "file (YAML, JSON or TOML) with values for the flags above")
}

// Execute runs revm with args and returns the process exit status:
// 0 on success, 1 for bad patterns and failed checks, 2 for usage errors.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(afero.NewOsFs(), stdout, stderr)
	return run(root, args, stderr)
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	cmd, err := root.ExecuteC()
	if err == nil {
		return 0
	}

	var uerr usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(stderr, "revm: %v\n\n%s", err, cmd.UsageString())
		return 2
	}
	if !errors.Is(err, errFailed) {
		fmt.Fprintf(stderr, "revm: %v\n", err)
	}
	return 1
}

// usageArgs reports argument count errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// setup reads the config file and installs the logger.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	if path := a.v.GetString(flagConfig); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return usageError{fmt.Errorf("reading config %s: %w", path, err)}
		}
	}

	logger, err := newLogger(a.stderr, a.v.GetString(flagLogLevel), a.v.GetString(flagLogFmt))
	if err != nil {
		return usageError{err}
	}
	a.logger = logger
	return nil
}

// engineConfig builds the engine configuration from flags, config file and
// environment. all reports whether every engine should run.
func (a *app) engineConfig() (config meta.Config, all bool, err error) {
	config = revm.DefaultConfig()
	config.MaxBacktrackThreads = a.v.GetInt(flagMaxThreads)
	config.Anchored = a.v.GetBool(flagAnchored)
	if a.v.GetBool(flagTrace) {
		config.Trace = a.stderr
	}

	name := a.v.GetString(flagEngine)
	all = strings.EqualFold(strings.TrimSpace(name), engineAll)
	if !all {
		config.Strategy, err = meta.ParseStrategy(name)
		if err != nil {
			return config, false, usageError{err}
		}
	}
	if err := config.Validate(); err != nil {
		return config, false, usageError{err}
	}
	return config, all, nil
}

// runMatch prints the tree and program of args[0], then the results of
// every engine on each remaining argument.
func (a *app) runMatch(_ *cobra.Command, args []string) error {
	config, all, err := a.engineConfig()
	if err != nil {
		return err
	}

	pattern := args[0]
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return err
	}
	a.logger.Debug("compiled pattern",
		"pattern", pattern,
		"instructions", engine.Program().Len(),
		"groups", engine.NumSubexp(),
		"literal_fast_path", engine.HasLiteralFastPath())

	fmt.Fprintln(a.stdout, engine.AST())
	fmt.Fprint(a.stdout, engine.Program())

	failed := false
	for _, input := range args[1:] {
		var results []meta.Result
		if all {
			results = engine.RunAll(input)
		} else {
			results = []meta.Result{engine.Run(config.Strategy, input)}
		}

		fmt.Fprintf(a.stdout, "\n%q\n", input)
		if err := writeResults(a.stdout, results); err != nil {
			return err
		}

		for _, r := range results {
			if r.Err != nil {
				a.logger.Warn("engine failed", "engine", r.Strategy, "input", input, "err", r.Err)
			}
		}
		if !all {
			continue
		}
		if err := engine.CheckResults(input, results); err != nil {
			a.logger.Error("engines disagree", "pattern", pattern, "input", input, "err", err)
			failed = true
		}
	}

	if failed {
		return errFailed
	}
	return nil
}
