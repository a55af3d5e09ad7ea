// Command asn1go parses, checks and compiles ASN.1 modules into Go types.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/golangsnmp/goasn1"
)

// Exit codes.
const (
	exitOK    = 0 // success
	exitError = 1 // user error or processing failure
)

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, c *cli, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
	minArgs int
}

// cli holds the global flags and output streams shared by commands.
type cli struct {
	verbose    int
	includes   []string
	searchPath bool

	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}
	code := exitOK

	rootCmd := &cobra.Command{
		Use:           "asn1go [options] COMMAND",
		Short:         "Compile ASN.1 modules into Go types",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		fmt.Fprint(stderr, cmd.UsageString())
		code = exitError
		return nil
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&c.verbose, "verbose", "v", "log to stderr (-v debug, -vv trace)")
	flags.StringArrayVarP(&c.includes, "include", "I", nil, "directory searched recursively for imported modules (repeatable)")
	flags.BoolVar(&c.searchPath, "search-path", false, "also search $"+goasn1.PathEnv+" and the shared module directories")

	commands := []command{
		&cmdCheck{},
		&cmdGenerate{},
		&cmdVersion{},
	}
	for _, cmd := range commands {
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
			Args:  cobra.MinimumNArgs(help.minArgs),
			RunE: func(_ *cobra.Command, argv []string) error {
				code = cmd.run(ctx, c, argv)
				return nil
			},
		}
		cmd.flags(cobraCmd.Flags())
		rootCmd.AddCommand(cobraCmd)
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		c.printError("%v", err)
		return exitError
	}
	return code
}

func (c *cli) logger() *slog.Logger {
	if c.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.verbose >= 2 {
		level = goasn1.LevelTrace
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func (c *cli) options() []goasn1.Option {
	if logger := c.logger(); logger != nil {
		return []goasn1.Option{goasn1.WithLogger(logger)}
	}
	return nil
}

// load resolves the modules of files, or the named modules when names is
// set, looking up imports in dirs, the -I directories and optionally the
// search path. With neither files nor names, every module found is loaded.
func (c *cli) load(ctx context.Context, files, dirs, names []string) ([]*goasn1.Module, error) {
	var sources []goasn1.Source
	if len(files) > 0 {
		sources = append(sources, goasn1.Files(files, goasn1.WithNoHeuristic()))
	}
	for _, dir := range slices.Concat(dirs, c.includes) {
		src, err := goasn1.DirTree(dir)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if c.searchPath {
		sources = append(sources, goasn1.SearchPath())
	}
	if len(sources) == 0 {
		return nil, goasn1.ErrNoSources
	}
	src := goasn1.Multi(sources...)

	if len(names) == 0 && len(files) == 0 {
		return goasn1.Load(ctx, src, c.options()...)
	}
	if len(names) == 0 {
		var err error
		if names, err = moduleNames(files); err != nil {
			return nil, err
		}
	}
	return goasn1.LoadModules(ctx, names, src, c.options()...)
}

// moduleNames returns the names of the modules defined in files.
func moduleNames(files []string) ([]string, error) {
	var names []string
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		mods, err := goasn1.Parse(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for _, m := range mods {
			names = append(names, m.Name)
		}
	}
	return names, nil
}

// printErrors prints each line of a joined error.
func (c *cli) printErrors(err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		c.printError("%s", line)
	}
}

func (c *cli) printError(format string, args ...any) {
	fmt.Fprintf(c.stderr, "error: "+format+"\n", args...)
}

type cmdVersion struct{}

func (*cmdVersion) help() *commandHelp {
	return &commandHelp{
		usage:   "version",
		summary: "Show version",
	}
}

func (*cmdVersion) flags(*pflag.FlagSet) {}

func (*cmdVersion) run(_ context.Context, c *cli, _ []string) int {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Fprintf(c.stdout, "asn1go %s\n", version)
	return exitOK
}
