package cli

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tracer/cli/cmd"
	"github.com/ardnew/tracer/pkg"
	"github.com/ardnew/tracer/profile"
	"github.com/ardnew/tracer/trace"
)

// CLI is the top-level command-line interface for tracer.
type CLI struct {
	Trace traceConfig `embed:"" group:"trace" prefix:"trace-"`
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Init cmd.Init `cmd:"" help:"Initialize configuration file"`
	Emit cmd.Emit `cmd:"" help:"Emit a message at one or more severities"`
	Dump cmd.Dump `cmd:"" help:"Hex dump input sources"`
	Repl cmd.Repl `cmd:"" help:"Drive a tracer interactively"`

	Demo cmd.Demo `cmd:"" default:"1" help:"Exercise every severity on the console and file media"`
}

// Run executes the tracer CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath + ".yaml",
		cmd.CacheIdentifier:  cachePath(),
		cmd.SeveritiesIdentifier: strings.Join(
			slices.Collect(trace.Severities()), ", ",
		),
		cmd.ColumnsIdentifier: strconv.Itoa(trace.DefaultColumns),
	}.
		CloneWith(cli.Trace.vars()).
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so that messages logged while parsing the
	// rest of the command line honor them.
	cli.Log.scan(args)

	groups := []kong.Group{cli.Trace.group(), cli.Log.group()}
	if profile.Enabled {
		groups = append(groups, cli.Pprof.group())
	}

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(groups),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath+".yaml"),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)

	// The registry replaces the default one, so the logger writes through it
	// from here on.
	reg, stop := cli.Trace.start(ctx)
	defer stop()

	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, reg, cmd.TraceOptions(cli.Trace.options()))
}
