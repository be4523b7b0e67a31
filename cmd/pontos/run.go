package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"github.com/mbrinkhoff/pontos/component"
	"github.com/mbrinkhoff/pontos/github"
	"github.com/mbrinkhoff/pontos/logger"
	"github.com/mbrinkhoff/pontos/observability"
	"github.com/mbrinkhoff/pontos/version"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// env is what a command runs against.
type env struct {
	cfg    *Config
	client *github.Client
	stdout io.Writer
	log    *logger.Logger
}

type command struct {
	usage string
	// api commands get a started GitHub client.
	api bool
	run func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{
	"runs":      {usage: "runs <owner/repo> [--workflow --actor --branch --event --status --created --limit]", api: true, run: runRuns},
	"artifacts": {usage: "artifacts <owner/repo> [--run <id>]", api: true, run: runArtifacts},
	"download":  {usage: "download <owner/repo> <artifact-id> <file>", api: true, run: runDownload},
	"dispatch":  {usage: "dispatch <owner/repo> <workflow> --ref <ref> [--input key=value]", api: true, run: runDispatch},
	"version":   {usage: "version verify <version|current> | version update <version> [--develop --force]", run: runVersion},
}

// errUsage marks errors caused by wrong arguments.
var errUsage = errors.New("usage")

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := pflag.NewFlagSet("pontos", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(stderr)
	configFile := global.StringP("config", "c", "", "path to config.yml")
	envFile := global.String("env-file", "", "path to a .env file")
	debug := global.Bool("debug", false, "enable debug logging")
	showVersion := global.Bool("version", false, "print the pontos version and exit")
	global.Usage = func() { printUsage(stderr, global) }

	if err := global.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		_, _ = fmt.Fprintf(stderr, "pontos: %v\n\n", err)
		printUsage(stderr, global)
		return exitUsage
	}
	if *showVersion {
		_, _ = fmt.Fprintln(stdout, version.Build().String())
		return exitOK
	}

	rest := global.Args()
	if len(rest) == 0 {
		printUsage(stderr, global)
		return exitUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n\n", rest[0])
		printUsage(stderr, global)
		return exitUsage
	}

	cfg, err := loadConfig(*configFile, *envFile, *debug)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "pontos: %v\n", err)
		return exitError
	}
	logger.Init(&cfg.Logging)
	log := logger.WithComponent(rest[0])

	e := &env{cfg: cfg, stdout: stdout, log: log}
	if err := execute(ctx, e, cmd, rest[1:]); err != nil {
		if errors.Is(err, errUsage) {
			_, _ = fmt.Fprintf(stderr, "pontos: %v\nusage: pontos %s\n", err, cmd.usage)
			return exitUsage
		}
		log.Error("command failed", logger.Fields(logger.FieldError, err.Error()))
		_, _ = fmt.Fprintf(stderr, "pontos: %v\n", err)
		return exitError
	}
	return exitOK
}

func execute(ctx context.Context, e *env, cmd command, args []string) error {
	if !cmd.api {
		return cmd.run(ctx, e, args)
	}

	build := version.Build()
	registry := component.NewRegistry()
	telemetry := observability.NewTelemetry(e.cfg.Telemetry, e.cfg.Name, build.Version, e.cfg.Environment)
	if err := registry.Register(telemetry); err != nil {
		return err
	}

	// Instruments created from the global meter are forwarded to the
	// provider installed when telemetry starts.
	metrics, err := observability.NewMetrics(observability.Meter("pontos"))
	if err != nil {
		return err
	}
	opts := []github.Option{github.WithLogger(e.log), github.WithMetrics(metrics)}
	if e.cfg.Telemetry.Enabled {
		opts = append(opts, github.WithTracing())
	}
	client, err := github.New(e.cfg.GitHub, opts...)
	if err != nil {
		return err
	}
	if err := registry.Register(client); err != nil {
		return err
	}

	return registry.Run(ctx, func(ctx context.Context) error {
		if !registry.Healthy(ctx) {
			return errors.New("github client is not available")
		}
		e.client = client
		return cmd.run(ctx, e, args)
	})
}

func printUsage(w io.Writer, global *pflag.FlagSet) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("usage: pontos [flags] <command> [args]\n\ncommands:\n")
	for _, name := range names {
		b.WriteString("  " + commands[name].usage + "\n")
	}
	b.WriteString("\nflags:\n")
	b.WriteString(global.FlagUsages())
	_, _ = io.WriteString(w, b.String())
}
