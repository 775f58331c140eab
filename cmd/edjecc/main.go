// Command edjecc compiles .edc theme sources into a single .edj container
// artifact, following the teacher's urfave/cli/v3 app shape: a root command
// carries shared flags and logging setup, subcommands do the actual work.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"edjecc/compiler"
	"edjecc/config"
	"edjecc/edje"
	"edjecc/imports"
	"edjecc/serializer"
	"edjecc/state"
)

const version = "0.1.0"

// initializeAppContext prepares application context before command execution
// but after command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()
	env.Overwrite = env.Cfg.Output.Overwrite

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", version), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()
	return nil
}

var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            "edjecc",
		Usage:           "theme compiler for Edje (.edc) source files",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
		},
		Commands: []*cli.Command{
			{
				Name:         "compile",
				Usage:        "Compiles a .edc source file into a .edj container",
				OnUsageError: usageErrorHandler,
				Action:       compileCmd,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "`ID` value; not read by compile (the compiler header tag comes from the configuration's compiler_tag)"},
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exists, overwrite it"},
				},
				ArgsUsage: "SOURCE.edc [DESTINATION.edj]",
			},
			{
				Name:         "dumpconfig",
				Usage:        "Dumps either default or actual configuration (YAML)",
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
			},
		},
	}

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func compileCmd(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	// Tag every message this run produces with a build id, so a log
	// aggregator can correlate the handful of lines one compile emits
	// even when several runs interleave (e.g. a build farm compiling many
	// themes in parallel against a shared log sink).
	buildID := uuid.New().String()
	log := env.Log.With(zap.String("build_id", buildID))
	env.Log = log

	srcPath := cmd.Args().Get(0)
	if srcPath == "" {
		return fmt.Errorf("missing SOURCE.edc argument")
	}
	dstPath := cmd.Args().Get(1)
	if dstPath == "" {
		dstPath = srcPath[:len(srcPath)-len(filepath.Ext(srcPath))] + ".edj"
	}

	overwrite := env.Overwrite || cmd.Bool("overwrite")

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("unable to read source file: %w", err)
	}

	f := edje.NewFile()
	p := compiler.New(srcPath, string(raw), f)
	if err := p.Parse(); err != nil {
		return fmt.Errorf("compile %q: %w", srcPath, err)
	}

	var (
		imageSearch []string
		fontSearch  []string
		defQuality  int
		removeAlpha bool
	)
	if env.Cfg != nil {
		imageSearch = env.Cfg.Import.ImageSearchPath
		fontSearch = env.Cfg.Import.FontSearchPath
		defQuality = env.Cfg.Images.DefaultJPEGQuality
		removeAlpha = env.Cfg.Images.RemoveAlphaOnRGB
	}
	// a bare source file's own directory is always on the search path, so
	// relative image/font references resolve without a config file present.
	imageSearch = append([]string{filepath.Dir(srcPath)}, imageSearch...)
	fontSearch = append([]string{filepath.Dir(srcPath)}, fontSearch...)

	im := imports.New(imageSearch, fontSearch, defQuality, removeAlpha, env.Log)

	if env.Cfg != nil {
		f.CompilerTag = env.Cfg.Output.CompilerTag
	}

	opt := serializer.Options{Overwrite: overwrite, Importer: im, Log: env.Log}
	if err := serializer.Serialize(ctx, f, dstPath, opt); err != nil {
		return fmt.Errorf("serialize %q: %w", dstPath, err)
	}

	env.Log.Info("compiled theme", zap.String("source", srcPath), zap.String("output", dstPath))
	return nil
}

func outputConfiguration(_ context.Context, cmd *cli.Command) error {
	fname := cmd.Args().Get(0)

	var (
		err  error
		data []byte
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file %q: %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		data, err = config.Prepare()
	} else {
		cfg, cerr := config.LoadConfiguration("")
		if cerr != nil {
			return fmt.Errorf("unable to load configuration: %w", cerr)
		}
		data, err = config.Dump(cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
