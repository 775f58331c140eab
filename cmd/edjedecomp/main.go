// Command edjedecomp extracts a compiled .edj container back to its
// canonical .edc source text and/or its embedded resources, for round-trip
// inspection and for the edapi/editapi editing workflow's "look before you
// mutate" step.
package main

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"edjecc/container"
	"edjecc/editapi"
	"edjecc/source"
	"edjecc/state"
	"edjecc/utils/debug"
)

const version = "0.1.0"

func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		return ctx, nil
	}
	env := state.EnvFromContext(ctx)
	log, err := zap.NewDevelopment()
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.Log = log
	return ctx, nil
}

func destroyAppContext(ctx context.Context, _ *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		_ = env.Log.Sync()
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:            "edjedecomp",
		Usage:           "inspects and extracts compiled Edje (.edj) containers",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		Commands: []*cli.Command{
			{
				Name:      "source",
				Usage:     "Regenerates canonical .edc source from a compiled artifact",
				Action:    sourceCmd,
				ArgsUsage: "ARTIFACT.edj [DESTINATION.edc]",
			},
			{
				Name:      "extract",
				Usage:     "Extracts every entry under a key prefix (e.g. images/, fonts/) to a directory",
				Action:    extractCmd,
				ArgsUsage: "ARTIFACT.edj PREFIX DESTDIR",
			},
			{
				Name:      "list",
				Usage:     "Lists every key stored in a compiled artifact",
				Action:    listCmd,
				ArgsUsage: "ARTIFACT.edj",
			},
			{
				Name:      "tree",
				Usage:     "Dumps every collection's part/program tree for inspection",
				Action:    treeCmd,
				ArgsUsage: "ARTIFACT.edj",
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
		os.Exit(1)
	}
}

func sourceCmd(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	artifactPath := cmd.Args().Get(0)
	if artifactPath == "" {
		return fmt.Errorf("missing ARTIFACT.edj argument")
	}
	dstPath := cmd.Args().Get(1)

	sess, err := editapi.Open(artifactPath, env.Log)
	if err != nil {
		return fmt.Errorf("open artifact: %w", err)
	}

	files := source.Regenerate(sess.File)
	for _, f := range files {
		out := dstPath
		if out == "" {
			out = f.Name
		}
		if err := os.WriteFile(out, f.Data, 0o644); err != nil {
			return fmt.Errorf("write %q: %w", out, err)
		}
		env.Log.Info("wrote regenerated source", zap.String("file", out))
	}
	return nil
}

func extractCmd(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	artifactPath := cmd.Args().Get(0)
	prefix := cmd.Args().Get(1)
	destDir := cmd.Args().Get(2)
	if artifactPath == "" || prefix == "" || destDir == "" {
		return fmt.Errorf("usage: extract ARTIFACT.edj PREFIX DESTDIR")
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	count := 0
	err := container.WalkPrefix(artifactPath, prefix, func(key string, file *zip.File) error {
		rc, err := file.Open()
		if err != nil {
			return fmt.Errorf("open entry %q: %w", key, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return fmt.Errorf("read entry %q: %w", key, err)
		}

		out := filepath.Join(destDir, filepath.Base(key))
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %q: %w", out, err)
		}
		count++
		return nil
	})
	if err != nil {
		return fmt.Errorf("extract %q: %w", prefix, err)
	}

	env.Log.Info("extracted entries", zap.String("prefix", prefix), zap.Int("count", count))
	return nil
}

func listCmd(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	artifactPath := cmd.Args().Get(0)
	if artifactPath == "" {
		return fmt.Errorf("missing ARTIFACT.edj argument")
	}

	f, err := os.Open(artifactPath)
	if err != nil {
		return fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat artifact: %w", err)
	}

	cr, err := container.NewReader(f, info.Size())
	if err != nil {
		return fmt.Errorf("open container: %w", err)
	}

	for _, key := range cr.Keys() {
		fmt.Println(key)
	}
	env.Log.Debug("listed artifact keys", zap.String("artifact", artifactPath), zap.Int("count", len(cr.Keys())))
	return nil
}

// treeCmd dumps every collection's part/program tree, the only place in
// edjedecomp that needs indented, nested diagnostic output rather than a
// flat key list.
func treeCmd(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	artifactPath := cmd.Args().Get(0)
	if artifactPath == "" {
		return fmt.Errorf("missing ARTIFACT.edj argument")
	}

	sess, err := editapi.Open(artifactPath, env.Log)
	if err != nil {
		return fmt.Errorf("open artifact: %w", err)
	}

	tw := debug.NewTreeWriter()
	for _, c := range sess.File.Collections {
		tw.Line(0, "collection %q (id=%d, %dx%d..%dx%d)", c.Name, c.ID, c.MinW, c.MinH, c.MaxW, c.MaxH)
		for _, p := range c.Parts {
			tw.Line(1, "part %q (id=%d, type=%s)", p.Name, p.ID, p.Type)
		}
		for _, prog := range c.Programs {
			tw.TextBlock(1, fmt.Sprintf("program %q (id=%d) signal", prog.Name, prog.ID), prog.Signal)
		}
	}

	fmt.Print(tw.String())
	return nil
}
