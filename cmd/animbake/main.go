// animbake is a CLI utility that bakes model animations into chunked binary streams.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/arloliu/animbake"
	"github.com/arloliu/animbake/bake"
	"github.com/arloliu/animbake/internal/config"
	"github.com/arloliu/animbake/internal/logger"
	"github.com/arloliu/animbake/model"
	"github.com/arloliu/animbake/output"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "bake", "b":
		err = cmdBake(args, os.Stdout)
	case "inspect", "i":
		err = cmdInspect(args, os.Stdout)
	case "init":
		err = cmdInit(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`animbake - keyframe animation baker

Usage:
  animbake <command> [options]

Commands:
  bake [flags]                 Bake every animation of a model
  inspect <artifact|chunk>     Show chunk headers of an artifact or a base64 chunk
  init [path]                  Write the default config file

Bake flags:
  -config <file>       Config file (default: ./animbake.yaml, then user config dir)
  -model <file>        Source model
  -out <dir>           Output directory
  -zip <file>          Also write all artifacts into a zip archive
  -compression <name>  none, zstd, s2 or lz4
  -anim <a,b>          Bake only these animations
  -ticks <n>           Ticks per second
  -precision <n>       Fixed-point scale of values
  -chunk <n>           Chunk byte budget
  -debug               Enable debug logging
  -log-file <file>     Also log to a rotated file

Examples:
  animbake bake -model player.bbmodel -out ./baked
  animbake bake -compression zstd -zip baked.zip
  animbake inspect ./baked/5f2c0e4b8a9d1c37.json
  animbake inspect AAcAAA==`)
}

func cmdBake(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("bake", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := bakeModel(ctx, cfg, log)
	if err != nil {
		return err
	}

	printReport(w, report)

	return nil
}

// bakeModel runs the whole pipeline for one configuration.
func bakeModel(ctx context.Context, cfg *config.Config, log *zap.Logger) (*output.Report, error) {
	ct, err := cfg.Compression()
	if err != nil {
		return nil, err
	}

	m, err := model.LoadFile(cfg.Model)
	if err != nil {
		return nil, err
	}

	baker, err := bake.New(append(cfg.BakeOptions(), bake.WithLogger(log))...)
	if err != nil {
		return nil, err
	}

	out, err := baker.BakeModel(ctx, m)
	if err != nil {
		return nil, err
	}

	writer, err := output.NewWriter(cfg.Output.Dir,
		output.WithCompression(ct),
		output.WithArchive(cfg.Output.Archive),
		output.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	log.Info("writing artifacts",
		zap.String("dir", cfg.Output.Dir),
		zap.Int("animations", len(out.Results)),
	)

	return writer.Write(ctx, out)
}

func printReport(w io.Writer, report *output.Report) {
	var original, compressed int64
	for _, art := range report.Artifacts {
		fmt.Fprintf(w, "  %-32s %8d bytes\n", art.Name, art.Stats.CompressedSize)
		original += art.Stats.OriginalSize
		compressed += art.Stats.CompressedSize
	}

	fmt.Fprintf(w, "\nWrote %d artifacts (%d bytes, %d before compression)\n",
		len(report.Artifacts), compressed, original)
	if report.Archive != "" {
		fmt.Fprintf(w, "Archive: %s\n", report.Archive)
	}
}

func cmdInspect(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: animbake inspect <artifact|chunk>")
	}

	target := fs.Arg(0)
	if _, err := os.Stat(target); err != nil {
		// Not a file; treat the argument as one base64 chunk
		h, err := animbake.InspectChunk(target)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Duration: %d\n", h.Duration)
		fmt.Fprintf(w, "Count:    %d\n", h.Count)

		return nil
	}

	if strings.HasPrefix(filepath.Base(target), output.ManifestName) {
		return inspectManifest(w, target)
	}

	return inspectResult(w, target)
}

func inspectResult(w io.Writer, path string) error {
	res, err := output.ReadResult(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Animation: %s\n", res.Name)
	fmt.Fprintf(w, "Hash:      %s\n", res.Hash)
	fmt.Fprintf(w, "Duration:  %d ticks\n", res.Duration)
	fmt.Fprintf(w, "Events:    %d\n", len(res.Events))
	fmt.Fprintf(w, "Cameras:   %d\n", len(res.Cameras))
	fmt.Fprintln(w)

	roles := make([]string, 0, len(res.Streams))
	for role := range res.Streams {
		roles = append(roles, role)
	}
	slices.Sort(roles)

	for _, role := range roles {
		chunks := res.Streams[role]
		fmt.Fprintf(w, "%s: %d chunks\n", role, len(chunks))
		for i, chunk := range chunks {
			h, err := animbake.InspectChunk(chunk)
			if err != nil {
				return fmt.Errorf("%s chunk %d: %w", role, i, err)
			}
			fmt.Fprintf(w, "  [%d] duration=%d count=%d base64=%d\n", i, h.Duration, h.Count, len(chunk))
		}
	}

	return nil
}

func inspectManifest(w io.Writer, path string) error {
	m, err := output.ReadManifest(path)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(m.Anims))
	for name := range m.Anims {
		names = append(names, name)
	}
	slices.Sort(names)

	fmt.Fprintf(w, "Animations: %d\n", len(names))
	for _, name := range names {
		fmt.Fprintf(w, "  %-24s %s\n", name, m.Anims[name])
	}

	parts := make([]string, 0, len(m.NeededParts))
	for part := range m.NeededParts {
		parts = append(parts, part)
	}
	slices.Sort(parts)

	fmt.Fprintf(w, "Parts: %d\n", len(parts))
	for _, part := range parts {
		fmt.Fprintf(w, "  %-12s id=%-3d %s\n", part, m.IDs[part], strings.Join(m.NeededParts[part], ", "))
	}

	return nil
}

func cmdInit(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("f", false, "Overwrite an existing config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := config.FileName
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use -f to overwrite)", path)
	}

	if err := config.Default().SaveTo(path); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s\n", path)

	return nil
}
