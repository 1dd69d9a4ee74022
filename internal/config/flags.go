package config

import (
	"flag"
	"strings"
)

// Flags holds the command-line overrides of one command.
type Flags struct {
	config      *string
	model       *string
	out         *string
	archive     *string
	compression *string
	anims       *string
	ticks       *int
	precision   *int
	chunk       *int
	debug       *bool
	logFile     *string
}

// RegisterFlags registers the config flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		config:      fs.String("config", "", "Path to config file"),
		model:       fs.String("model", "", "Path to the source model"),
		out:         fs.String("out", "", "Output directory"),
		archive:     fs.String("zip", "", "Also write all artifacts into this zip archive"),
		compression: fs.String("compression", "", "Artifact compression: none, zstd, s2, lz4"),
		anims:       fs.String("anim", "", "Comma-separated animation names to bake (default all)"),
		ticks:       fs.Int("ticks", 0, "Ticks per second"),
		precision:   fs.Int("precision", 0, "Fixed-point scale of values"),
		chunk:       fs.Int("chunk", 0, "Chunk byte budget"),
		debug:       fs.Bool("debug", false, "Enable debug logging"),
		logFile:     fs.String("log-file", "", "Also log to this file (rotated)"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	return *f.config
}

// apply applies flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if *f.model != "" {
		cfg.Model = *f.model
	}
	if *f.out != "" {
		cfg.Output.Dir = *f.out
	}
	if *f.archive != "" {
		cfg.Output.Archive = *f.archive
	}
	if *f.compression != "" {
		cfg.Output.Compression = *f.compression
	}
	if *f.anims != "" {
		cfg.Bake.Animations = splitList(*f.anims)
	}
	if *f.ticks > 0 {
		cfg.Bake.Ticks = *f.ticks
	}
	if *f.precision > 0 {
		cfg.Bake.Precision = *f.precision
	}
	if *f.chunk > 0 {
		cfg.Bake.ChunkSize = *f.chunk
	}
	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.logFile != "" {
		cfg.Logging.LogFile = *f.logFile
	}
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
