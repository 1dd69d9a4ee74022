package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"

	"github.com/arloliu/animbake/bake"
	"github.com/arloliu/animbake/compress"
	"github.com/arloliu/animbake/errs"
	"github.com/arloliu/animbake/format"
	"github.com/arloliu/animbake/internal/options"
)

// ManifestName is the base name of the manifest artifact.
const ManifestName = "manifest.json"

// Writer writes bake outputs into a directory.
type Writer struct {
	dir         string
	compression format.CompressionType
	codec       compress.Codec
	archive     string
	log         *zap.Logger
}

// Option represents a functional option for configuring a Writer.
type Option = options.Option[*Writer]

// WithCompression sets the artifact codec.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(w *Writer) error {
		codec, err := compress.CreateCodec(ct)
		if err != nil {
			return err
		}
		w.compression = ct
		w.codec = codec

		return nil
	})
}

// WithArchive also writes every artifact into a zip archive at path.
func WithArchive(path string) Option {
	return options.NoError(func(w *Writer) {
		w.archive = path
	})
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(w *Writer) {
		if logger == nil {
			logger = zap.NewNop()
		}
		w.log = logger
	})
}

// NewWriter creates a Writer for dir.
//
// Parameters:
//   - dir: Output directory, created on first write
//   - opts: Optional configuration
//
// Returns:
//   - *Writer: The writer
//   - error: ErrEmptyOutputDir for an empty dir, or an option error
func NewWriter(dir string, opts ...Option) (*Writer, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errs.ErrEmptyOutputDir
	}

	w := &Writer{
		dir:         dir,
		compression: format.CompressionNone,
		codec:       compress.NewNoOpCompressor(),
		log:         zap.NewNop(),
	}
	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}

	return w, nil
}

// Artifact describes one written file.
type Artifact struct {
	// Name is the file name inside the output directory.
	Name string
	// Path is the full path of the file.
	Path  string
	Stats compress.CompressionStats
}

// Report lists what a Write call produced.
type Report struct {
	Artifacts []Artifact
	// Archive is the zip path, empty when no archive was requested.
	Archive string
}

// Write stores every result and the manifest.
//
// Parameters:
//   - ctx: Context for cancellation, checked before each file
//   - out: Bake output
//
// Returns:
//   - *Report: Written artifacts in write order, manifest last
//   - error: Serialization, compression or file system errors
func (w *Writer) Write(ctx context.Context, out *bake.Output) (*Report, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	report := &Report{Artifacts: make([]Artifact, 0, len(out.Results)+1)}
	payloads := make([][]byte, 0, len(out.Results)+1)

	for _, res := range out.Results {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := marshal(res, false)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", res.Name, err)
		}

		art, payload, err := w.writeFile(res.Hash+".json", data)
		if err != nil {
			return nil, err
		}
		report.Artifacts = append(report.Artifacts, art)
		payloads = append(payloads, payload)
	}

	data, err := marshal(out.Manifest, true)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	art, payload, err := w.writeFile(ManifestName, data)
	if err != nil {
		return nil, err
	}
	report.Artifacts = append(report.Artifacts, art)
	payloads = append(payloads, payload)

	if w.archive != "" {
		if err := w.writeArchive(report.Artifacts, payloads); err != nil {
			return nil, err
		}
		report.Archive = w.archive
	}

	return report, nil
}

func (w *Writer) writeFile(base string, data []byte) (Artifact, []byte, error) {
	payload, err := w.codec.Compress(data)
	if err != nil {
		return Artifact{}, nil, fmt.Errorf("compress %s: %w", base, err)
	}

	name := base + w.compression.Extension()
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil { //nolint:gosec
		return Artifact{}, nil, fmt.Errorf("write %s: %w", name, err)
	}

	art := Artifact{
		Name:  name,
		Path:  path,
		Stats: compress.NewCompressionStats(w.compression, len(data), len(payload)),
	}
	w.log.Debug("wrote artifact",
		zap.String("file", name),
		zap.Int64("bytes", art.Stats.CompressedSize),
		zap.Float64("ratio", art.Stats.CompressionRatio()),
	)

	return art, payload, nil
}

func (w *Writer) writeArchive(arts []Artifact, payloads [][]byte) error {
	if dir := filepath.Dir(w.archive); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create archive dir: %w", err)
		}
	}

	f, err := os.Create(w.archive)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for i, art := range arts {
		method := zip.Deflate
		if w.compression != format.CompressionNone {
			method = zip.Store
		}

		entry, err := zw.CreateHeader(&zip.FileHeader{Name: art.Name, Method: method})
		if err != nil {
			return fmt.Errorf("archive %s: %w", art.Name, err)
		}
		if _, err := entry.Write(payloads[i]); err != nil {
			return fmt.Errorf("archive %s: %w", art.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	w.log.Info("wrote archive", zap.String("path", w.archive), zap.Int("files", len(arts)))

	return nil
}

// marshal encodes v as JSON without HTML escaping, so effect scripts stay readable.
func marshal(v any, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
