package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arloliu/animbake/bake"
	"github.com/arloliu/animbake/compress"
	"github.com/arloliu/animbake/format"
)

var knownCompressions = []format.CompressionType{
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// CompressionOf returns the compression implied by an artifact file name.
func CompressionOf(name string) format.CompressionType {
	ext := filepath.Ext(name)
	for _, ct := range knownCompressions {
		if strings.EqualFold(ext, ct.Extension()) {
			return ct
		}
	}

	return format.CompressionNone
}

// ReadArtifact reads an artifact file and undoes its compression.
func ReadArtifact(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	codec, err := compress.CreateCodec(CompressionOf(path))
	if err != nil {
		return nil, err
	}

	data, err := codec.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", filepath.Base(path), err)
	}

	return data, nil
}

// ReadResult reads a baked animation artifact.
func ReadResult(path string) (*bake.Result, error) {
	data, err := ReadArtifact(path)
	if err != nil {
		return nil, err
	}

	var res bake.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	return &res, nil
}

// ReadManifest reads a manifest artifact.
func ReadManifest(path string) (*bake.Manifest, error) {
	data, err := ReadArtifact(path)
	if err != nil {
		return nil, err
	}

	var m bake.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	return &m, nil
}
