package io

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/papg/pkg/arena"
)

// Format identifies a game encoding.
type Format string

const (
	FormatPGSolver Format = "pgsolver"
	FormatJSON     Format = "json"
)

// DetectFormat returns the format implied by the extension of path,
// ignoring a trailing .gz.
func DetectFormat(path string) Format {
	base := strings.TrimSuffix(strings.ToLower(path), ".gz")
	if filepath.Ext(base) == ".json" {
		return FormatJSON
	}
	return FormatPGSolver
}

// Read parses a game from r in the given format.
func Read(r io.Reader, f Format) (*arena.Arena, error) {
	if f == FormatJSON {
		return ReadJSON(r)
	}
	return ReadPGSolver(r)
}

// ImportFile reads a game file, choosing the format with [DetectFormat].
// Files ending in .gz are decompressed.
func ImportFile(path string) (*arena.Arena, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gunzip %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	a, err := Read(r, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}
