// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

// ErrEmptyROM is returned for ROM files without content.
var ErrEmptyROM = errors.New("ROM file is empty")

// Extensions lists the file extensions that are commonly used for CHIP-8 ROMs.
var Extensions = []string{".ch8", ".c8", ".rom"}

// Loader handles loading ROM files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads a raw ROM file. The ROM has no header, its size is limited by
// the program space of the memory.
func (l *Loader) Load(fileName string) ([]byte, error) {
	if !hasROMExtension(fileName) {
		l.logger.Warn("Unexpected file extension for a CHIP-8 ROM", log.String("file", fileName))
	}

	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", fileName, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.read(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM %s: %w", fileName, err)
	}

	l.logger.Debug("Loaded ROM",
		log.String("file", fileName),
		log.Int("size", len(data)))
	return data, nil
}

// read reads at most one byte more than fits into memory, to detect ROMs
// that are too large without reading arbitrarily large files.
func (l *Loader) read(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, memory.MaxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}

	switch {
	case len(data) == 0:
		return nil, ErrEmptyROM
	case len(data) > memory.MaxROMSize:
		return nil, fmt.Errorf("%w: exceeds %d bytes", memory.ErrROMTooLarge, memory.MaxROMSize)
	default:
		return data, nil
	}
}

func hasROMExtension(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, known := range Extensions {
		if ext == known {
			return true
		}
	}
	return false
}
