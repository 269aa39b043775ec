// FILE: lixenwraith/gameini/io.go
package gameini

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultMaxFileSize caps files read by ParseFile unless overridden
const DefaultMaxFileSize = 64 << 20

// LoadOptions controls how ParseFile reads from disk
type LoadOptions struct {
	// MaxFileSize rejects larger files with ErrFileTooLarge; 0 disables the check
	MaxFileSize int64
}

// DefaultLoadOptions returns the standard load options
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{MaxFileSize: DefaultMaxFileSize}
}

// ParseString parses INI text.
func ParseString(input string) (*File, error) {
	return NewParser(NewLexer(input)).Parse()
}

// ParseBytes parses INI text.
func ParseBytes(data []byte) (*File, error) {
	return ParseString(string(data))
}

// Check parses input and reports every problem found. Dropped lines are
// warnings and the first lex or parse error is fatal, combined in a
// warnings.List. It returns nil for clean input.
func Check(input string) error {
	p := NewParser(NewLexer(input))
	if _, err := p.Parse(); err != nil {
		return p.warn.Collect(err)
	}
	return p.Warnings()
}

// Parse reads r to the end and parses it.
func Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return ParseBytes(data)
}

// ParseFile reads and parses the file at path with default load options.
func ParseFile(path string) (*File, error) {
	return ParseFileWithOptions(path, DefaultLoadOptions())
}

// ParseFileWithOptions reads and parses the file at path.
func ParseFileWithOptions(path string, opts LoadOptions) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat ini file '%s': %w", path, err)
	}
	if opts.MaxFileSize > 0 && info.Size() > opts.MaxFileSize {
		return nil, fmt.Errorf("ini file '%s' (%d bytes, limit %d): %w", path, info.Size(), opts.MaxFileSize, ErrFileTooLarge)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ini file '%s': %w", path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if opts.MaxFileSize > 0 {
		reader = io.LimitReader(file, opts.MaxFileSize)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read ini file '%s': %w", path, err)
	}

	f, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ini file '%s': %w", path, err)
	}
	return f, nil
}

// WriteTo writes the canonical text of the file, newline terminated.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString(f.String())
	if buf.Len() > 0 {
		buf.WriteByte('\n')
	}
	return buf.WriteTo(w)
}

// Save writes the file atomically through a temporary file in the same directory.
func (f *File) Save(path string) error {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to render ini data: %w", err)
	}
	return atomicWriteFile(path, buf.Bytes())
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	removed := false
	defer func() {
		if !removed {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file '%s': %w", tempPath, err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file '%s': %w", tempPath, err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file '%s': %w", tempPath, err)
	}

	// Keep the mode of the file being replaced
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat '%s': %w", path, err)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file '%s' to '%s': %w", tempPath, path, err)
	}
	removed = true

	return nil
}
