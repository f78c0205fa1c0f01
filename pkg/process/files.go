package process

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Sriram-PR/md-toc/pkg/utils"
)

// StdioName is the file name meaning stdin or stdout
const StdioName = "-"

// ReadInput reads a whole document from r
func ReadInput(r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: reading '%s': %w", utils.ErrFilesystem, name, err)
	}
	return string(data), nil
}

// ReadFile reads a whole document from disk
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading '%s': %w", utils.ErrFilesystem, path, err)
	}
	return string(data), nil
}

// WriteFile writes content to path, replacing it atomically when it exists.
// The replacement keeps the original file's permissions.
func WriteFile(path, content string) error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	dir, base := filepath.Split(path)
	tmpPath := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmpPath, []byte(content), perm); err != nil {
		return fmt.Errorf("%w: writing temporary file for '%s': %w", utils.ErrFilesystem, path, err)
	}
	// WriteFile honours umask; restore the original mode explicitly
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: setting mode on '%s': %w", utils.ErrFilesystem, tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replacing '%s': %w", utils.ErrFilesystem, path, err)
	}
	return nil
}

// NormalizePath resolves symlinks and cleans path so two spellings of the
// same file compare equal. StdioName is returned unchanged.
func NormalizePath(path string) string {
	if path == StdioName {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	} else if resolvedDir, dirErr := filepath.EvalSymlinks(filepath.Dir(abs)); dirErr == nil {
		// The file itself may not exist yet (an output file)
		abs = filepath.Join(resolvedDir, filepath.Base(abs))
	}
	if isCaseInsensitiveFS() {
		abs = strings.ToLower(abs)
	}
	return abs
}
