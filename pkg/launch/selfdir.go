package launch

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrPathResolution marks failures to determine the launcher's own directory.
var ErrPathResolution = errors.New("self-directory resolution failed")

// ResolveSelfDir returns the absolute directory containing the launcher
// binary, independent of the caller's working directory. Symlink chains
// are followed first, so a link in ~/bin still resolves to the directory
// the binary (and the chess-clock script beside it) actually lives in.
func ResolveSelfDir(exePath string) (string, error) {
	resolved, err := filepath.EvalSymlinks(exePath)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrPathResolution, exePath, err)
	}

	dir, err := filepath.Abs(filepath.Dir(resolved))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrPathResolution, resolved, err)
	}
	return dir, nil
}
