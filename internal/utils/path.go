package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// AppDirName is the directory used under the platform config root.
const AppDirName = "suggestscope"

// PathResolver resolves export locations relative to the working and executable dirs
type PathResolver struct {
	executableDir string
	fallbackDirs  []string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	pr := &PathResolver{executableDir: filepath.Dir(execPath)}
	pr.fallbackDirs = []string{
		filepath.Join(os.TempDir(), AppDirName),
		pr.executableDir,
	}

	log.Debugf("PathResolver initialized: execDir=%s", pr.executableDir)
	return pr, nil
}

// ResolveExportDir returns dir when it is writable, creating it if needed.
// Relative paths are taken from the working directory.
// When dir cannot be used the first writable fallback is returned with a warning.
func (pr *PathResolver) ResolveExportDir(dir string) string {
	if dir == "" {
		dir = "."
	}
	if ensureWritableDir(dir) {
		return dir
	}
	for _, fallback := range pr.fallbackDirs {
		if ensureWritableDir(fallback) {
			log.Warnf("Export dir %s is not writable, using %s", dir, fallback)
			return fallback
		}
	}
	log.Warnf("Export dir %s is not writable, keeping it anyway", dir)
	return dir
}

// ensureWritableDir creates the directory if it doesn't exist and tests writability
func ensureWritableDir(dir string) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Debugf("Cannot create directory %s: %v", dir, err)
		return false
	}

	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		log.Debugf("Directory %s is not writable: %v", dir, err)
		return false
	}

	os.Remove(testFile)
	return true
}
