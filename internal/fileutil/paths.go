package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DataDirEnv overrides the data directory location.
const DataDirEnv = "SCAF_DATA_DIR"

var (
	dataDirOnce sync.Once
	dataDirPath string
)

// getBinaryName returns the base name of the running binary without extension.
func getBinaryName() string {
	name := filepath.Base(os.Args[0])
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// isDev reports whether this is a development build (binary named "scafd").
func isDev() bool {
	return getBinaryName() == "scafd"
}

// GetDataDirectory returns the data directory path:
//  1. $SCAF_DATA_DIR (if set)
//  2. Dev mode: <executable-dir>/../../data/
//  3. Otherwise: ~/.scaf/
func GetDataDirectory() string {
	dataDirOnce.Do(func() {
		if env := os.Getenv(DataDirEnv); env != "" {
			dataDirPath = env
			return
		}
		if isDev() {
			exe, err := os.Executable()
			if err == nil {
				dataDirPath = filepath.Join(filepath.Dir(exe), "..", "..", "data")
				return
			}
		}
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataDirPath = filepath.Join(home, ".scaf")
	})
	return dataDirPath
}

// ResetDataDirectory resets the cached data directory (for testing).
func ResetDataDirectory() {
	dataDirOnce = sync.Once{}
	dataDirPath = ""
}

// EnsureDataDirectoryExists creates the data directory if it doesn't exist.
func EnsureDataDirectoryExists() (string, error) {
	dir := GetDataDirectory()
	return dir, os.MkdirAll(dir, 0700)
}

// GetConfigFilePath returns the path to config.json.
func GetConfigFilePath() string {
	return filepath.Join(GetDataDirectory(), "config.json")
}

// GetBackupDirectory returns the directory holding pre-overwrite backups.
func GetBackupDirectory() string {
	return filepath.Join(GetDataDirectory(), ".backups")
}
