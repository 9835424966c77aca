package fileutil

import (
	"os"
	"path/filepath"
	"sort"
	"time"
)

const maxBackups = 10

// BackupFile copies src into a new timestamped directory under the backup
// directory and returns the path of the copy. It returns "" when src does
// not exist or the copy fails. Only the 10 most recent backups are kept.
func BackupFile(label, src string) string {
	data, err := os.ReadFile(src)
	if err != nil {
		return ""
	}

	backupDir := GetBackupDirectory()
	if err := os.MkdirAll(backupDir, 0700); err != nil {
		return ""
	}

	ts := time.Now().UTC().Format("2006-01-02T15-04-05.000")
	backupSubDir := filepath.Join(backupDir, label+"-"+ts)
	if err := os.Mkdir(backupSubDir, 0700); err != nil {
		return ""
	}

	dest := filepath.Join(backupSubDir, filepath.Base(src))
	if err := os.WriteFile(dest, data, 0600); err != nil {
		_ = os.RemoveAll(backupSubDir)
		return ""
	}

	rotateBackups(backupDir)
	return dest
}

func rotateBackups(backupDir string) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)

	if len(dirs) > maxBackups {
		for _, old := range dirs[:len(dirs)-maxBackups] {
			_ = os.RemoveAll(filepath.Join(backupDir, old))
		}
	}
}
