// Package fsutil holds small file-system helpers shared by the locator and
// the report writers.
package fsutil

import (
	"os"
	"os/user"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// FileExists returns whether the file or directory exists, or an error if
// the filesystem failed in some other way.
func FileExists(filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, "failed to stat %q", filePath)
}

// MustFileExists is like FileExists but panics on filesystem errors.
func MustFileExists(filePath string) bool {
	exists, err := FileExists(filePath)
	if err != nil {
		panic(err)
	}
	return exists
}

// ReplaceTildeInDir expands a leading "~" (or "~user") to the corresponding
// home directory. Paths without a leading tilde are returned unchanged.
func ReplaceTildeInDir(dir string) (string, error) {
	if len(dir) == 0 || dir[0] != '~' {
		return dir, nil
	}
	var userName string
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		sepIdx := strings.IndexRune(dir, '/')
		if sepIdx == -1 {
			userName = dir[1:]
		} else {
			userName = dir[1:sepIdx]
		}
	}
	var usr *user.User
	var err error
	if userName == "" {
		usr, err = user.Current()
	} else {
		usr, err = user.Lookup(userName)
	}
	if err != nil {
		return dir, errors.Wrapf(err, "failed to resolve home directory for %q", dir)
	}
	homeDir := usr.HomeDir
	return path.Join(homeDir, dir[1+len(userName):]), nil
}

// MustReplaceTildeInDir is like ReplaceTildeInDir but panics on error.
func MustReplaceTildeInDir(dir string) string {
	expanded, err := ReplaceTildeInDir(dir)
	if err != nil {
		panic(err)
	}
	return expanded
}
