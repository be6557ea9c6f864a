//go:build !windows

package files

import "os"

func replaceFile(tmpPath, path string) error {
	return os.Rename(tmpPath, path)
}

func isReparsePoint(string) (bool, error) {
	return false, nil
}
