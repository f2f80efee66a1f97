package cli

import (
	"os"
)

// writeFile writes data to path, or to out when path is empty.
func writeFile(data []byte, path string) error {
	if path == "" {
		_, err := out.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
