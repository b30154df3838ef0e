package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fpgakit/placer/pkg/errors"
)

// writeFile writes data to path, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// basePath derives the base output path by stripping a known extension.
func basePath(output string) string {
	ext := filepath.Ext(output)
	switch ext {
	case ".svg", ".png", ".pdf", ".json", ".dot", ".csv", ".gif", ".mp4":
		return output[:len(output)-len(ext)]
	}
	return output
}
