package utils

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// RandomFileOfType picks one file with a matching extension (case
// insensitive, with or without leading dot) from dir
func RandomFileOfType(rnd *rand.Rand, dir string, extensions []string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading image directory: %w", err)
	}
	candidates := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(e.Name()), "."))
		for _, want := range extensions {
			if ext == strings.ToLower(strings.TrimPrefix(want, ".")) {
				candidates = append(candidates, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no %v files in %v", extensions, dir)
	}
	return candidates[rnd.Intn(len(candidates))], nil
}
