package prompt

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// LineStore picks random lines from text corpus files (artists, subjects,
// prompts). Lines honor the same "N:" weight prefix as bracket alternatives,
// blank lines are skipped.
type LineStore struct {
	rnd *rand.Rand
}

func NewLineStore(rnd *rand.Rand) *LineStore {
	return &LineStore{rnd: rnd}
}

// RandomLine returns one weighted-random line from the file at path
func (s *LineStore) RandomLine(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading line file: %w", err)
	}
	lines := make([]string, 0)
	for _, l := range strings.Split(string(content), "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("no usable lines in %v", path)
	}
	line, ok := weightedChoice(s.rnd, lines)
	if !ok {
		return "", fmt.Errorf("all lines in %v have weight 0", path)
	}
	return line, nil
}
