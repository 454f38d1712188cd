// Package prompt builds the generation prompt and caption text for a run.
// Text may contain bracket-delimited alternative spans like
// "a {quiet|stormy} sea" that are resolved by a weighted random draw
// before the text is used.
package prompt

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

// Separator splits the alternatives inside one bracket span
const Separator = "|"

var weightPrefix = regexp.MustCompile(`^(\d+):(.*)$`)

// BracketPair is one open/close token pair of the template syntax
type BracketPair struct {
	Open  string
	Close string
}

// ParseBracketPairs converts config entries like "{}" or "<<>>" into pairs,
// the first half of each entry is the open token, the second half the close token
func ParseBracketPairs(specs []string) ([]BracketPair, error) {
	pairs := make([]BracketPair, 0, len(specs))
	for _, s := range specs {
		if len(s) < 2 || len(s)%2 != 0 {
			return nil, fmt.Errorf("invalid bracket pair %q, need an even number of characters", s)
		}
		pairs = append(pairs, BracketPair{Open: s[:len(s)/2], Close: s[len(s)/2:]})
	}
	return pairs, nil
}

// Engine resolves bracket templates. Pairs are declared outermost-syntax-first
// and processed in reverse declaration order, so the replacement text of a
// later-declared pair may still contain tokens of an earlier-declared pair.
// This processing order is a documented behavior that existing templates rely
// on - it is not a recursive descent.
type Engine struct {
	Pairs []BracketPair
	rnd   *rand.Rand
}

// NewEngine creates an Engine with an injected randomness source
func NewEngine(pairs []BracketPair, rnd *rand.Rand) *Engine {
	return &Engine{Pairs: pairs, rnd: rnd}
}

// Resolve replaces every bracket span in text by one of its alternatives.
// Unmatched or malformed delimiters are left verbatim.
func (e *Engine) Resolve(text string) string {
	for i := len(e.Pairs) - 1; i >= 0; i-- {
		text = e.resolvePair(text, e.Pairs[i])
	}
	return text
}

// resolvePair scans text left to right once, replacing each open...close span.
// The scan continues after the inserted replacement, so a replacement that
// contains the same tokens again is not reprocessed and the pass stays linear.
func (e *Engine) resolvePair(text string, p BracketPair) string {
	var b strings.Builder
	rest := text
	for {
		openIdx := strings.Index(rest, p.Open)
		if openIdx < 0 {
			break
		}
		innerStart := openIdx + len(p.Open)
		closeRel := strings.Index(rest[innerStart:], p.Close)
		if closeRel < 0 {
			break
		}
		choice, _ := weightedChoice(e.rnd, strings.Split(rest[innerStart:innerStart+closeRel], Separator))
		b.WriteString(rest[:openIdx])
		b.WriteString(choice)
		rest = rest[innerStart+closeRel+len(p.Close):]
	}
	b.WriteString(rest)
	return b.String()
}

// weightedChoice draws one option. An option may carry an "N:" integer weight
// prefix, the default weight is 1 and weight 0 options are never chosen.
// Returns false if no option carries any weight.
func weightedChoice(rnd *rand.Rand, options []string) (string, bool) {
	type option struct {
		text   string
		weight int
	}
	parsed := make([]option, 0, len(options))
	total := 0
	for _, o := range options {
		text, weight := o, 1
		if m := weightPrefix.FindStringSubmatch(o); m != nil {
			weight, _ = strconv.Atoi(m[1])
			text = m[2]
		}
		parsed = append(parsed, option{text: text, weight: weight})
		total += weight
	}
	if total <= 0 {
		return "", false
	}
	draw := rnd.Intn(total)
	for _, o := range parsed {
		draw -= o.weight
		if draw < 0 {
			return o.text, true
		}
	}
	return "", false
}
