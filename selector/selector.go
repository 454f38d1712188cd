// Package selector implements the weighted random choice between the
// configured image sources and the permanent exclusion of sources that
// failed during the current run.
package selector

import (
	"math/rand"

	log "github.com/sirupsen/logrus"
)

// Source identifies one configured origin of an image
type Source string

const (
	// SourceTest is the fallback when no source carries any weight
	SourceTest      Source = "test"
	SourceLocal     Source = "local"
	SourceHistory   Source = "history"
	SourceStability Source = "stability"
	SourceDalle     Source = "dalle"
	SourceAutomatic Source = "automatic"
)

// WeightedSource assigns a relative selection weight to a source, weight 0 means excluded
type WeightedSource struct {
	ID     Source
	Weight int
}

// Table is the provider table for one run, it is treated as a value:
// Exclude returns a fresh table instead of mutating shared state
type Table []WeightedSource

// TotalWeight returns the sum of all weights
func (t Table) TotalWeight() int {
	total := 0
	for _, s := range t {
		total += s.Weight
	}
	return total
}

// Live returns the number of sources that can still be chosen
func (t Table) Live() int {
	n := 0
	for _, s := range t {
		if s.Weight > 0 {
			n++
		}
	}
	return n
}

// Choose draws one source, each source is picked with probability weight/total.
// A table without any weight resolves to SourceTest so the caller always gets a source.
func (t Table) Choose(rnd *rand.Rand) Source {
	total := t.TotalWeight()
	if total <= 0 {
		return SourceTest
	}
	draw := rnd.Intn(total)
	for _, s := range t {
		draw -= s.Weight
		if draw < 0 {
			return s.ID
		}
	}
	// unreachable as long as weights are non-negative
	return SourceTest
}

// Exclude returns a copy of the table with the weight of id set to 0.
// Excluding an already excluded source is a no-op, an unknown id is
// logged and ignored.
func (t Table) Exclude(logger log.FieldLogger, id Source) Table {
	result := make(Table, len(t))
	copy(result, t)
	for i := range result {
		if result[i].ID == id {
			result[i].Weight = 0
			return result
		}
	}
	logger.Warnf("Tried to remove unknown source %q from the table", id)
	return result
}
