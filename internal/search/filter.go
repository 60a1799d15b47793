// Package search filters the directory for the landing page suggestions.
package search

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/Nixie-Tech-LLC/darshan/internal/model"
)

// MinQueryLength is the shortest query (in runes) that opens the suggestion panel.
const MinQueryLength = 2

// Result is what the suggestion panel shows. A hidden panel and a visible
// empty panel are different states: only the latter shows "no results".
type Result struct {
	Visible bool
	Matches []model.TempleRecord
}

func (r Result) NoResults() bool {
	return r.Visible && len(r.Matches) == 0
}

// IDs returns the ids of the matches in order.
func (r Result) IDs() []string {
	ids := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		ids[i] = m.ID
	}
	return ids
}

// Visible reports whether a query is long enough to show suggestions.
func Visible(query string) bool {
	return utf8.RuneCountInString(query) >= MinQueryLength
}

// Filter keeps, in their original order, the records whose name or location
// contains the query under Unicode case folding.
func Filter(query string, records []model.TempleRecord) Result {
	if !Visible(query) {
		return Result{}
	}
	fold := cases.Fold()
	q := fold.String(query)

	matches := make([]model.TempleRecord, 0)
	for _, r := range records {
		if strings.Contains(fold.String(r.Name), q) || strings.Contains(fold.String(r.Location), q) {
			matches = append(matches, r)
		}
	}
	return Result{Visible: true, Matches: matches}
}
