// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// CloseMatches returns up to n candidates whose similarity ratio to word is
// at least cutoff, best first; ties are broken by reverse lexical order.
// Comparison is case-insensitive; candidates are returned as given.
func CloseMatches(word string, possibilities []string, n int, cutoff float64) []string {
	if n <= 0 || cutoff < 0 || cutoff > 1 {
		return nil
	}

	type scored struct {
		score float64
		name  string
	}

	m := difflib.NewMatcher(nil, chars(word))
	var hits []scored
	for _, p := range possibilities {
		m.SetSeq1(chars(p))
		if m.RealQuickRatio() >= cutoff && m.QuickRatio() >= cutoff {
			if r := m.Ratio(); r >= cutoff {
				hits = append(hits, scored{score: r, name: p})
			}
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].name > hits[j].name
	})
	if len(hits) > n {
		hits = hits[:n]
	}

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}

func chars(s string) []string {
	return strings.Split(strings.ToLower(strings.TrimSpace(s)), "")
}
