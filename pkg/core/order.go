package core

import (
	"slices"
	"strings"
)

// pinnedFirst returns a copy of notes with fixed notes ahead of unfixed ones.
// The sort is stable, so notes sharing the same Fixed value keep storage order
// (which is creation order, since new notes are appended).
func pinnedFirst(notes []Note) []Note {
	out := slices.Clone(notes)
	if out == nil {
		out = []Note{}
	}
	slices.SortStableFunc(out, func(a, b Note) int {
		switch {
		case a.Fixed == b.Fixed:
			return 0
		case a.Fixed:
			return -1
		default:
			return 1
		}
	})
	return out
}

// matching keeps the notes whose content contains term (case-sensitive).
func matching(notes []Note, term string) []Note {
	if term == "" {
		return notes
	}
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(n.Content, term) {
			out = append(out, n)
		}
	}
	return out
}

func indexOf(notes []Note, id int64) int {
	return slices.IndexFunc(notes, func(n Note) bool { return n.ID == id })
}
