package repository

import (
	"sort"

	"github.com/okian/otvplus/internal/domain/model"
)

// Rank orders results by score descending, then last and first name
// ascending, and assigns ranks.
func Rank(results []model.PitcherResult) []Entry {
	entries := make([]Entry, len(results))
	for i, r := range results {
		entries[i] = Entry{
			First:     r.First,
			Last:      r.Last,
			Level:     r.Level,
			StuffPlus: r.StuffPlus,
			Source:    r.Source,
		}
	}
	sortEntries(entries)
	assignRanksWithTies(entries)
	return entries
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].StuffPlus != entries[j].StuffPlus {
			return entries[i].StuffPlus > entries[j].StuffPlus
		}
		if entries[i].Last != entries[j].Last {
			return entries[i].Last < entries[j].Last
		}
		return entries[i].First < entries[j].First
	})
}

// assignRanksWithTies gives equal scores the same rank; the next distinct
// score takes the following rank (1, 1, 2).
func assignRanksWithTies(entries []Entry) {
	currentRank := 0
	for i := range entries {
		if i == 0 || entries[i].StuffPlus != entries[i-1].StuffPlus {
			currentRank++
		}
		entries[i].Rank = currentRank
	}
}
