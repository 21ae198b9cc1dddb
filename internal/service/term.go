package service

import (
	"sort"
	"time"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
)

// termRank orders terms inside one calendar year
func termRank(term string) int {
	switch term {
	case model.TermSpring:
		return 0
	case model.TermSummer:
		return 1
	case model.TermFall:
		return 2
	default:
		return 3
	}
}

// termBefore reports whether (t1, y1) comes before (t2, y2)
func termBefore(t1 string, y1 int, t2 string, y2 int) bool {
	if y1 != y2 {
		return y1 < y2
	}
	return termRank(t1) < termRank(t2)
}

// nextTerm returns the term following (term, year); summers are skipped unless requested
func nextTerm(term string, year int, includeSummer bool) (string, int) {
	switch term {
	case model.TermSpring:
		if includeSummer {
			return model.TermSummer, year
		}
		return model.TermFall, year
	case model.TermSummer:
		return model.TermFall, year
	default:
		return model.TermSpring, year + 1
	}
}

// generateSemesters lays out count consecutive terms starting at (term, year).
// A summer start term is always kept.
func generateSemesters(mapID, term string, year, count int, includeSummer bool) []model.Semester {
	semesters := make([]model.Semester, 0, count)
	for i := 0; i < count; i++ {
		semesters = append(semesters, model.Semester{
			MapID:    mapID,
			Term:     term,
			Year:     year,
			Position: i,
		})
		term, year = nextTerm(term, year, includeSummer)
	}
	return semesters
}

// sortSemesters orders semesters chronologically in place
func sortSemesters(semesters []model.Semester) {
	sort.SliceStable(semesters, func(i, j int) bool {
		return termBefore(semesters[i].Term, semesters[i].Year, semesters[j].Term, semesters[j].Year)
	})
}

// termDates conventional all-day span of a term; end is exclusive
func termDates(term string, year int) (start, end time.Time) {
	d := func(m time.Month, day int) time.Time { return time.Date(year, m, day, 0, 0, 0, 0, time.UTC) }
	switch term {
	case model.TermSpring:
		return d(time.January, 10), d(time.May, 11)
	case model.TermSummer:
		return d(time.May, 20), d(time.August, 11)
	default:
		return d(time.August, 20), d(time.December, 16)
	}
}
