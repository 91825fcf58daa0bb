package history

import (
	"sort"
	"strings"

	"github.com/quarterline/arcade-circuit/internal/models"
)

// The query pipeline stages below are pure: each takes a slice and returns a
// new one, so they compose and test independently.

// Filter keeps tournaments matching the range/format/game/participant-count
// criteria.
func Filter(in []models.Tournament, opts QueryOptions) []models.Tournament {
	out := make([]models.Tournament, 0, len(in))
	for _, t := range in {
		if opts.EndedAfter != 0 && t.EndedAt < opts.EndedAfter {
			continue
		}
		if opts.EndedBefore != 0 && t.EndedAt > opts.EndedBefore {
			continue
		}
		if opts.Format != "" && t.Format != opts.Format {
			continue
		}
		if opts.GameID != "" && !t.HasGame(opts.GameID) {
			continue
		}
		if opts.MinParticipants != 0 && len(t.Participants) < opts.MinParticipants {
			continue
		}
		if opts.MaxParticipants != 0 && len(t.Participants) > opts.MaxParticipants {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Search keeps tournaments whose name, participant names, or game ids match
// the term, case-insensitively. An empty term keeps everything.
func Search(in []models.Tournament, term string) []models.Tournament {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return in
	}

	out := make([]models.Tournament, 0, len(in))
	for _, t := range in {
		if matchesSearch(t, term) {
			out = append(out, t)
		}
	}
	return out
}

func matchesSearch(t models.Tournament, term string) bool {
	if strings.Contains(strings.ToLower(t.Name), term) {
		return true
	}
	for _, p := range t.Participants {
		if strings.Contains(strings.ToLower(p.Name), term) {
			return true
		}
	}
	for _, g := range t.Games {
		if strings.Contains(strings.ToLower(g), term) {
			return true
		}
	}
	return false
}

// Sort orders tournaments by the given field. The sort is stable; an unset
// field leaves the input order.
func Sort(in []models.Tournament, field SortField, desc bool) []models.Tournament {
	out := append([]models.Tournament(nil), in...)
	if field == "" {
		return out
	}

	less := func(a, b models.Tournament) bool { return false }
	switch field {
	case SortByName:
		less = func(a, b models.Tournament) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortByStartDate:
		less = func(a, b models.Tournament) bool { return a.StartedAt < b.StartedAt }
	case SortByEndDate:
		less = func(a, b models.Tournament) bool { return a.EndedAt < b.EndedAt }
	case SortByParticipantCount:
		less = func(a, b models.Tournament) bool { return len(a.Participants) < len(b.Participants) }
	case SortByDuration:
		less = func(a, b models.Tournament) bool { return a.Duration() < b.Duration() }
	}

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Paginate slices one page out of the list. Page is 1-based; a zero
// PageSize disables pagination.
func Paginate(in []models.Tournament, page, pageSize int) []models.Tournament {
	if pageSize <= 0 {
		return in
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(in) {
		return []models.Tournament{}
	}
	end := start + pageSize
	if end > len(in) {
		end = len(in)
	}
	return in[start:end]
}
