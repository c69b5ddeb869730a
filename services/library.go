package services

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"keeply/backend/models"
)

// maxSearchDistance caps how far a title may be from the query before it
// stops counting as a match.
const maxSearchDistance = 4

// SearchBooks ranks a user's books against a free-text query. Substring
// matches come first, then titles within a small Levenshtein distance of the
// query, so typos like "hobit" still find The Hobbit. Matching is
// case-insensitive; ties keep their original order.
func SearchBooks(books []models.Book, query string) []models.Book {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	type scored struct {
		book models.Book
		dist int
	}
	var hits []scored
	for _, b := range books {
		title := strings.ToLower(b.Title)
		if strings.Contains(title, q) {
			hits = append(hits, scored{book: b, dist: 0})
			continue
		}
		if d := levenshtein.ComputeDistance(q, title); d <= maxSearchDistance {
			hits = append(hits, scored{book: b, dist: d})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	out := make([]models.Book, len(hits))
	for i, h := range hits {
		out[i] = h.book
	}
	return out
}
