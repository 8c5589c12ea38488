package notes

import (
	"strings"

	"github.com/dmitrijs2005/quicknotes/internal/server/models"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns a search term into an ILIKE pattern that matches it as a
// literal substring.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// matches is the in-memory equivalent of the ILIKE filter.
func matches(n *models.Note, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(n.Title), term) ||
		strings.Contains(strings.ToLower(n.Content), term)
}
