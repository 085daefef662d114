package menu

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/imkonsowa/menu-assistant/models"
)

var keywordSplitRe = regexp.MustCompile(`\s+|-|,`)

var stopWords = map[string]bool{
	"price": true, "of": true, "show": true, "tell": true, "me": true,
	"all": true, "menu": true, "under": true, "below": true, "over": true,
	"above": true, "rs": true, "₨": true, "from": true,
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// Keywords extracts the search terms of a query, dropping stop words, single characters
// and anything with a digit in it.
func Keywords(query string) []string {
	var keywords []string
	for _, w := range keywordSplitRe.Split(strings.ToLower(query), -1) {
		if w == "" || stopWords[w] || utf8.RuneCountInString(w) <= 1 || hasDigit(w) {
			continue
		}
		keywords = append(keywords, w)
	}

	return keywords
}

// FilterByKeywords keeps records whose dish, description or category contains any keyword.
// A query without keywords leaves the records untouched.
func FilterByKeywords(records []models.MenuRecord, query string) []models.MenuRecord {
	keywords := Keywords(query)
	if len(keywords) == 0 {
		return records
	}

	return filterRecords(records, func(r *models.MenuRecord) bool {
		fields := []string{
			strings.ToLower(r.Dish),
			strings.ToLower(r.Description),
			strings.ToLower(r.Category),
		}
		for _, kw := range keywords {
			for _, f := range fields {
				if strings.Contains(f, kw) {
					return true
				}
			}
		}

		return false
	})
}
