package menu

import (
	"regexp"
	"strings"

	"github.com/imkonsowa/menu-assistant/models"
)

// maxDishMatches is the most partial matches shown individually; more is too ambiguous.
const maxDishMatches = 5

var (
	fillerRe   = regexp.MustCompile(`\b(price|cost|rate|tell me|show me|of|for|how much|what is the price of|what is the price)\b`)
	fromMenuRe = regexp.MustCompile(`\bfrom menu\b`)
)

type DishMatchKind int

const (
	DishExact DishMatchKind = iota + 1
	DishClose
	DishPartial
)

type DishMatch struct {
	Kind    DishMatchKind
	Query   string
	Records []models.MenuRecord
}

// DishQuery strips the filler phrases people wrap around a dish name.
func DishQuery(query string) string {
	q := fillerRe.ReplaceAllString(strings.ToLower(query), "")
	q = fromMenuRe.ReplaceAllString(q, "")

	return strings.Join(strings.Fields(q), " ")
}

// MatchDish looks the query up as a dish name over the whole table: exact name first,
// then the closest name, then names containing the query when there are at most five.
func (t *Table) MatchDish(query string) (DishMatch, bool) {
	q := DishQuery(query)
	if q == "" {
		return DishMatch{}, false
	}

	for _, r := range t.records {
		if r.Dish == q {
			return DishMatch{Kind: DishExact, Query: q, Records: []models.MenuRecord{r}}, true
		}
	}

	if name, ok := closestMatch(q, t.dishes); ok {
		for _, r := range t.records {
			if r.Dish == name {
				return DishMatch{Kind: DishClose, Query: q, Records: []models.MenuRecord{r}}, true
			}
		}
	}

	partial := filterRecords(t.records, func(r *models.MenuRecord) bool {
		return strings.Contains(r.Dish, q)
	})
	if len(partial) > 0 && len(partial) <= maxDishMatches {
		return DishMatch{Kind: DishPartial, Query: q, Records: partial}, true
	}

	return DishMatch{}, false
}

// LookupDish answers a dish-specific query, or reports false when the query does not
// name a dish precisely enough.
func (t *Table) LookupDish(query string) (string, bool) {
	m, ok := t.MatchDish(query)
	if !ok {
		return "", false
	}

	return FormatDishMatch(m), true
}
