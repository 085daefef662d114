package menu

import "strings"

type synonym struct {
	term     string
	category string
}

// categorySynonyms maps casual terms to canonical category labels. Order matters: the first
// term contained in the query wins.
var categorySynonyms = []synonym{
	{"smoothies", "smoothies"},
	{"juice", "fresh juice"},
	{"tea", "homemade ice tea"},
	{"coffee", "cold coffee"},
	{"frappes", "frappes"},
	{"pizzas", "wood fired pizzas"},
	{"dessert", "desserts"},
	{"burger", "burgers"},
	{"sandwich", "sandwiches"},
	{"soup", "soups"},
	{"salad", "salads"},
	{"egg", "all day eggs"},
	{"breakfast", "all day sweet breakfast"},
	{"seafood", "seafood mains"},
	{"beef", "beef & chicken mains"},
	{"chicken", "beef & chicken mains"},
	{"pasta", "pastas"},
	{"gelato", "gelato shakes"},
	{"cocktail", "cocktails"},
	{"special", "specials menu"},
	{"extra", "extra"},
}

// DetectCategory resolves the category a query talks about: a category named in the query,
// then the closest category to the whole query, then the synonym table.
func (t *Table) DetectCategory(query string) (string, bool) {
	q := normalizeText(query)

	for _, cat := range t.categories {
		if q == cat || strings.Contains(q, cat) {
			return cat, true
		}
	}

	if cat, ok := closestMatch(q, t.categories); ok {
		return cat, true
	}

	for _, s := range categorySynonyms {
		if strings.Contains(q, s.term) {
			return s.category, true
		}
	}

	return "", false
}
