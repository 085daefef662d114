package menu

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/imkonsowa/menu-assistant/models"
)

type PriceFilterKind int

const (
	PriceNone PriceFilterKind = iota
	PriceBetween
	PriceUnder
	PriceOver
)

// PriceFilter is a price range derived from a query. Bounds are inclusive.
// Low is the limit for Over, High the limit for Under.
type PriceFilter struct {
	Kind PriceFilterKind
	Low  float64
	High float64
}

func Between(low, high float64) PriceFilter {
	return PriceFilter{Kind: PriceBetween, Low: low, High: high}
}

func Under(limit float64) PriceFilter {
	return PriceFilter{Kind: PriceUnder, High: limit}
}

func Over(limit float64) PriceFilter {
	return PriceFilter{Kind: PriceOver, Low: limit}
}

func (f PriceFilter) IsSet() bool {
	return f.Kind != PriceNone
}

// Matches reports whether a price passes the filter. An absent price never passes a set filter.
func (f PriceFilter) Matches(price *float64) bool {
	switch f.Kind {
	case PriceNone:
		return true
	case PriceBetween:
		return price != nil && *price >= f.Low && *price <= f.High
	case PriceUnder:
		return price != nil && *price <= f.High
	case PriceOver:
		return price != nil && *price >= f.Low
	}

	return false
}

func (f PriceFilter) Apply(records []models.MenuRecord) []models.MenuRecord {
	if !f.IsSet() {
		return records
	}

	return filterRecords(records, func(r *models.MenuRecord) bool {
		return f.Matches(r.Price)
	})
}

func (f PriceFilter) String() string {
	switch f.Kind {
	case PriceBetween:
		return fmt.Sprintf("between %.2f and %.2f", f.Low, f.High)
	case PriceUnder:
		return fmt.Sprintf("under %.2f", f.High)
	case PriceOver:
		return fmt.Sprintf("over %.2f", f.Low)
	}

	return "none"
}

const amountPattern = `([\d,]+(?:\.\d+)?)`

var (
	rsMarkerRe    = regexp.MustCompile(`rs\s*(\d+)`)
	rupeeMarkerRe = regexp.MustCompile(`₨\s*(\d+)`)

	betweenRe = regexp.MustCompile(`between\s*` + amountPattern + `\s*(?:and|to|-)\s*` + amountPattern)
	underRe   = regexp.MustCompile(`(?:under|below|less than)\s*` + amountPattern)
	overRe    = regexp.MustCompile(`(?:over|above|more than|greater than)\s*` + amountPattern)
)

func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

// DetectPriceFilter finds the first price range phrase in the query.
// "between" is tried before "under" and "over".
func DetectPriceFilter(query string) PriceFilter {
	q := strings.ToLower(query)
	q = rsMarkerRe.ReplaceAllString(q, "$1")
	q = rupeeMarkerRe.ReplaceAllString(q, "$1")

	if m := betweenRe.FindStringSubmatch(q); m != nil {
		low, okLow := parseAmount(m[1])
		high, okHigh := parseAmount(m[2])
		if okLow && okHigh {
			return Between(low, high)
		}
	}

	if m := underRe.FindStringSubmatch(q); m != nil {
		if limit, ok := parseAmount(m[1]); ok {
			return Under(limit)
		}
	}

	if m := overRe.FindStringSubmatch(q); m != nil {
		if limit, ok := parseAmount(m[1]); ok {
			return Over(limit)
		}
	}

	return PriceFilter{}
}
