package menu

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/imkonsowa/menu-assistant/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	CurrencySymbol  = "₨"
	NotFoundMessage = "😔 Sorry, no matching dishes found. Try another category or keyword."
)

// TitleCase upper-cases the first letter of every word.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// GroupedAmount renders a price rounded to a whole number with thousands separators.
func GroupedAmount(price float64) string {
	return humanize.Comma(int64(math.RoundToEven(price)))
}

func FormatPrice(price *float64) string {
	if price == nil {
		return "N/A"
	}

	return CurrencySymbol + GroupedAmount(*price)
}

func dishBlock(r models.MenuRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** — %s", TitleCase(r.Dish), FormatPrice(r.Price))
	if r.Description != "" {
		fmt.Fprintf(&b, "\n*%s*", Capitalize(r.Description))
	}

	return b.String()
}

func FormatDishMatch(m DishMatch) string {
	switch m.Kind {
	case DishExact:
		return dishBlock(m.Records[0])
	case DishClose:
		return dishBlock(m.Records[0]) + fmt.Sprintf("\n_(closest match for %q)_", m.Query)
	}

	var b strings.Builder
	b.WriteString("### 🍽 Dish Details\n\n")
	for _, r := range m.Records {
		b.WriteString(dishBlock(r))
		b.WriteString("\n\n")
	}

	return b.String()
}

// FormatListing renders a titled list of dishes, one block per record.
func FormatListing(title string, records []models.MenuRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### 🍴 %s Items\n\n", title)

	for _, r := range records {
		fmt.Fprintf(&b, "**%s** — %s\n", TitleCase(r.Dish), FormatPrice(r.Price))
		if r.Description != "" {
			fmt.Fprintf(&b, "*%s*\n\n", Capitalize(r.Description))
		}
	}

	return b.String()
}
