package menu

import (
	"errors"
	"slices"

	"github.com/imkonsowa/menu-assistant/models"
)

var ErrEmptyMenu = errors.New("menu has no rows")

// Table is the immutable, ordered menu every query is resolved against.
type Table struct {
	records    []models.MenuRecord
	categories []string
	dishes     []string
}

// NewTable builds a table from normalized records, keeping their order.
// Categories and dish names are indexed in order of first appearance; empty labels are skipped.
func NewTable(records []models.MenuRecord) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyMenu
	}

	t := &Table{
		records: slices.Clone(records),
	}

	seenCategories := make(map[string]bool)
	seenDishes := make(map[string]bool)
	for _, r := range t.records {
		if r.Category != "" && !seenCategories[r.Category] {
			seenCategories[r.Category] = true
			t.categories = append(t.categories, r.Category)
		}
		if r.Dish != "" && !seenDishes[r.Dish] {
			seenDishes[r.Dish] = true
			t.dishes = append(t.dishes, r.Dish)
		}
	}

	return t, nil
}

func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of every row in source order.
func (t *Table) Records() []models.MenuRecord {
	return slices.Clone(t.records)
}

func (t *Table) Categories() []string {
	return slices.Clone(t.categories)
}

func (t *Table) Dishes() []string {
	return slices.Clone(t.dishes)
}

func filterRecords(records []models.MenuRecord, keep func(r *models.MenuRecord) bool) []models.MenuRecord {
	var out []models.MenuRecord
	for i := range records {
		if keep(&records[i]) {
			out = append(out, records[i])
		}
	}

	return out
}

func filterByCategory(records []models.MenuRecord, category string) []models.MenuRecord {
	return filterRecords(records, func(r *models.MenuRecord) bool {
		return r.Category == category
	})
}
