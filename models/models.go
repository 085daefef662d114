package models

import (
	"fmt"
	"strings"
)

// MenuRow is one raw row of the menu dataset, exactly as read from the source.
// The five columns are positional: restaurant, category, dish, price, description.
type MenuRow struct {
	ID          uint64 `gorm:"primaryKey" json:"-"`
	Restaurant  string `json:"restaurant"`
	Category    string `json:"category"`
	Dish        string `json:"dish"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

func (r *MenuRow) TableName() string {
	return "menu_rows"
}

// MenuRecord is a normalized menu row. Price is nil when the source cell could not be parsed.
type MenuRecord struct {
	Restaurant  string   `json:"restaurant"`
	Category    string   `json:"category"`
	Dish        string   `json:"dish"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
}

func (m *MenuRecord) Stringify() string {
	price := "N/A"
	if m.Price != nil {
		price = fmt.Sprintf("%.2f", *m.Price)
	}

	return fmt.Sprintf("MenuRecord: %s, Category: %s, Price: %s, Description: %s", m.Dish, m.Category, price, strings.TrimSpace(m.Description))
}
