package menu

import (
	"testing"

	"github.com/imkonsowa/menu-assistant/models"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()

	rows := []models.MenuRow{
		{Restaurant: "Xanders", Category: "Sandwiches", Dish: "Club Sandwich", Price: "450", Description: "Triple decker with chicken and egg"},
		{Restaurant: "Xanders", Category: "Sandwiches", Dish: "Steak Sandwich", Price: "1,250", Description: "Grilled steak strips"},
		{Restaurant: "Xanders", Category: "Sandwiches", Dish: "Grilled Chicken Sandwich", Price: "₨ 890"},
		{Restaurant: "Xanders", Category: "Burgers", Dish: "Classic Beef Burger", Price: "1,200", Description: "Beef patty, cheddar"},
		{Restaurant: "Xanders", Category: "Burgers", Dish: "Crispy Chicken Burger", Price: "950", Description: "Fried chicken thigh"},
		{Restaurant: "Xanders", Category: "Desserts", Dish: "Molten Lava Cake", Price: "N/A", Description: "Warm chocolate cake"},
		{Restaurant: "Xanders", Category: "Beef & Chicken Mains", Dish: "Steak", Price: "2,400", Description: "Ribeye with pepper sauce"},
		{Restaurant: "Xanders", Category: " Soups ", Dish: " Tomato Soup", Price: "550", Description: "Roasted tomatoes, basil "},
	}

	table, err := NewTable(Normalize(rows))
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}

	return table
}

func dishNames(records []models.MenuRecord) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Dish
	}

	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func TestNewTable_Empty(t *testing.T) {
	if _, err := NewTable(nil); err != ErrEmptyMenu {
		t.Fatalf("expected ErrEmptyMenu, got %v", err)
	}
}

func TestNewTable_IndexesInFirstAppearanceOrder(t *testing.T) {
	table := newTestTable(t)

	want := []string{"sandwiches", "burgers", "desserts", "beef & chicken mains", "soups"}
	if got := table.Categories(); !equalStrings(got, want) {
		t.Errorf("categories: expected %v, got %v", want, got)
	}
	if table.Len() != 8 {
		t.Errorf("expected 8 records, got %d", table.Len())
	}
	if got := table.Dishes(); len(got) != 8 || got[0] != "club sandwich" || got[7] != "tomato soup" {
		t.Errorf("unexpected dishes: %v", got)
	}
}

func TestTable_RecordsIsACopy(t *testing.T) {
	table := newTestTable(t)

	records := table.Records()
	records[0].Dish = "changed"

	if table.Records()[0].Dish != "club sandwich" {
		t.Fatal("mutating the returned records changed the table")
	}
}
