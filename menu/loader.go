package menu

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/imkonsowa/menu-assistant/models"
)

const utf8BOM = "\ufeff"

// Source yields the raw positional rows of a menu dataset.
type Source interface {
	Rows(ctx context.Context) ([]models.MenuRow, error)
}

// CSVSource reads a five column CSV file: restaurant, category, dish, price, description.
type CSVSource struct {
	Path       string
	SkipHeader bool
}

func (s *CSVSource) Rows(ctx context.Context) ([]models.MenuRow, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu file: %w", err)
	}
	defer f.Close()

	return ReadCSV(f, s.SkipHeader)
}

// ReadCSV parses positional menu rows. Short rows are padded with empty cells and
// extra cells are ignored.
func ReadCSV(r io.Reader, skipHeader bool) ([]models.MenuRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse menu csv: %w", err)
	}

	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], utf8BOM)
	}
	if skipHeader && len(records) > 0 {
		records = records[1:]
	}

	rows := make([]models.MenuRow, 0, len(records))
	for _, rec := range records {
		var cells [5]string
		copy(cells[:], rec)

		rows = append(rows, models.MenuRow{
			Restaurant:  cells[0],
			Category:    cells[1],
			Dish:        cells[2],
			Price:       cells[3],
			Description: cells[4],
		})
	}

	return rows, nil
}

var priceNoiseRe = regexp.MustCompile(`[^\d.,]`)

// CleanPrice turns a mixed-format price cell ("Rs. 1,250", "₨450") into a number.
// It returns nil when nothing numeric is left.
func CleanPrice(raw string) *float64 {
	s := priceNoiseRe.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}

	return &v
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Normalize case-folds and trims the text columns and parses prices.
// Malformed rows are kept; they just carry no price.
func Normalize(rows []models.MenuRow) []models.MenuRecord {
	records := make([]models.MenuRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.MenuRecord{
			Restaurant:  strings.TrimSpace(row.Restaurant),
			Category:    normalizeText(row.Category),
			Dish:        normalizeText(row.Dish),
			Price:       CleanPrice(row.Price),
			Description: normalizeText(row.Description),
		})
	}

	return records
}

// Load reads every row from src and builds the table. An empty dataset is an error.
func Load(ctx context.Context, src Source) (*Table, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu rows: %w", err)
	}

	table, err := NewTable(Normalize(rows))
	if err != nil {
		return nil, err
	}

	return table, nil
}
