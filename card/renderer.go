package card

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/imkonsowa/menu-assistant/menu"
	"github.com/imkonsowa/menu-assistant/models"
)

var ErrNoFont = errors.New("no usable font for the menu card")

const (
	defaultOutput     = "menu_card.pdf"
	defaultTitle      = "Restaurant Menu"
	defaultPageBreakY = 250
)

// Font is a TrueType font file registered under a family name.
type Font struct {
	Family string
	Path   string
}

type Config struct {
	Output     string
	Title      string
	Fonts      []Font
	PageBreakY float64
}

// Renderer writes the whole menu table as a printable A4 card.
type Renderer struct {
	cfg Config
}

func NewRenderer(cfg Config) *Renderer {
	if cfg.Output == "" {
		cfg.Output = defaultOutput
	}
	if cfg.Title == "" {
		cfg.Title = defaultTitle
	}
	if cfg.PageBreakY <= 0 {
		cfg.PageBreakY = defaultPageBreakY
	}

	return &Renderer{cfg: cfg}
}

func (r *Renderer) Output() string {
	return r.cfg.Output
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	typography = strings.NewReplacer(
		"\u2018", "'",
		"\u2019", "'",
		"\u201c", `"`,
		"\u201d", `"`,
		"\u2013", "-",
		"\u2014", "-",
	)
)

func cleanText(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(typography.Replace(s)), " ")
}

func priceText(price *float64) string {
	if price == nil {
		return "N/A"
	}

	return "Rs" + menu.GroupedAmount(*price)
}

// newDocument starts an A4 document with the first configured font that loads.
// Every font is registered for the regular, bold and italic styles.
func (r *Renderer) newDocument() (*fpdf.Fpdf, string, error) {
	var errs []error
	for _, font := range r.cfg.Fonts {
		data, err := os.ReadFile(font.Path)
		if err != nil {
			errs = append(errs, fmt.Errorf("font %s: %w", font.Family, err))
			continue
		}

		pdf := fpdf.New("P", "mm", "A4", "")
		for _, style := range []string{"", "B", "I"} {
			pdf.AddUTF8FontFromBytes(font.Family, style, data)
		}
		if err := pdf.Error(); err != nil {
			errs = append(errs, fmt.Errorf("font %s: %w", font.Family, err))
			continue
		}

		return pdf, font.Family, nil
	}

	if len(errs) == 0 {
		return nil, "", ErrNoFont
	}

	return nil, "", fmt.Errorf("%w: %w", ErrNoFont, errors.Join(errs...))
}

// groupByCategory keeps categories in order of first appearance and dishes in table order
// within each category.
func groupByCategory(records []models.MenuRecord) ([]string, map[string][]models.MenuRecord) {
	var order []string
	groups := make(map[string][]models.MenuRecord)
	for _, rec := range records {
		if _, ok := groups[rec.Category]; !ok {
			order = append(order, rec.Category)
		}
		groups[rec.Category] = append(groups[rec.Category], rec)
	}

	return order, groups
}

// Render writes the full table to the configured output file and returns its path.
func (r *Renderer) Render(table *menu.Table) (string, error) {
	pdf, family, err := r.newDocument()
	if err != nil {
		return "", err
	}

	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont(family, "B", 16)
	pdf.CellFormat(0, 10, cleanText(r.cfg.Title), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	order, groups := groupByCategory(table.Records())
	for _, category := range order {
		pdf.Ln(5)
		pdf.SetFont(family, "B", 14)
		pdf.CellFormat(0, 10, cleanText(menu.TitleCase(category)), "", 1, "", false, 0, "")

		for _, rec := range groups[category] {
			if pdf.GetY() > r.cfg.PageBreakY {
				pdf.AddPage()
			}

			pdf.SetFont(family, "", 12)
			line := fmt.Sprintf("%s - %s", cleanText(menu.TitleCase(rec.Dish)), priceText(rec.Price))
			pdf.CellFormat(0, 8, line, "", 1, "", false, 0, "")

			if rec.Description != "" {
				pdf.SetFont(family, "I", 10)
				pdf.MultiCell(0, 6, cleanText(menu.Capitalize(rec.Description)), "", "", false)
			}
		}
	}

	if dir := filepath.Dir(r.cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create menu card directory: %w", err)
		}
	}

	if err := pdf.OutputFileAndClose(r.cfg.Output); err != nil {
		return "", fmt.Errorf("failed to write menu card: %w", err)
	}

	return r.cfg.Output, nil
}
