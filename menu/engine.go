package menu

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

const cardFailedMessage = "⚠️ The menu card could not be generated right now."

// CardRenderer writes a menu card of the whole table and returns the file it produced.
type CardRenderer interface {
	Render(table *Table) (string, error)
}

type Outcome string

const (
	OutcomeDish     Outcome = "dish"
	OutcomeListing  Outcome = "listing"
	OutcomeCard     Outcome = "card"
	OutcomeNotFound Outcome = "not_found"
)

// Answer is the resolved reply to one query.
type Answer struct {
	Text     string
	Outcome  Outcome
	Category string
	Price    PriceFilter
	CardPath string
}

type Engine struct {
	table *Table
	card  CardRenderer
}

type Option func(*Engine)

func WithCardRenderer(r CardRenderer) Option {
	return func(e *Engine) {
		e.card = r
	}
}

func NewEngine(table *Table, opts ...Option) (*Engine, error) {
	if table == nil || table.Len() == 0 {
		return nil, ErrEmptyMenu
	}

	e := &Engine{table: table}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

func (e *Engine) Table() *Table {
	return e.table
}

// Run resolves a free-text query to the text shown to the customer.
func (e *Engine) Run(ctx context.Context, query string) string {
	return e.Resolve(ctx, query).Text
}

func wantsCard(q string) bool {
	return strings.Contains(q, "pdf") || strings.Contains(q, "menu card")
}

// Resolve runs the query pipeline: price range, category, dish lookup, keyword fallback,
// then formatting and the optional menu card.
func (e *Engine) Resolve(ctx context.Context, query string) Answer {
	q := normalizeText(query)
	results := e.table.records

	price := DetectPriceFilter(q)
	if price.IsSet() {
		slog.DebugContext(ctx, "filtering dishes by price", "filter", price.String())
		results = price.Apply(results)
	}

	// A category is ignored when the price range alone already matched nothing.
	category, hasCategory := e.table.DetectCategory(q)
	if hasCategory && (!price.IsSet() || len(results) > 0) {
		slog.DebugContext(ctx, "category detected", "category", category)
		results = filterByCategory(results, category)
	}

	if m, ok := e.table.MatchDish(q); ok {
		slog.DebugContext(ctx, "dish matched", "kind", m.Kind, "query", m.Query, "matches", len(m.Records), "first", m.Records[0].Stringify())
		return Answer{
			Text:     FormatDishMatch(m),
			Outcome:  OutcomeDish,
			Category: category,
			Price:    price,
		}
	}

	if !price.IsSet() && !hasCategory {
		results = FilterByKeywords(results, q)
	}

	answer := Answer{
		Category: category,
		Price:    price,
	}

	card := wantsCard(q)
	if len(results) == 0 {
		if !card {
			answer.Text = NotFoundMessage
			answer.Outcome = OutcomeNotFound

			return answer
		}

		answer.Text, answer.CardPath = e.renderCard(ctx)
		answer.Outcome = OutcomeCard

		return answer
	}

	title := "Menu"
	if hasCategory {
		title = TitleCase(category)
	}
	answer.Text = FormatListing(title, results)
	answer.Outcome = OutcomeListing

	if card {
		notice, path := e.renderCard(ctx)
		answer.Text += "\n" + notice
		answer.CardPath = path
	}

	return answer
}

// renderCard renders the full, unfiltered table. A failure only changes the notice.
func (e *Engine) renderCard(ctx context.Context) (string, string) {
	if e.card == nil {
		slog.WarnContext(ctx, "menu card requested but no renderer is configured")
		return cardFailedMessage, ""
	}

	slog.DebugContext(ctx, "generating menu card", "rows", e.table.Len())
	path, err := e.card.Render(e.table)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate menu card", "error", err)
		return cardFailedMessage, ""
	}

	return fmt.Sprintf("📄 Generated **%s** for you!", filepath.Base(path)), path
}
