package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/imkonsowa/menu-assistant/card"
	"github.com/imkonsowa/menu-assistant/config"
	"github.com/imkonsowa/menu-assistant/menu"
	"github.com/imkonsowa/menu-assistant/store"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/tmc/langchaingo/memory/sqlite3"
	"golang.org/x/sync/errgroup"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := config.LoadConfig()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table, err := loadTable(ctx, cfg)
	if err != nil {
		log.Fatal("failed to load menu: ", err)
	}
	slog.Info("menu loaded", "source", cfg.Menu.Source, "rows", table.Len(), "categories", len(table.Categories()))

	renderer := newCardRenderer(cfg.Card)
	slog.Info("menu card renderer ready", "output", renderer.Output(), "fonts", len(cfg.Card.Fonts))

	engine, err := menu.NewEngine(table, menu.WithCardRenderer(renderer))
	if err != nil {
		log.Fatal(err)
	}

	var history ChatHistory
	if cfg.History.Enabled {
		historyDb, err := sql.Open("sqlite3", cfg.History.Path)
		if err != nil {
			log.Fatal("failed to open chat history: ", err)
		}
		defer historyDb.Close()

		history = sqlite3.NewSqliteChatMessageHistory(
			sqlite3.WithSession(cfg.History.Session),
			sqlite3.WithDB(historyDb),
		)
	}

	assistant := NewAssistant(engine, history)
	agent := NewAgent(cfg, assistant)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Nats.Enabled {
		nc, err := NewNatsClient(&cfg.Nats)
		if err != nil {
			log.Fatal("failed to connect to nats: ", err)
		}
		defer nc.Close()

		assistant.SetPublisher(nc)

		queue := NewQueryQueue(ctx, cfg.Nats.Workers, cfg.Nats.QueueSize, AssistantQueryHandler(assistant))
		g.Go(func() error {
			defer func() {
				queue.Stop()
				queue.Wait()
			}()

			return nc.Serve(ctx, cfg.Nats.QuerySubject, queue)
		})
	}

	g.Go(func() error {
		return agent.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("failed to run the agent: %v", err)
	}
}

func loadTable(ctx context.Context, cfg *config.Config) (*menu.Table, error) {
	switch cfg.Menu.Source {
	case "", "csv":
		return menu.Load(ctx, &menu.CSVSource{Path: cfg.Menu.Path, SkipHeader: cfg.Menu.SkipHeader})
	case "postgres":
		pg, err := store.NewMenuPg(cfg.Postgres.ConnStr())
		if err != nil {
			return nil, err
		}
		defer pg.Close()

		return menu.Load(ctx, pg)
	case "sqlite":
		db, err := store.NewMenuSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		return menu.Load(ctx, db)
	}

	return nil, fmt.Errorf("unknown menu source %q", cfg.Menu.Source)
}

func newCardRenderer(cfg config.Card) *card.Renderer {
	fonts := make([]card.Font, 0, len(cfg.Fonts))
	for _, f := range cfg.Fonts {
		fonts = append(fonts, card.Font{Family: f.Family, Path: f.Path})
	}

	return card.NewRenderer(card.Config{
		Output:     cfg.Output,
		Title:      cfg.Title,
		Fonts:      fonts,
		PageBreakY: cfg.PageBreakY,
	})
}
