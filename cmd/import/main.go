package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/imkonsowa/menu-assistant/config"
	"github.com/imkonsowa/menu-assistant/menu"
	"github.com/imkonsowa/menu-assistant/models"
	"github.com/imkonsowa/menu-assistant/store"
	"github.com/joho/godotenv"
)

type rowStore interface {
	Replace(ctx context.Context, rows []models.MenuRow) error
	Close() error
}

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := config.LoadConfig()

	target := flag.String("target", "sqlite", "where to store the menu rows: postgres or sqlite")
	path := flag.String("csv", cfg.Menu.Path, "menu csv file to import")
	skipHeader := flag.Bool("skip-header", cfg.Menu.SkipHeader, "skip the first csv row")
	flag.Parse()

	ctx := context.Background()
	src := &menu.CSVSource{Path: *path, SkipHeader: *skipHeader}

	rows, err := src.Rows(ctx)
	if err != nil {
		log.Fatal("failed to read menu csv: ", err)
	}
	if len(rows) == 0 {
		log.Fatal(menu.ErrEmptyMenu)
	}

	table, err := menu.NewTable(menu.Normalize(rows))
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("read menu csv", "path", *path, "rows", len(rows), "categories", len(table.Categories()), "dishes", len(table.Dishes()))

	var db rowStore
	switch *target {
	case "postgres":
		db, err = store.NewMenuPg(cfg.Postgres.ConnStr())
	case "sqlite":
		db, err = store.NewMenuSQLite(cfg.SQLite.Path)
	default:
		log.Fatalf("unknown target %q", *target)
	}
	if err != nil {
		log.Fatal("failed to connect to ", *target, ": ", err)
	}
	defer db.Close()

	if err := db.Replace(ctx, rows); err != nil {
		log.Fatal("failed to import menu rows: ", err)
	}

	slog.Info("import complete", "target", *target, "rows", humanize.Comma(int64(len(rows))))
}
