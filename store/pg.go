package store

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/imkonsowa/menu-assistant/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const importBatchSize = 200

// Pg keeps the raw menu rows in a postgres table so the assistant can load them as a menu source.
type Pg struct {
	db *gorm.DB
}

func NewMenuPg(connStr string) (*Pg, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, err
	}

	return &Pg{db: db}, nil
}

// Rows returns every stored row in insertion order.
func (s *Pg) Rows(ctx context.Context) ([]models.MenuRow, error) {
	var rows []models.MenuRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list menu rows: %w", err)
	}

	return rows, nil
}

// Replace swaps the stored menu for rows in a single transaction.
func (s *Pg) Replace(ctx context.Context, rows []models.MenuRow) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.MenuRow{}); err != nil {
		return fmt.Errorf("failed to migrate menu rows: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.MenuRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear menu rows: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}

		batch := make([]models.MenuRow, len(rows))
		for i, row := range rows {
			row.ID = 0
			batch[i] = row
		}

		if err := tx.CreateInBatches(&batch, importBatchSize).Error; err != nil {
			return fmt.Errorf("failed to create menu rows: %w", err)
		}

		return nil
	})
}

func (s *Pg) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
