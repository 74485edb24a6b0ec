package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/evidentia/opshub/internal/model"
)

// Manager wraps the durable store. All methods are safe on a nil manager so
// the server can run without persistence configured.
type Manager struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB) *Manager {
	return &Manager{
		db:     db,
		logger: slog.With("logger", "dbm"),
	}
}

func (mm *Manager) Migrate() error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	return mm.db.AutoMigrate(&model.RadioLog{})
}

func (mm *Manager) Create(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Create(s).Error

	if err != nil {
		mm.logger.Error("error create object", slog.Any("error", err))
	}

	return err
}

// WriteRadio appends one transmission record, implementing hub.RadioStore.
func (mm *Manager) WriteRadio(rec *model.RadioLog) error {
	if rec == nil {
		return nil
	}

	return mm.Create(rec)
}

func (mm *Manager) RadioQuery() *RadioQuery {
	return NewRadioQuery(mm.db)
}
