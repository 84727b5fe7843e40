package storage

import (
	"fmt"
	"log/slog"

	"github.com/eventhub-br/eventhub/pkg/config"
	"github.com/eventhub-br/eventhub/pkg/model"

	slogGorm "github.com/orandin/slog-gorm"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase(logger *slog.Logger, c config.Postgresql) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.Host, c.Username, c.Password, c.DatabaseName, c.Port)

	databaseConfig := gorm.Config{
		Logger: slogGorm.New(slogGorm.WithHandler(logger.Handler())),
		// unique index violations surface as gorm.ErrDuplicatedKey so the
		// repositories can map them onto domain errors
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), &databaseConfig)
	if err != nil {
		return nil, err
	}

	if err := db.Use(otelgorm.NewPlugin()); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Event{},
		&model.Enrollment{},
		&model.Attendance{},
		&model.AuditEntry{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
