package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/simaogato/assetboard-backend/internal/adapter/repository/memory"
	"github.com/simaogato/assetboard-backend/internal/adapter/repository/sheets"
	"github.com/simaogato/assetboard-backend/internal/adapter/repository/sqlstore"
	"github.com/simaogato/assetboard-backend/internal/config"
	"github.com/simaogato/assetboard-backend/internal/domain"
	"github.com/simaogato/assetboard-backend/internal/usecase/seeder"
)

// connectAttempts bounds how long startup waits for a database container
const connectAttempts = 5

var retryDelay = 2 * time.Second

// OpenStore builds the record store selected by cfg.StoreBackend.
// SQL backends are migrated and seeded with the DB and Comments tables.
// The returned close function releases the underlying connection.
func OpenStore(ctx context.Context, cfg *config.Config) (domain.RecordStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreBackend {
	case config.BackendSheets:
		var (
			store *sheets.Store
			err   error
		)
		if cfg.GoogleClientEmail != "" && cfg.GooglePrivateKey != "" {
			store, err = sheets.NewWithServiceAccount(ctx, cfg.SheetID, cfg.GoogleClientEmail, cfg.GooglePrivateKey)
		} else {
			// Application default credentials
			store, err = sheets.New(ctx, cfg.SheetID)
		}
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case config.BackendPostgres:
		return openSQL(ctx, sqlstore.DriverPostgres, cfg.DBConnStr)

	case config.BackendSQLite:
		return openSQL(ctx, sqlstore.DriverSQLite, cfg.SQLitePath)

	case config.BackendMemory:
		log.Println("Using in-memory store, data is lost on exit")
		return memory.NewStore(), noop, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

func openSQL(ctx context.Context, driver, conn string) (domain.RecordStore, func() error, error) {
	var (
		db  *sqlstore.DB
		err error
	)
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = sqlstore.NewDB(driver, conn)
		if err == nil {
			break
		}
		if attempt < connectAttempts {
			log.Printf("Database not ready (attempt %d/%d): %v", attempt, connectAttempts, err)
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	repo := sqlstore.NewRecordRepository(db)
	if err := seeder.NewTableSeeder(repo).Seed(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to seed tables: %w", err)
	}
	log.Println("Record tables seeded successfully")

	return repo, db.Close, nil
}
