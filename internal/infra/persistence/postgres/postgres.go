package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"minibank/config"
	"minibank/internal/domain/lifecycle"
	"minibank/internal/errors"
	"minibank/internal/infra/persistence/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates PostgreSQL client mapping
func New(params Params) (*gorm.DB, error) {
	cfg := params.Config.Postgres

	db, err := gorm.Open(pgdriver.Open(primaryDSN(cfg)), &gorm.Config{
		// Surface driver errors as GORM sentinels (gorm.ErrDuplicatedKey and
		// friends) so repositories can match them with errors.Is.
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	if len(cfg.Replicas) > 0 {
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicaDialectors(cfg),
		})); err != nil {
			return nil, errors.Wrap(err, "failed to register read replicas")
		}
	}

	db = db.Session(&gorm.Session{
		// Disable GORM's per-statement implicit transaction.
		// Every repository operation is a single statement.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	applyPoolLimits(sqlDB, cfg)

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	// Add lifecycle management
	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			if err := runMigrations(ctx, sqlDB); err != nil {
				return errors.Wrap(err, "failed to run schema migrations")
			}

			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// runMigrations brings the schema up to date from the embedded goose files.
// Goose records applied versions in its own table, so restarts are no-ops.
func runMigrations(ctx context.Context, sqlDB *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return errors.Wrap(err, "failed to set goose dialect")
	}

	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	return nil
}

func applyPoolLimits(sqlDB *sql.DB, cfg *config.PostgresConfig) {
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

func primaryDSN(cfg *config.PostgresConfig) string {
	return buildDSN(cfg.Host, cfg.Port, cfg.UserName, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// replicaDialectors builds dialectors for the configured read replicas.
// Replicas share the primary's database name and SSL mode.
func replicaDialectors(cfg *config.PostgresConfig) []gorm.Dialector {
	dialectors := make([]gorm.Dialector, 0, len(cfg.Replicas))
	for _, replica := range cfg.Replicas {
		dsn := buildDSN(replica.Host, replica.Port, replica.UserName, replica.Password, cfg.DBName, cfg.SSLMode)
		dialectors = append(dialectors, pgdriver.Open(dsn))
	}

	return dialectors
}

func buildDSN(host, port, user, password, dbName, sslMode string) string {
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode)
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("maxOpenConns", cur.MaxOpenConnections),
					slog.Int("openConns", cur.OpenConnections),
					slog.Int("inUseConns", cur.InUse),
					slog.Int("idleConns", cur.Idle),
					slog.Int64("waitCountTotal", cur.WaitCount),
					slog.Duration("waitDurationTotal", cur.WaitDuration),
				}
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					logger.LogAttrs(ctx, slog.LevelWarn, "Postgres pool wait detected", attrs...)
				} else {
					logger.LogAttrs(ctx, slog.LevelDebug, "Postgres pool wait observed", attrs...)
				}
			}

			prev = cur
		}
	}
}
