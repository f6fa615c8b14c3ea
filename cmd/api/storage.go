package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/delivery-accounts/internal/application/account"
	"github.com/jhoicas/delivery-accounts/internal/domain/repository"
	"github.com/jhoicas/delivery-accounts/internal/infrastructure/memory"
	"github.com/jhoicas/delivery-accounts/internal/infrastructure/mongodb"
	"github.com/jhoicas/delivery-accounts/internal/infrastructure/postgres"
	"github.com/jhoicas/delivery-accounts/pkg/config"
	"github.com/jhoicas/delivery-accounts/pkg/logger"
)

// storage repositorios y unidad de trabajo del backend elegido.
type storage struct {
	accounts      repository.AccountRepository
	verifications repository.VerificationRepository
	tx            account.TxRunner
	close         func()
}

// openStorage conecta el backend indicado por STORAGE_DRIVER.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.Storage.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &storage{
			accounts:      postgres.NewAccountRepository(pool),
			verifications: postgres.NewVerificationRepository(pool),
			tx:            postgres.NewTxRunner(pool),
			close:         pool.Close,
		}, nil

	case config.StorageMongo:
		client, db, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("conexión a MongoDB: %w", err)
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		transactional, err := mongodb.SupportsTransactions(ctx, db)
		if err != nil {
			log.Warn().Err(err).Msg("no se pudo detectar la topología de MongoDB")
		}
		if !transactional {
			log.Warn().Msg("MongoDB standalone: unidades de trabajo con compensación, sin transacciones")
		}
		return &storage{
			accounts:      mongodb.NewAccountRepository(db),
			verifications: mongodb.NewVerificationRepository(db),
			tx:            mongodb.NewTxRunner(client, db, transactional),
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.Error().Err(err).Msg("desconectar MongoDB")
				}
			},
		}, nil

	case config.StorageMemory:
		log.Warn().Msg("backend en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			accounts:      memory.NewAccountRepository(s),
			verifications: memory.NewVerificationRepository(s),
			tx:            memory.NewTxRunner(s),
			close:         func() {},
		}, nil

	default:
		return nil, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.Storage.Driver)
	}
}
