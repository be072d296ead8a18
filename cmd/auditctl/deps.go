package main

import (
	"context"
	"fmt"
	"io"

	"github.com/heartmarshall/research-ledger/internal/adapter/postgres"
	"github.com/heartmarshall/research-ledger/internal/adapter/postgres/audit"
	"github.com/heartmarshall/research-ledger/internal/app"
	"github.com/heartmarshall/research-ledger/internal/auth"
	"github.com/heartmarshall/research-ledger/internal/config"
	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/service/ledger"
)

type ledgerClient interface {
	VerifyChain(ctx context.Context) (domain.ChainVerification, error)
	LastHash(ctx context.Context) (string, error)
	Export(ctx context.Context, w io.Writer) (int, error)
}

// deps are the side-effecting constructors commands use. Tests replace them.
// configPath is the --config flag; empty means config.Load's lookup.
type deps struct {
	openLedger func(ctx context.Context, configPath string) (ledgerClient, func(), error)
	newIssuer  func(configPath string) (*auth.JWTManager, error)
}

func defaultDeps() deps {
	return deps{
		openLedger: openLedger,
		newIssuer: func(configPath string) (*auth.JWTManager, error) {
			cfg, err := config.LoadFile(configPath)
			if err != nil {
				return nil, err
			}
			return auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL), nil
		},
	}
}

func openLedger(ctx context.Context, configPath string) (ledgerClient, func(), error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger := app.NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	svc := ledger.NewService(logger, audit.New(pool), postgres.NewTxManager(pool), nil, ledger.Config{
		Algorithm:     cfg.Ledger.Algorithm(),
		AppendRetries: cfg.Ledger.AppendRetries,
		LockKey:       cfg.Ledger.LockKey,
	})
	return svc, pool.Close, nil
}
