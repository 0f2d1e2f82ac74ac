// walletctl is the console front-end of the wallet ledger. Every command
// opens the embedded database, replays it into the in-memory account
// directory, runs a single operation and prints the result.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/branchbank/wallet-system/internal/core/ports"
	"github.com/branchbank/wallet-system/internal/core/service"
	"github.com/branchbank/wallet-system/internal/infrastructure/crypto"
	dbbadger "github.com/branchbank/wallet-system/internal/infrastructure/db/badger"
	"github.com/branchbank/wallet-system/internal/pkg/config"
	"github.com/branchbank/wallet-system/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "walletctl",
		Usage: "single-process wallet ledger",
		Commands: []*cli.Command{
			&register,
			&login,
			&changePassword,
			&deleteAccount,
			&deposit,
			&transfer,
			&payBill,
			&history,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env bundles the wired services behind a single close handle.
type env struct {
	auth   ports.AuthService
	wallet ports.WalletService
	close  func() error
}

func openEnv(ctx context.Context) (*env, error) {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	store, err := dbbadger.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	accounts, err := service.LoadDirectory(ctx, store, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	hasher := crypto.NewBcryptHasher(cfg.BcryptCost)
	return &env{
		auth:   service.NewAuthService(accounts, store, hasher, cfg.JWTSecret, cfg.TokenTTL, log),
		wallet: service.NewWalletService(accounts, store, log),
		close:  store.Close,
	}, nil
}

// withEnv wraps a command action with environment setup and teardown.
func withEnv(fn func(c *cli.Context, e *env) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := openEnv(c.Context)
		if err != nil {
			return err
		}
		defer e.close()
		return fn(c, e)
	}
}
