package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/inventory/backend/internal/domain/identity"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/internal/infrastructure/config"
	"github.com/inventory/backend/internal/infrastructure/logger"
	"github.com/inventory/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "create":
		fs := flag.NewFlagSet("create", flag.ExitOnError)
		email := fs.String("email", "", "Administrator email (required)")
		name := fs.String("name", "Administrator", "Display name")
		password := fs.String("password", "", "Password; falls back to INV_ADMIN_PASSWORD")
		_ = fs.Parse(os.Args[2:])

		if *password == "" {
			*password = os.Getenv("INV_ADMIN_PASSWORD")
		}
		if *email == "" || *password == "" {
			fs.Usage()
			os.Exit(2)
		}
		if err := run(*name, *email, *password); err != nil {
			fmt.Fprintf(os.Stderr, "create admin: %v\n", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(1)
	}
}

func run(name, email, password string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync(log) }()

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel("warn")))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if db.Dialect() != "postgres" {
		// SQLite files start empty
		if err := db.AutoMigrate(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, created, err := upsertAdmin(ctx, persistence.NewGormUserRepository(db.DB), name, email, password)
	if err != nil {
		return err
	}
	log.Info("Administrator ready",
		zap.Int64("id", user.ID),
		zap.String("email", user.Email),
		zap.Bool("created", created),
	)
	return nil
}

// upsertAdmin creates the account or promotes, reactivates and resets an
// existing one with the same email
func upsertAdmin(ctx context.Context, users identity.UserRepository, name, email, password string) (*identity.User, bool, error) {
	user, err := users.FindByEmail(ctx, identity.NormalizeEmail(email))
	created := false
	switch {
	case errors.Is(err, shared.ErrNotFound):
		user, err = identity.NewUser(name, email, identity.RoleAdmin)
		if err != nil {
			return nil, false, err
		}
		created = true
	case err != nil:
		return nil, false, err
	default:
		if err := user.Update(user.Name, user.Email, identity.RoleAdmin); err != nil {
			return nil, false, err
		}
		if !user.Active {
			if err := user.Activate(); err != nil {
				return nil, false, err
			}
		}
	}

	if err := user.SetPassword(password); err != nil {
		return nil, false, err
	}
	if err := users.Save(ctx, user); err != nil {
		return nil, false, err
	}
	return user, created, nil
}

func printUsage() {
	fmt.Println(`Inventory admin tool

Usage:
  admin create -email <email> [-name <name>] [-password <password>]

Creates an ADMIN account, or promotes and resets the account that already uses the email.
Database settings are read from config.toml and INV_* environment variables.`)
}
