package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/repowise/waitlist-api/config"
	"github.com/repowise/waitlist-api/domain/waitlist"
	"github.com/repowise/waitlist-api/internal/log"
	"github.com/repowise/waitlist-api/pkg/migrations"
	"github.com/repowise/waitlist-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	logger := log.NewJSONLogger()

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "migrate":
		runMigrations(logger)
		return

	case "hash-password":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: cli hash-password <password>")
			os.Exit(1)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(args[1]), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(hash))
		return

	case "referral-code":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: cli referral-code <email>")
			os.Exit(1)
		}
		fmt.Println(waitlist.DeriveCode(args[1]))
		return

	case "help", "-h", "--help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func runMigrations(logger *log.Logger) {
	db, err := config.NewDatabase(logger, nil)
	if err != nil {
		logger.Error("Failed to connect to database for migration", "error", err.Error())
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get SQL DB instance for migration", "error", err.Error())
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close SQL DB after migration", "error", err.Error())
		}
	}()

	migrationsDir := utils.GetEnvTrimmedOrDefault("MIGRATIONS_DIR", "migrations")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := migrations.Up(ctx, sqlDB, migrations.Config{Dir: migrationsDir, Logger: logger}); err != nil {
		logger.Error("Database migration failed", "error", err.Error())
		os.Exit(1)
	}

	logger.Info("Database migrations completed")
}

func printUsage() {
	fmt.Println("Usage: cli <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate                  Run database migrations and exit (Postgres only)")
	fmt.Println("  hash-password <password> Print a bcrypt hash for ADMIN_PASSWORD_HASH")
	fmt.Println("  referral-code <email>    Print the referral code derived for an email")
}
