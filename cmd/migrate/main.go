package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"chatline/config"
	"chatline/internal/repository"
	"chatline/pkg/database"
)

const usage = `
Chatline - Database CLI Tool

Usage:
  migrate <command> [flags]

Commands:
  up          Apply all pending migrations
  down        Roll back the most recent migration
  status      Show the state of every migration
  seed-dev    Seed with development users and messages
  reset       Roll back every migration and apply them again (DANGEROUS)

Flags:
  -users string      Comma separated usernames for seed-dev (default "alice,bob,carol")
  -password string   Password for seeded users (default "password")
  -messages int      Number of messages for seed-dev (default 6)

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed-dev -users=dave,erin -messages=10
  go run cmd/migrate/main.go reset
`

func main() {
	command, seedCfg, err := parseArgs(os.Args[1:])
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Println(err)
		}
		fmt.Print(usage)
		os.Exit(1)
	}

	ctx := context.Background()

	cfg := config.LoadConfig()
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer pool.Close()

	migrator, err := database.NewMigrator(pool)
	if err != nil {
		log.Fatalf("Migrator setup failed: %v", err)
	}

	switch command {
	case "up":
		log.Println("Running migrations UP...")
		if err := migrator.Up(ctx); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations completed successfully")
	case "down":
		log.Println("Rolling back the latest migration...")
		if err := migrator.Down(ctx); err != nil {
			log.Fatalf("Rollback failed: %v", err)
		}
		log.Println("Rollback completed successfully")
	case "status":
		if err := migrator.Status(ctx); err != nil {
			log.Fatalf("Status failed: %v", err)
		}
	case "seed-dev":
		result, err := database.SeedDevelopment(ctx,
			repository.NewUserRepository(pool), repository.NewMessageRepository(pool), seedCfg)
		if err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Println("Seed Summary:")
		log.Printf("   - Users: %d", len(result.Users))
		log.Printf("   - Messages: %d", len(result.Messages))
	case "reset":
		log.Println("WARNING: This will roll back every migration and apply them again!")
		if err := migrator.Reset(ctx); err != nil {
			log.Fatalf("Reset failed: %v", err)
		}
		log.Println("Database reset completed")
	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}

// parseArgs takes the command first and the flags after it, so
// "seed-dev -users=dave,erin" reaches the seed flags.
func parseArgs(args []string) (string, *database.SeedConfig, error) {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return "", nil, errors.New("missing command")
	}
	command := args[0]

	defaults := database.DefaultSeedConfig()
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	users := fs.String("users", strings.Join(defaults.Usernames, ","), "Comma separated usernames for seed-dev")
	password := fs.String("password", defaults.Password, "Password for seeded users")
	messages := fs.Int("messages", defaults.Messages, "Number of messages for seed-dev")

	if err := fs.Parse(args[1:]); err != nil {
		return "", nil, err
	}
	if fs.NArg() > 0 {
		return "", nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	return command, &database.SeedConfig{
		Usernames: splitUsernames(*users),
		Password:  *password,
		Messages:  *messages,
	}, nil
}

func splitUsernames(raw string) []string {
	var out []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
