package main

import (
	"database/sql"
	"flag"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/db"
	"github.com/gokatarajesh/trivia-api/internal/config"
)

func main() {
	command := flag.String("command", "up", "Migration command: up, down, redo, status, or version")
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	}

	pg, err := config.LoadPostgres()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid database configuration")
	}

	// pgx via stdlib so goose gets a database/sql handle
	conn, err := sql.Open("pgx", pg.DSN())
	if err != nil {
		log.Fatal().Err(err).Str("host", pg.Host).Int("port", pg.Port).Msg("failed to open database connection")
	}
	defer conn.Close()

	if err := conn.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	log.Info().
		Str("host", pg.Host).
		Int("port", pg.Port).
		Str("database", pg.Database).
		Msg("connected to database")

	goose.SetBaseFS(db.Migrations)
	goose.SetTableName("goose_db_version")
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("failed to set goose dialect")
	}

	if err := run(conn, *command); err != nil {
		log.Fatal().Err(err).Str("command", *command).Msg("migration command failed")
	}
}

func run(conn *sql.DB, command string) error {
	switch command {
	case "up":
		if err := goose.Up(conn, db.MigrationsDir); err != nil {
			return err
		}
		log.Info().Msg("migrations applied successfully")
	case "down":
		if err := goose.Down(conn, db.MigrationsDir); err != nil {
			return err
		}
		log.Info().Msg("migrations rolled back successfully")
	case "redo":
		if err := goose.Redo(conn, db.MigrationsDir); err != nil {
			return err
		}
		log.Info().Msg("last migration re-applied")
	case "status":
		return goose.Status(conn, db.MigrationsDir)
	case "version":
		return goose.Version(conn, db.MigrationsDir)
	default:
		log.Fatal().Str("command", command).Msg("unknown command. Use: up, down, redo, status, or version")
	}
	return nil
}
