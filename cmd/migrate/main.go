package main

import (
	"database/sql"
	"flag"
	"os"
	"strconv"

	"movieclub/pkg/config"
	"movieclub/pkg/logger"
	"movieclub/postgres"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	var (
		dir   string
		down  bool
		limit int
	)
	flag.StringVar(&dir, "dir", "migrations", "Directory holding the migration files")
	flag.BoolVar(&down, "down", false, "Roll back instead of applying")
	flag.IntVar(&limit, "limit", 0, "Maximum number of migrations to run (0 = all, -down defaults to 1)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	opts := postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	}
	db, err := sql.Open("postgres", opts.DSN())
	if err != nil {
		log.Fatalw("cannot connecting to db", "error", err)
	}
	defer db.Close()

	direction := migrate.Up
	if down {
		direction = migrate.Down
		if limit == 0 {
			limit = 1
		}
	}

	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}
	total, err := migrate.ExecMax(db, "postgres", migrations, direction, limit)
	if err != nil {
		log.Fatalw("cannot execute migration", "error", err, "down", down)
	}

	log.Infow("applied migrations", "total", total, "down", down)
}
