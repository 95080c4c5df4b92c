package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	log "github.com/sirupsen/logrus"

	"github.com/InMostCalmness-Rahul/skillswap/internal/config"
)

var down = flag.Bool("down", false, "run migration down")

func main() {
	flag.Parse()
	cfg := config.Load()

	url := fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	m, err := migrate.New("file://migrations", url)
	if err != nil {
		log.WithError(err).Fatal("opening migrations failed")
	}
	defer m.Close()

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("no migrations to apply")
		return
	}
	if err != nil {
		log.WithError(err).Fatal("migration failed")
	}
	log.Info("migrations applied")
}
