package cli

import (
	"errors"
	"fmt"
	"log"

	"github.com/themizzi/saucerun/internal/config"
	"github.com/themizzi/saucerun/internal/database"
	"github.com/themizzi/saucerun/internal/repository"
)

// OpenRunStore connects to the run history database and migrates it.
// It returns a nil repository and no error when the store is not configured.
// The returned close function is always safe to call.
func OpenRunStore() (*repository.RunRepository, func(), error) {
	noop := func() {}

	if err := database.Connect(); err != nil {
		if errors.Is(err, config.ErrRunStoreDisabled) {
			return nil, noop, nil
		}
		return nil, noop, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Connected to run history database")

	closeDB := func() {
		if err := database.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}

	if err := database.RunMigrations(); err != nil {
		closeDB()
		return nil, noop, fmt.Errorf("failed to run database migrations: %w", err)
	}

	return repository.NewRunRepository(), closeDB, nil
}
