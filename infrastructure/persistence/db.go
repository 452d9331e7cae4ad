package persistence

import (
	"fmt"

	"github.com/movelabhq/movelab/internal/database"
)

// Migrate creates or updates the persistence schema.
func Migrate(db database.Database) error {
	if err := db.GORM().AutoMigrate(
		&Workshop{},
		&Step{},
		&Image{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
