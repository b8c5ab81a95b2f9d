package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// EnsurePartialUnique creates a unique index over columns that only applies to
// live (not soft-deleted) rows. This constraint is load-bearing: it is what
// allows a token or API key to be re-created after a soft delete and what keeps
// concurrent inserts of the same value from both succeeding.
//
// SQLite and Postgres express this directly as a partial index
// (WHERE deleted_at IS NULL). MySQL has no partial indexes, so we add a virtual
// "alive" column that is 1 for live rows and NULL for tombstones and include it
// in the unique index; MySQL treats NULLs as distinct, so tombstones never
// collide while live rows stay unique.
func EnsurePartialUnique(db *gorm.DB, table, index string, columns ...string) error {
	cols := strings.Join(columns, ", ")

	if db.Dialector.Name() == "mysql" {
		if !db.Migrator().HasColumn(table, "alive") {
			alter := fmt.Sprintf(
				"ALTER TABLE %s ADD COLUMN alive TINYINT(1) GENERATED ALWAYS AS (IF(deleted_at IS NULL, 1, NULL)) VIRTUAL",
				table)
			if err := db.Exec(alter).Error; err != nil {
				return fmt.Errorf("failed to add alive column to %s: %w", table, err)
			}
		}
		if !db.Migrator().HasIndex(table, index) {
			create := fmt.Sprintf("CREATE UNIQUE INDEX %s ON %s (%s, alive)", index, table, cols)
			if err := db.Exec(create).Error; err != nil {
				return fmt.Errorf("failed to create index %s: %w", index, err)
			}
		}
		return nil
	}

	create := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (%s) WHERE deleted_at IS NULL",
		index, table, cols)
	if err := db.Exec(create).Error; err != nil {
		return fmt.Errorf("failed to create index %s: %w", index, err)
	}
	return nil
}
