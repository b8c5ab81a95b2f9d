// Package database handles database connections and schema constraints.
//
// It wraps GORM to configure SQLite (the default) and MySQL connections from
// the application's configuration. Error translation is enabled so that
// constraint violations surface as gorm.ErrDuplicatedKey regardless of driver.
//
// # Conditional Uniqueness
//
// The service soft-deletes rows instead of removing them, so plain unique
// indexes would forbid re-creating a value after deletion. EnsurePartialUnique
// builds a unique index scoped to live rows only, using a partial index where
// the dialect supports it and a generated-column workaround on MySQL.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	err = database.EnsurePartialUnique(db, "items", "idx_items_ns_token_live", "namespace", "token")
package database
