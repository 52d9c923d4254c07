// Package database handles database connections and schema inspection.
//
// Connect wraps GORM and selects a dialector from the configured driver: sqlite for a
// single-node deployment or tests, mysql and postgres for shared servers. Errors are
// translated so unique index violations surface as gorm.ErrDuplicatedKey on every driver.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns (PRAGMA on sqlite, information_schema on
// postgres, SHOW COLUMNS on mysql) with lowercased names and types. The health check
// compares them against the gorm tags of the wash record model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	cols, err := database.GetTableColumns(db, "wash_records")
package database
