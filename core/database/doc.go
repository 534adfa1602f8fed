// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that opens
// either a SQLite file (the default, suitable for a single-user bookmark
// service) or a MySQL server, based on the application's configuration.
//
// # Connect
//
// Connect establishes the connection, applies pool settings and verifies it
// with a ping bounded by TimeoutSeconds. The same *gorm.DB is shared by the
// gorm-backed bookmark store and the snapshot persister.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
