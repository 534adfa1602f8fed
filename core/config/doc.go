// Package config provides configuration management for the bookmark manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// section, so every key is also addressable as an environment variable
// (e.g. STORE_DRIVER -> store.driver).
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, shutdown timeout
//   - Log: logging level, format and optional rotated log file
//   - Database: sqlite or MySQL connection details
//   - Storage: S3/MinIO credentials and bucket
//   - Store: bookmark store driver and root container titles
//   - Snapshot: where cache snapshots are persisted
//   - Import: bundle root sentinels
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
