// Package config provides configuration management for fleetwash.
//
// Values come from three layers: an optional config.yaml in the config directory, the
// environment, and an optional .env file that godotenv loads over the environment. Defaults are taken from the `default` struct tags of each
// section, so every key is known to viper and can be overridden by SECTION_KEY variables.
//
// # Configuration Structure
//
//   - Server: HTTP port, service API key, basic auth realm, body limit
//   - Database: driver (sqlite, mysql, postgres) and connection details
//   - Storage: S3/MinIO credentials and the evidence bucket
//   - Log: level, format and optional rotated log file
//   - Wash: record and evidence backends, catalog enforcement, photo size limit
//   - Catalog: ordered unit list sources and the optional directory file
//   - Users: the users file
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Wash.Store)
package config
