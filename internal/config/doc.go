// Package config loads MedDash configuration.
//
// Values are layered, highest priority first:
//
//	1. MEDDASH_* environment variables (a .env file in the working
//	   directory is loaded into the environment first)
//	2. config.yaml, configs/config.yaml or the file named by MEDDASH_CONFIG_FILE
//	3. Built-in defaults (see Default)
//
// Nested sections map to prefixed variables, for example:
//
//	MEDDASH_SERVER_PORT=8080
//	MEDDASH_DATA_CSV_PATH=public/data/selected1.csv
//	MEDDASH_DATA_DAILY_COUNTS_MODE=always
//	MEDDASH_LOGGING_LEVEL=debug
//	MEDDASH_TELEMETRY_TRACE_EXPORTER=stdout
package config
