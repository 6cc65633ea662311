// Package config loads tscontext settings.
//
// Values come from Default, then an optional TOML or YAML file via Load,
// then TSCONTEXT_* environment variables via ApplyEnv:
//
//	TSCONTEXT_DB_PATH         database file
//	TSCONTEXT_WORKERS         parse workers
//	TSCONTEXT_BATCH_SIZE      files per write transaction
//	TSCONTEXT_EXTENSIONS      comma-separated, e.g. ".ts,.mts"
//	TSCONTEXT_IGNORE_DIRS     comma-separated directory names
//	TSCONTEXT_CACHE_SIZE      completion cache entries (0 disables)
//	TSCONTEXT_MAX_FILE_BYTES  larger files are recorded as failed
//	TSCONTEXT_LOG_LEVEL       debug, info, warn or error
package config
