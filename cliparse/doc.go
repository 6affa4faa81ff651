// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Commands that own their flag set register and load separately:

	cliparse.RegisterFlags(cmd.PersistentFlags())
	cfg, err := cliparse.Load(cmd.PersistentFlags())

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabasePath: SQLite file, created on first run (default: bjj.db)
  - LogLevel: debug, info, warn or error (default: info)
  - LogFormat: text or json (default: text)
  - ShutdownTimeout: grace period for in-flight requests (default: 10s)
  - PruneMapTransitions: delete a map's transitions with the map (default: false)

# CLI Flags

	-p, --port                 Server port
	-d, --database             SQLite database file
	--log-level                Log level
	--log-format               Log format
	--shutdown-timeout         Graceful shutdown timeout
	--prune-map-transitions    Prune transitions on map delete
	--config                   YAML config file
	--env-file                 Dotenv file (default: .env)

# Environment Variables

	PORT                  → -p
	DATABASE_PATH         → -d
	LOG_LEVEL             → --log-level
	LOG_FORMAT            → --log-format
	SHUTDOWN_TIMEOUT      → --shutdown-timeout
	PRUNE_MAP_TRANSITIONS → --prune-map-transitions

The dotenv file is loaded first and never overrides variables already set.

# Precedence

CLI flags, then environment, then the config file, then defaults. Without
--config, ./bjjournal.yaml is read when present.

# Validation

ParseFlags returns an error for an out-of-range port, an empty database path,
an unknown log level or format, or a non-positive shutdown timeout.
*/
package cliparse
