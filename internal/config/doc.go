// Package config loads runtime configuration for the vCard shell.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or --config.
//  3. Command-line flags, which override earlier values.
//
// Running without any flag opens the terminal UI on ./cards with the
// defaults below.
//
// Supported flags
//
//	-c, --config string      config file (.json/.jsonc or .yaml/.yml)
//	-d, --cards-dir string   directory holding *.vcf files
//	-l, --log string         debug log file (append-only)
//
// # File format
//
// JSON files may carry // and /* */ comments and trailing commas:
//
//	{
//	  "cards_dir": "cards",      // relative to the working directory
//	  "debug_log_path": "debug_log.txt",
//	  "log_backend": "zap",
//	  "log_level": "debug",
//	  "watch_cards": true,
//	}
//
// YAML files use the same keys.
package config
