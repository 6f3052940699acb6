// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags and Environment Variables

Each flag falls back to an environment variable. CLI flags take precedence.

	-p                PORT                        Server port (default 3318)
	-d                DATABASE_URL                Connection string (required)
	-t                DATABASE_TYPE               sqlite, postgres or mongo (default sqlite)
	-require-upfront  REQUIRE_UPFRONT_INSTRUMENT  Stricter response validation
	-priority         PRIORITY_INSTRUMENTS        Comma-separated list (default piano,guitare)
	-resend-key       RESEND_API_KEY              Email API key; empty disables notifications
	-notify-to        NOTIFY_EMAIL                Notification recipient
	-notify-from      NOTIFY_FROM                 Notification sender
	-public-url       PUBLIC_URL                  Base URL for links (default http://localhost:<port>)

main loads a .env file before parsing, so the variables may also live there.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - PORT is not a number
  - DATABASE_TYPE is not one of the supported stores
  - REQUIRE_UPFRONT_INSTRUMENT is not a boolean
*/
package cliparse
