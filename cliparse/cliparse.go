// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabaseMongo    = "mongo"
)

const DefaultNotifyFrom = "Band Planner <onboarding@resend.dev>"

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Aggregator policy
	RequireUpfrontInstrument bool
	// Composition engine priority list, in order
	PriorityInstruments []string

	// Notifications are off when ResendAPIKey is empty
	ResendAPIKey string
	NotifyTo     string
	NotifyFrom   string
	PublicURL    string
}

// NotificationsEnabled reports whether submissions should be emailed
func (c Config) NotificationsEnabled() bool {
	return c.ResendAPIKey != "" && c.NotifyTo != ""
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var priority string
	var requireUpfront string

	fs := flag.NewFlagSet("band-planner", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or mongo)")

	// Planning policy
	fs.StringVar(&requireUpfront, "require-upfront", "", "Require an upfront instrument before yes/ifneeded answers (true/false)")
	fs.StringVar(&priority, "priority", "", "Comma-separated priority instruments")

	// Notifications (prefer env for the key)
	fs.StringVar(&cfg.ResendAPIKey, "resend-key", "", "Resend API key (prefer env)")
	fs.StringVar(&cfg.NotifyTo, "notify-to", "", "Notification recipient")
	fs.StringVar(&cfg.NotifyFrom, "notify-from", "", "Notification sender")
	fs.StringVar(&cfg.PublicURL, "public-url", "", "Public base URL for links")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	switch cfg.DatabaseType {
	case DatabaseSQLite, DatabasePostgres, DatabaseMongo:
	default:
		return Config{}, fmt.Errorf("invalid database type %q (want sqlite, postgres or mongo)", cfg.DatabaseType)
	}

	if requireUpfront == "" {
		requireUpfront = os.Getenv("REQUIRE_UPFRONT_INSTRUMENT")
	}
	if requireUpfront != "" {
		v, err := strconv.ParseBool(requireUpfront)
		if err != nil {
			return Config{}, errors.New("invalid REQUIRE_UPFRONT_INSTRUMENT value")
		}
		cfg.RequireUpfrontInstrument = v
	}

	if priority == "" {
		priority = os.Getenv("PRIORITY_INSTRUMENTS")
	}
	if priority == "" {
		priority = "piano,guitare"
	}
	cfg.PriorityInstruments = splitList(priority)

	if cfg.ResendAPIKey == "" {
		cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	}
	if cfg.NotifyTo == "" {
		cfg.NotifyTo = os.Getenv("NOTIFY_EMAIL")
	}
	if cfg.NotifyFrom == "" {
		cfg.NotifyFrom = os.Getenv("NOTIFY_FROM")
		if cfg.NotifyFrom == "" {
			cfg.NotifyFrom = DefaultNotifyFrom
		}
	}
	if cfg.PublicURL == "" {
		cfg.PublicURL = os.Getenv("PUBLIC_URL")
		if cfg.PublicURL == "" {
			cfg.PublicURL = "http://localhost:" + strconv.Itoa(cfg.Port)
		}
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
