// Package config provides configuration loading for the bot.
// It handles environment variable parsing and carries the catalog
// constants (categories, languages, post templates) the handlers use.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// init loads environment variables from a .env file during package
// initialization. godotenv.Load does not override already-set variables,
// preserving OS env > .env precedence.
func init() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load .env file: %v\n", err)
		}
	}
}

// Config captures environment-driven settings for the bot.
type Config struct {
	Env             string // Deployment environment (development, production)
	BotToken        string // Telegram bot token from BotFather
	OwnerID         int64  // Telegram user id of the bot owner
	DataDir         string // Directory holding the JSON collection files
	ListenAddr      string // Address for the metrics/health HTTP server
	ChannelUsername string // Channel handle rendered into movie posts
	Debug           bool   // Verbose logging

	// ConversationTimeout aborts an upload dialogue after this much
	// caller inactivity.
	ConversationTimeout time.Duration

	// AutoDeleteTTL is how long admin-facing replies live before the
	// bot deletes them.
	AutoDeleteTTL time.Duration
}

const (
	defaultEnv        = "development"
	defaultDataDir    = "data"
	defaultListenAddr = ":8080"
	defaultChannel    = "moviezone969"

	defaultConversationTimeout = 600 * time.Second
	defaultAutoDeleteTTL       = 172800 * time.Second
)

// Load reads environment variables and produces a Config.
// Returns an error if required parameters are missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Env:                 defaultEnv,
		DataDir:             defaultDataDir,
		ListenAddr:          defaultListenAddr,
		ChannelUsername:     defaultChannel,
		ConversationTimeout: defaultConversationTimeout,
		AutoDeleteTTL:       defaultAutoDeleteTTL,
	}

	if env, ok := os.LookupEnv("BOT_ENV"); ok {
		cfg.Env = env
	}

	cfg.BotToken = os.Getenv("BOT_TOKEN")
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	ownerStr := os.Getenv("OWNER_ID")
	if ownerStr == "" {
		return nil, fmt.Errorf("OWNER_ID is required")
	}
	owner, err := strconv.ParseInt(ownerStr, 10, 64)
	if err != nil || owner == 0 {
		return nil, fmt.Errorf("OWNER_ID must be a non-zero telegram user id, got %q", ownerStr)
	}
	cfg.OwnerID = owner

	if dir, ok := os.LookupEnv("DATA_DIR"); ok {
		cfg.DataDir = dir
	}
	if addr, ok := os.LookupEnv("LISTEN_ADDR"); ok {
		cfg.ListenAddr = addr
	}
	if ch, ok := os.LookupEnv("CHANNEL_USERNAME"); ok {
		cfg.ChannelUsername = ch
	}
	if dbg, ok := os.LookupEnv("DEBUG"); ok {
		cfg.Debug = dbg == "1" || dbg == "true"
	}
	if v, ok := os.LookupEnv("CONVERSATION_TIMEOUT"); ok {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("CONVERSATION_TIMEOUT must be a positive number of seconds, got %q", v)
		}
		cfg.ConversationTimeout = time.Duration(secs) * time.Second
	}
	if v, ok := os.LookupEnv("AUTO_DELETE_TTL"); ok {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("AUTO_DELETE_TTL must be a positive number of seconds, got %q", v)
		}
		cfg.AutoDeleteTTL = time.Duration(secs) * time.Second
	}

	return cfg, nil
}
