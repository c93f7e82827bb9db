/* config.go
 * Contains the configuration of the bot, the web server and the cli. Values come from an optional YAML tournament
 * file and are overridden by the environment (and a .env file if one is present).
 */

package config

import (
	"fmt"
	"os"
	"strings"

	"lck-pickems/api/bracket"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything needed to run the pickems services
type Config struct {
	Tournament string `yaml:"tournament"`
	MongoURI   string `yaml:"mongo_uri"`
	MongoDB    string `yaml:"mongo_db"`
	HTTPAddr   string `yaml:"http_addr"`
	LogLevel   string `yaml:"log_level"`

	// AdminIDs are the discord user ids allowed to record results
	AdminIDs []string `yaml:"admin_ids"`
	// Schedule maps a match id to a free form start time
	Schedule map[string]string `yaml:"schedule"`

	UseBetaBot   bool   `yaml:"use_beta_bot"`
	DiscordToken string `yaml:"-"`
}

// DefaultConfig returns the configuration used when nothing else is set
func DefaultConfig() *Config {
	return &Config{
		Tournament: "LCK 2025 Playoffs",
		MongoURI:   "mongodb://localhost:27017",
		MongoDB:    "lck_pickems",
		HTTPAddr:   ":8080",
		LogLevel:   "info",
		Schedule:   map[string]string{},
	}
}

// Load builds the configuration.
// Preconditions: path is the YAML tournament file, it may be empty or missing
// Postconditions: Returns the defaults overlaid with the file and then the environment, or an error if the file or
// an environment value cannot be parsed
func Load(path string) (*Config, error) {
	// A missing .env is fine, the variables may already be exported
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.MongoURI = v
	}
	if v := os.Getenv("MONGO_DB"); v != "" {
		c.MongoDB = v
	}
	if v := os.Getenv("TOURNAMENT"); v != "" {
		c.Tournament = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("ADMIN_IDS"); v != "" {
		c.AdminIDs = nil
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				c.AdminIDs = append(c.AdminIDs, id)
			}
		}
	}
	if v := os.Getenv("USE_BETA_BOT"); v != "" {
		beta, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("USE_BETA_BOT: %w", err)
		}
		c.UseBetaBot = beta
	}

	if c.UseBetaBot {
		c.DiscordToken = os.Getenv("DISCORD_BETA_TOKEN")
	} else {
		c.DiscordToken = os.Getenv("DISCORD_PROD_TOKEN")
	}
	return nil
}

// MatchSchedule converts the schedule to catalog keys, accepting any alias the catalog knows
func (c *Config) MatchSchedule(catalog *bracket.Catalog) (map[bracket.MatchID]string, error) {
	schedule := make(map[bracket.MatchID]string, len(c.Schedule))
	for raw, when := range c.Schedule {
		key, err := catalog.Canonical(raw)
		if err != nil {
			return nil, fmt.Errorf("schedule: %w", err)
		}
		schedule[key] = when
	}
	return schedule, nil
}

// IsAdmin reports whether userID may record results
func (c *Config) IsAdmin(userID string) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// parseBool converts a string of true or false into a boolean for comparisons
// Preconditions: Receives string containing either true or false (case insensitive)
// Postconditions: Returns boolean value or an error if the string is not true or false
func parseBool(str string) (bool, error) {
	str = strings.TrimSpace(str)
	str = strings.ToLower(str)

	if str == "true" {
		return true, nil
	} else if str == "false" {
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean string")
}
