package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rredkovich/mafiaengine/game"
)

// Config is the process configuration, read from the environment.
type Config struct {
	TelegramToken string `env:"TG_API_TOKEN,required"`
	Debug         bool   `env:"TG_DEBUG" envDefault:"false"`
	// UpdateTimeout is the long polling timeout in seconds.
	UpdateTimeout int    `env:"TG_UPDATE_TIMEOUT" envDefault:"10"`
	BotName       string `env:"MAFIA_BOT_NAME" envDefault:"amafia_bot"`
	RulesFile     string `env:"MAFIA_RULES_FILE"`
}

// LoadDotEnv loads environment variables from path. A missing file is not an
// error, .env stays optional.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}

// LoadRules reads the rules file on top of game.DefaultRules. An empty path
// gives the defaults.
func LoadRules(path string) (game.Rules, error) {
	rules := game.DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return game.Rules{}, fmt.Errorf("config: load rules: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return game.Rules{}, fmt.Errorf("config: parse rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return game.Rules{}, err
	}

	return rules, nil
}
