package arthneeti

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthneeti/game-engine/arthneeti/database"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log    LogConfig         `toml:"log"`
	DB     database.DBConfig `toml:"db"`
	AI     AIConfig          `toml:"ai"`
	Spaces SpacesConfig      `toml:"spaces"`
	Game   GameConfig        `toml:"game"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

// AIConfig covers the optional chat-completion collaborators. An empty
// key disables AI content entirely and every caller falls back to
// deterministic content.
type AIConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

type SpacesConfig struct {
	Key        string `toml:"key"`
	Secret     string `toml:"secret"`
	Region     string `toml:"region"`
	Bucket     string `toml:"bucket"`
	ReportRoot string `toml:"report_root"`
}

type GameConfig struct {
	MarketMode string `toml:"market_mode"` // "trajectory" or "live"
	Seed       int64  `toml:"seed"`        // 0 means time-seeded
}
