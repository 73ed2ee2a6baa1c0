package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/strategy"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Storage           string `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Redis             Redis  `yaml:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"scores.db"`
	Game              Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Game holds the settings of the hosted match. A zero seed leaves the random strategy unseeded.
type Game struct {
	HumanName string `yaml:"human-name" env:"GAME_HUMAN_NAME" env-default:"You"`
	HumanMark string `yaml:"human-mark" env:"GAME_HUMAN_MARK" env-default:"X"`
	FirstMark string `yaml:"first-mark" env:"GAME_FIRST_MARK" env-default:"X"`
	Strategy  string `yaml:"strategy" env:"GAME_STRATEGY" env-default:"smart"`
	Seed      int64  `yaml:"seed" env:"GAME_SEED" env-default:"0"`
}

// MustLoad reads path when it exists and the environment otherwise, then validates the result.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from env: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}

	if err = config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) validate() error {
	switch that.Storage {
	case StorageMemory, StorageRedis, StorageSQLite:
	default:
		return fmt.Errorf("invalid config: %w: %q", apperror.ErrUnknownStorage, that.Storage)
	}

	if _, err := that.Game.Marks(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if _, err := strategy.ParseKind(that.Game.Strategy); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// Marks are the human mark and the mark that moves first.
type Marks struct {
	Human entity.Cell
	First entity.Cell
}

func (that *Game) Marks() (Marks, error) {
	human, err := entity.ParseMark(that.HumanMark)
	if err != nil {
		return Marks{}, fmt.Errorf("human mark: %w", err)
	}

	first, err := entity.ParseMark(that.FirstMark)
	if err != nil {
		return Marks{}, fmt.Errorf("first mark: %w", err)
	}

	return Marks{Human: human, First: first}, nil
}

// StrategySeed returns nil when no seed is configured.
func (that *Game) StrategySeed() *int64 {
	if that.Seed == 0 {
		return nil
	}

	seed := that.Seed
	return &seed
}
