package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/strategy"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/rest"
	"github.com/rocketscienceinc/tictactoe-engine/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis host is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	scores, closer, err := newScoreRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closer.Close(); err != nil {
			log.Error("could not close score storage", "error", err)
		}
	}()

	controller, err := newController(conf)
	if err != nil {
		return fmt.Errorf("could not set up the game: %w", err)
	}

	hub := websocket.NewHub(logger)
	defer hub.Close()

	gameManager := usecase.NewGameManager(logger, controller, scores, hub)
	if _, err = gameManager.Start(ctx); err != nil {
		return fmt.Errorf("could not start the game: %w", err)
	}

	router := rest.NewRouter(logger, gameManager, websocket.New(logger, hub, gameManager))

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage)
	if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func newController(conf *config.Config) (*tictactoe.GameController, error) {
	marks, err := conf.Game.Marks()
	if err != nil {
		return nil, err
	}

	kind, err := strategy.ParseKind(conf.Game.Strategy)
	if err != nil {
		return nil, err
	}

	agentStrategy, err := strategy.New(kind, conf.Game.StrategySeed())
	if err != nil {
		return nil, err
	}

	return tictactoe.NewGameController(
		tictactoe.NewHuman(marks.Human, conf.Game.HumanName),
		tictactoe.NewAgent(marks.Human.Opponent(), agentStrategy),
		marks.First,
	)
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}

func newScoreRepository(ctx context.Context, conf *config.Config) (repository.ScoreRepository, io.Closer, error) {
	switch conf.Storage {
	case config.StorageMemory:
		return repository.NewMemoryScoreRepository(), nopCloser{}, nil
	case config.StorageRedis:
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisScoreRepository(redisStorage.Connection), redisStorage, nil
	case config.StorageSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteScoreRepository(sqliteStorage.Connection), sqliteStorage, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", apperror.ErrUnknownStorage, conf.Storage)
	}
}
