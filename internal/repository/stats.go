package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/services"
	"github.com/redis/go-redis/v9"
)

const (
	gameStatsKey   = "game_stats"
	gamesPlayedKey = "games_played"
)

var ErrNoRedis = errors.New("redis is not configured")

// GameStatsRepository keeps counters of finished games in Redis.
type GameStatsRepository struct {
	services *services.Services

	// key is the Redis hash holding the counters
	key string
}

// NewGameStatsRepository creates a new GameStatsRepository.
func NewGameStatsRepository(c *fiber.Ctx) *GameStatsRepository {
	services := c.Locals("services").(*services.Services) //nolint: errcheck

	return NewGameStatsRepositoryFromServices(services)
}

func NewGameStatsRepositoryFromServices(services *services.Services) *GameStatsRepository {
	return &GameStatsRepository{
		services: services,
		key:      gameStatsKey,
	}
}

// statField builds the hash field for a result, e.g. "2:white:black".
func statField(result models.GameResult) string {
	return fmt.Sprintf("%d:%s:%s", result.Tier, result.CPUColor, result.Winner)
}

func parseStatField(field string) (models.GameStat, error) {
	parts := strings.Split(field, ":")
	if len(parts) != 3 {
		return models.GameStat{}, fmt.Errorf("invalid stat field: %s", field)
	}

	tier, err := strconv.Atoi(parts[0])
	if err != nil {
		return models.GameStat{}, fmt.Errorf("invalid tier in stat field %s: %w", field, err)
	}

	cpuColor, err := othello.ParseColor(parts[1])
	if err != nil {
		return models.GameStat{}, fmt.Errorf("invalid cpu color in stat field %s: %w", field, err)
	}

	winner, err := othello.ParseColor(parts[2])
	if err != nil {
		return models.GameStat{}, fmt.Errorf("invalid winner in stat field %s: %w", field, err)
	}

	return models.GameStat{
		Tier:     othello.Tier(tier),
		CPUColor: cpuColor,
		Winner:   winner,
	}, nil
}

func (repo *GameStatsRepository) redis() (*redis.Client, error) {
	if repo.services == nil || repo.services.Redis == nil {
		return nil, ErrNoRedis
	}
	return repo.services.Redis, nil
}

// RecordResult counts a finished game.
func (repo *GameStatsRepository) RecordResult(ctx context.Context, result models.GameResult) error {
	if err := result.Validate(); err != nil {
		return fmt.Errorf("invalid game result: %w", err)
	}

	redisConn, err := repo.redis()
	if err != nil {
		return err
	}

	pipe := redisConn.TxPipeline()
	pipe.HIncrBy(ctx, repo.key, statField(result), 1)
	pipe.HIncrBy(ctx, repo.key, gamesPlayedKey, 1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error recording game result: %w", err)
	}

	return nil
}

// GetStats returns all counters, sorted by tier, cpu color and winner.
func (repo *GameStatsRepository) GetStats(ctx context.Context) (models.StatsResponse, error) {
	redisConn, err := repo.redis()
	if err != nil {
		return models.StatsResponse{}, err
	}

	fields, err := redisConn.HGetAll(ctx, repo.key).Result()
	if err != nil {
		return models.StatsResponse{}, fmt.Errorf("error getting game stats: %w", err)
	}

	response := models.StatsResponse{
		Stats: make([]models.GameStat, 0, len(fields)),
	}

	for field, value := range fields {
		count, err := strconv.Atoi(value)
		if err != nil {
			return models.StatsResponse{}, fmt.Errorf("invalid count for %s: %w", field, err)
		}

		if field == gamesPlayedKey {
			response.GamesPlayed = count
			continue
		}

		stat, err := parseStatField(field)
		if err != nil {
			return models.StatsResponse{}, err
		}
		stat.Count = count
		response.Stats = append(response.Stats, stat)
	}

	sort.Slice(response.Stats, func(i, j int) bool {
		a, b := response.Stats[i], response.Stats[j]
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		if a.CPUColor != b.CPUColor {
			return a.CPUColor < b.CPUColor
		}
		return a.Winner < b.Winner
	})

	return response, nil
}
