package revenue

import (
	"context"
	"fmt"
	"os"
	"time"

	"tillpos/internal/money"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// LogNotifier accumulates total revenue and reports it through the
// structured logger after every finalized sale.
type LogNotifier struct {
	logger zerolog.Logger
	total  money.Money
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) OnTotalRevenue(amount money.Money) error {
	n.total = n.total.Add(amount)
	n.logger.Info().
		Str("sale_total", amount.Colonized()).
		Str("total_revenue", n.total.Colonized()).
		Msg("total revenue updated")
	return nil
}

// FileNotifier appends a timestamped cumulative-revenue line to a log file
// for each finalized sale.
type FileNotifier struct {
	path  string
	total money.Money
}

func NewFileNotifier(path string) *FileNotifier {
	return &FileNotifier{path: path}
}

func (n *FileNotifier) OnTotalRevenue(amount money.Money) error {
	n.total = n.total.Add(amount)

	f, err := os.OpenFile(n.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("revenue file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s, Total Revenue: %s\n",
		time.Now().Format("2006-01-02 15:04:05"), n.total.Colonized())
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("revenue file: %w", err)
	}
	return nil
}

// RedisNotifier pushes one revenue event per finalized sale onto a Redis
// list, for external dashboards to consume.
type RedisNotifier struct {
	rdb *redis.Client
	key string
}

func NewRedisNotifier(rdb *redis.Client, key string) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, key: key}
}

func (n *RedisNotifier) OnTotalRevenue(amount money.Money) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	event := fmt.Sprintf("%d|%s", time.Now().Unix(), amount.Colonized())
	return n.rdb.LPush(ctx, n.key, event).Err()
}
