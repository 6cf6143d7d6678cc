package report

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"jo3qma.com/ebay_listings/internal/domain/model"
	"jo3qma.com/ebay_listings/internal/domain/repository"
)

// DefaultStream はレポートを流すRedis Streamのデフォルト名です
const DefaultStream = "stream:listings"

// StreamClient はRedis Streamへの追加に必要な操作だけを抜き出したものです
// *redis.Client がそのまま満たします
type StreamClient interface {
	XAdd(ctx context.Context, args *redis.XAddArgs) *redis.StringCmd
}

type redisStreamSink struct {
	client StreamClient
	stream string
}

// NewRedisStreamSink はランキング1件ごとにStreamへエントリを追加する出力先を作成します
func NewRedisStreamSink(client StreamClient, stream string) repository.ReportSink {
	if stream == "" {
		stream = DefaultStream
	}
	return &redisStreamSink{client: client, stream: stream}
}

func (s *redisStreamSink) Emit(ctx context.Context, report *model.Report) error {
	generatedAt := strconv.FormatInt(report.GeneratedAt.UnixNano(), 10)

	for _, r := range report.Records() {
		args := &redis.XAddArgs{
			Stream: s.stream,
			Values: map[string]interface{}{
				"run_id":        report.RunID,
				"query":         report.Query,
				"rank":          strconv.Itoa(r.Rank),
				"title":         r.Title,
				"current_price": r.CurrentPrice,
				"buy_now_price": r.BuyNowPrice,
				"item_url":      r.ItemURL,
				"generated_at":  generatedAt,
			},
		}
		if _, err := s.client.XAdd(ctx, args).Result(); err != nil {
			return fmt.Errorf("failed to publish listing %d to redis: %w", r.Rank, err)
		}
	}
	return nil
}
