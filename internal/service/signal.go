package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/seatkit/webinar"
)

// SignalService fans out seat-change events over redis pub/sub so
// realtime subscribers on any instance see updates.
type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Publish(ctx context.Context, event webinar.Event) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, webinar.EventChannel(event.WebinarID), jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Realtime forwards events for the requested webinars to output until ctx
// is done. Each value on input replaces the current subscription set.
func (s *SignalService) Realtime(ctx context.Context, input <-chan []string, output chan<- webinar.Event) {

	pubsub := s.rdb.Subscribe(ctx)
	defer pubsub.Close()

	messages := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case ids, ok := <-input:
			if !ok {
				return
			}
			channels := make([]string, 0, len(ids))
			for _, id := range ids {
				channels = append(channels, webinar.EventChannel(id))
			}
			if err := pubsub.Unsubscribe(ctx); err != nil {
				slog.ErrorContext(
					ctx, "Failed to reset subscription",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				return
			}
			if len(channels) > 0 {
				if err := pubsub.Subscribe(ctx, channels...); err != nil {
					slog.ErrorContext(
						ctx, "Failed to subscribe",
						slog.String("error", err.Error()),
						slog.String("module", "signal"),
					)
					return
				}
			}
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var event webinar.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.ErrorContext(
					ctx, "Malformed event payload",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}
			select {
			case output <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
