package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type AlertEvent struct {
	AlertID   string    `json:"alertId"`
	BinID     string    `json:"binId"`
	Location  string    `json:"location"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// AlertNotifier publishes raised alerts on a pub/sub channel so
// dashboards and dispatch consoles can react without polling.
type AlertNotifier struct {
	client  *goredis.Client
	channel string
}

func NewAlertNotifier(client *goredis.Client, channel string) *AlertNotifier {
	return &AlertNotifier{client: client, channel: channel}
}

func (n *AlertNotifier) Publish(ctx context.Context, event AlertEvent) error {
	bytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal alert event: %w", err)
	}
	return n.client.Publish(ctx, n.channel, bytes).Err()
}
