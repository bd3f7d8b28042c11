package notify

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPublisherPublish(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(RedisConfig{Addr: mr.Addr()})
	p := NewRedisPublisher(client)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, p.Ping(ctx))

	sub := client.Subscribe(ctx, "alarms/temperature/alarm")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, p.Publish(ctx, "alarms/temperature/alarm", []byte(`{"id":7,"status":"ACTIVE"}`)))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alarms/temperature/alarm", msg.Channel)
	assert.JSONEq(t, `{"id":7,"status":"ACTIVE"}`, msg.Payload)
}

func TestRedisPublisherServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	p := NewRedisPublisher(client)
	defer p.Close()

	mr.Close()

	err = p.Publish(context.Background(), "alarms/temperature/alarm", []byte(`{}`))
	assert.Error(t, err)
}
