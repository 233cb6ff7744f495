package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testPayload struct {
	ID    string
	Count int
}

func TestQueue(t *testing.T) {
	config := DefaultConfig()
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[testPayload](config)

	ctx := context.Background()
	payload := testPayload{ID: "evt-1", Count: 1}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.Equal(t, payload, *message.T())
	assert.Equal(t, 0, queue.Size())

	assert.NoError(t, message.Ack())
	// Double ack is rejected.
	assert.Error(t, message.Ack())
}

func TestQueue_NackRedelivers(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 1
	config.RetryDelay = 5 * time.Millisecond
	queue := NewQueue[testPayload](config)

	ctx := context.Background()
	assert.NoError(t, queue.Publish(ctx, &testPayload{ID: "evt-1"}))

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NoError(t, message.Nack(nil))

	// Redelivered once.
	redelivered, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "evt-1", redelivered.T().ID)

	// Second nack exceeds MaxRetries: message is dropped.
	assert.NoError(t, redelivered.Nack(nil))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, queue.Size())
}

func TestQueue_ConsumeHonorsContext(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
