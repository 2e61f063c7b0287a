package publisher

import (
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seconddraft/internal/domain"
)

func TestEncode(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	event := &domain.PostEvent{
		RunID:  "run-1",
		Post:   domain.PostMetadata{Title: "Hello", PostID: "101", CollectionID: "c1"},
		Path:   "content/c1/posts/101.md",
		Source: domain.ContentSourceJSON,
		Bytes:  42,
	}

	publishing, err := encode(event, now)
	require.NoError(t, err)

	assert.Equal(t, uint8(amqp.Persistent), publishing.DeliveryMode)
	assert.Equal(t, "application/json", publishing.ContentType)
	assert.Equal(t, EventPostSynced, publishing.Type)
	assert.Equal(t, "c1/101", publishing.MessageId)

	var msg PostMessage
	require.NoError(t, json.Unmarshal(publishing.Body, &msg))
	assert.Equal(t, EventPostSynced, msg.Event)
	assert.Equal(t, "101", msg.Post.Post.PostID)
	assert.Equal(t, "run-1", msg.Post.RunID)
	assert.True(t, now.Equal(msg.Timestamp))
}
