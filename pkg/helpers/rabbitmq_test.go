package helpers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONPublishing(t *testing.T) {
	msg, err := jsonPublishing(map[string]string{"to": "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	_, err = uuid.Parse(msg.MessageId)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, "a@b.co", got["to"])
}

func TestJSONPublishingRejectsUnencodable(t *testing.T) {
	_, err := jsonPublishing(make(chan int))
	require.Error(t, err)
}

func TestPublishAfterClose(t *testing.T) {
	p := &RabbitPublisher{Queue: "emails"}
	p.Close()
	p.Close()
	require.ErrorIs(t, p.PublishJSON(context.Background(), map[string]string{}), ErrPublisherClosed)

	var nilPub *RabbitPublisher
	nilPub.Close()
}
