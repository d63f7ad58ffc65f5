package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProducer_PublishRejectsUnencodablePayload(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"})
	defer p.Close()

	err := p.Publish(context.Background(), "booking-events", "b1", make(chan int))

	assert.ErrorContains(t, err, "failed to marshal payload")
}
