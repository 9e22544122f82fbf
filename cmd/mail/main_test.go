package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryRequeue(t *testing.T) {
	assert.True(t, deliveryRequeue(false), "first failure goes back on the queue")
	assert.False(t, deliveryRequeue(true), "second failure drops the message")
}
