package inttest

import (
	"fmt"
	"testing"

	"github.com/orlangure/gnomock"
	"github.com/orlangure/gnomock/preset/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

// SetupRabbitMQ creates a RabbitMQ container returning an AMQP channel ready to publish to it.
func SetupRabbitMQ(t *testing.T) *amqp.Channel {
	t.Helper()

	container, err := gnomock.Start(
		rabbitmq.Preset(
			rabbitmq.WithUser("eventhub", "eventhub"),
		),
	)
	require.NoError(t, err, "failed to start RabbitMQ")
	t.Cleanup(func() { require.NoError(t, gnomock.Stop(container), "failed to stop RabbitMQ") })

	uri := fmt.Sprintf("amqp://%s:%s@%s", "eventhub", "eventhub", container.DefaultAddress())
	conn, err := amqp.Dial(uri)
	require.NoErrorf(t, err, "failed to connect to RabbitMQ at %q", uri)
	t.Cleanup(func() {
		require.NoError(t, conn.Close(), "failed to close connection to RabbitMQ")
	})

	channel, err := conn.Channel()
	require.NoError(t, err, "failed to open channel to RabbitMQ")
	return channel
}
