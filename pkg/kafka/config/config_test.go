package kafka_config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, " broker-a:9092 , broker-b:9092")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"broker-a:9092", "broker-b:9092"}, cfg.Brokers)
	require.Equal(t, DefaultProducerCompression, cfg.ProducerCompression)
	require.Equal(t, DefaultProducerRequireAcks, cfg.ProducerRequireAcks)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := &Config{
		Brokers:              []string{""},
		ProducerMaxAttempts:  0,
		ProducerBatchTimeout: DefaultProducerBatchTimeout,
		ProducerWriteTimeout: DefaultProducerWriteTimeout,
		ProducerRequireAcks:  2,
		ProducerCompression:  "brotli",
	}

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "Broker 0 cannot be empty")
	require.Contains(t, err.Error(), "ProducerMaxAttempts")
	require.Contains(t, err.Error(), "ProducerRequireAcks")
	require.Contains(t, err.Error(), "ProducerCompression")
}
