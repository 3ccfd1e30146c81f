package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerConfig_Address(t *testing.T) {
	tests := []struct {
		name   string
		server ServerConfig
		want   string
	}{
		{
			name:   "localhost default port",
			server: ServerConfig{Host: "localhost", Port: 8030},
			want:   "localhost:8030",
		},
		{
			name:   "bind all interfaces",
			server: ServerConfig{Host: "0.0.0.0", Port: 8080},
			want:   "0.0.0.0:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.server.Address())
		})
	}
}

func TestPostgresConfig_DSN(t *testing.T) {
	p := PostgresConfig{
		Host:     "db",
		Port:     5433,
		User:     "etl",
		Password: "secret",
		DBName:   "shop",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://etl:secret@db:5433/shop?sslmode=disable", p.DSN())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SOURCE_KIND", "FILE")
	t.Setenv("OUTPUT_POSTGRES", "not-a-bool")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", " a:9092, ,b:9092 ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceFile, cfg.Source.Kind)
	assert.False(t, cfg.Output.Postgres)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "customer_order_items", cfg.DB.Table)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "unknown source",
			env:  map[string]string{"SOURCE_KIND": "ftp"},
			want: "SOURCE_KIND",
		},
		{
			name: "http source without url",
			env:  map[string]string{"SOURCE_KIND": "http", "SOURCE_HTTP_BASE_URL": ""},
			want: "SOURCE_HTTP_BASE_URL",
		},
		{
			name: "kafka output without topic",
			env:  map[string]string{"SOURCE_KIND": "file", "OUTPUT_KAFKA": "true", "KAFKA_ROW_TOPIC": ""},
			want: "KAFKA_ROW_TOPIC",
		},
		{
			name: "invalid port",
			env:  map[string]string{"HTTP_PORT": "0"},
			want: "HTTP_PORT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
