package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	SourceFile  = "file"
	SourceHTTP  = "http"
	SourceKafka = "kafka"
)

type Config struct {
	App    AppConfig
	Server ServerConfig
	Source SourceConfig
	Output OutputConfig
	DB     PostgresConfig
	Kafka  KafkaConfig
}

type AppConfig struct {
	Name     string
	Env      string
	LogLevel string
}

type ServerConfig struct {
	Host string
	Port int
}

// SourceConfig chọn nguồn đọc customer records. VIP ids luôn đọc từ VIPPath.
type SourceConfig struct {
	Kind        string
	RecordsPath string
	VIPPath     string
	HTTP        HTTPSourceConfig
}

type HTTPSourceConfig struct {
	BaseURL  string
	APIKey   string
	PageSize int
	SleepMS  int
}

// OutputConfig liệt kê các sink cho batch run. Path rỗng hoặc flag false thì bỏ qua sink đó.
type OutputConfig struct {
	CSVPath    string
	SQLitePath string
	Postgres   bool
	Kafka      bool
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	Table    string
}

type KafkaConfig struct {
	Brokers       []string
	CustomerTopic string
	RowTopic      string
	ReadTimeoutMS int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "customer_extract"),
			Env:      getEnv("APP_ENV", "local"),
			LogLevel: getEnv("LOG_LEVEL", ""),
		},
		Server: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnvAsInt("HTTP_PORT", 8030),
		},
		Source: SourceConfig{
			Kind:        strings.ToLower(getEnv("SOURCE_KIND", SourceFile)),
			RecordsPath: getEnv("SOURCE_RECORDS_PATH", "data/customers.json"),
			VIPPath:     getEnv("SOURCE_VIP_PATH", "data/vip_customers.txt"),
			HTTP: HTTPSourceConfig{
				BaseURL:  getEnv("SOURCE_HTTP_BASE_URL", ""),
				APIKey:   getEnv("SOURCE_HTTP_API_KEY", ""),
				PageSize: getEnvAsInt("SOURCE_HTTP_PAGE_SIZE", 500),
				SleepMS:  getEnvAsInt("SOURCE_HTTP_SLEEP_MS", 200),
			},
		},
		Output: OutputConfig{
			CSVPath:    getEnv("OUTPUT_CSV_PATH", "out/customer_order_items.csv"),
			SQLitePath: getEnv("OUTPUT_SQLITE_PATH", ""),
			Postgres:   getEnvAsBool("OUTPUT_POSTGRES", false),
			Kafka:      getEnvAsBool("OUTPUT_KAFKA", false),
		},
		DB: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			DBName:   getEnv("POSTGRES_DB", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			Table:    getEnv("POSTGRES_TABLE", "customer_order_items"),
		},
		Kafka: KafkaConfig{
			Brokers:       splitAndTrim(getEnv("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092")),
			CustomerTopic: getEnv("KAFKA_CUSTOMER_TOPIC", "customers"),
			RowTopic:      getEnv("KAFKA_ROW_TOPIC", "customer_order_items"),
			ReadTimeoutMS: getEnvAsInt("KAFKA_READ_TIMEOUT_MS", 10000),
		},
	}

	return cfg, cfg.validate()
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

/* ================= helpers ================= */

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("HTTP_PORT is invalid")
	}
	if c.Source.VIPPath == "" {
		return fmt.Errorf("SOURCE_VIP_PATH is empty")
	}

	switch c.Source.Kind {
	case SourceFile:
		if c.Source.RecordsPath == "" {
			return fmt.Errorf("SOURCE_RECORDS_PATH is empty")
		}
	case SourceHTTP:
		if c.Source.HTTP.BaseURL == "" {
			return fmt.Errorf("SOURCE_HTTP_BASE_URL is empty")
		}
	case SourceKafka:
		if len(c.Kafka.Brokers) == 0 || c.Kafka.CustomerTopic == "" {
			return fmt.Errorf("kafka source needs KAFKA_BOOTSTRAP_SERVERS and KAFKA_CUSTOMER_TOPIC")
		}
	default:
		return fmt.Errorf("SOURCE_KIND %q is not one of file, http, kafka", c.Source.Kind)
	}

	if c.Output.Postgres && (c.DB.Host == "" || c.DB.User == "" || c.DB.DBName == "") {
		return fmt.Errorf("database config is incomplete")
	}
	if c.Output.Kafka && (len(c.Kafka.Brokers) == 0 || c.Kafka.RowTopic == "") {
		return fmt.Errorf("kafka output needs KAFKA_BOOTSTRAP_SERVERS and KAFKA_ROW_TOPIC")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return defaultVal
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if val := strings.TrimSpace(p); val != "" {
			out = append(out, val)
		}
	}
	return out
}
