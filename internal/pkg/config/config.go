package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type (
	Tasks struct {
		PaymentSweepInterval time.Duration
		PaymentTTL           time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration
		RateLimiterQPS   int
		RateLimiterBurst int
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Pricing struct {
		DeliveryFee float64
	}

	Kafka struct {
		Brokers         string
		ConsumerEnabled bool
		ConsumerTopic   string
		ConsumerGroup   string
		ProducerTopic   string
		ProducerEnabled bool
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		PaymentCompleted PaymentCompleted
	}

	PaymentCompleted struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks    Tasks
		Server   HTTPServer
		Database Database
		Pricing  Pricing
		Kafka    Kafka
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	sweepInterval, err := osGetEnvDuration("BACKGROUND_PAYMENT_SWEEP_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	paymentTTL, err := osGetEnvDuration("ORDER_PAYMENT_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	deliveryFee, err := osGetFloat("ORDER_DELIVERY_FEE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	consumerEnabled, err := osGetBool("KAFKA_CONSUMER_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	producerEnabled, err := osGetBool("KAFKA_PRODUCER_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	paymentCompletedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_PAYMENT_COMPLETED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			PaymentSweepInterval: sweepInterval,
			PaymentTTL:           paymentTTL,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Pricing: Pricing{
			DeliveryFee: deliveryFee,
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			ConsumerEnabled: consumerEnabled,
			ConsumerTopic:   os.Getenv("KAFKA_CONSUMER_TOPIC"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			ProducerTopic:   os.Getenv("KAFKA_PRODUCER_TOPIC"),
			ProducerEnabled: producerEnabled,
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				PaymentCompleted: PaymentCompleted{
					ProcessTimeout: paymentCompletedTimeout,
				},
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}

	if cfg.Pricing.DeliveryFee <= 0 {
		return errors.New("ORDER_DELIVERY_FEE is required")
	}

	if cfg.Tasks.PaymentSweepInterval == time.Duration(0) {
		return errors.New("BACKGROUND_PAYMENT_SWEEP_INTERVAL is required")
	}
	if cfg.Tasks.PaymentTTL == time.Duration(0) {
		return errors.New("ORDER_PAYMENT_TTL is required")
	}

	if cfg.Kafka.ConsumerEnabled || cfg.Kafka.ProducerEnabled {
		if cfg.Kafka.Brokers == "" {
			return errors.New("KAFKA_BROKERS is required when a Kafka side is enabled")
		}
		if cfg.Kafka.Sarama.Version == "" {
			return errors.New("KAFKA_SARAMA_VERSION is required when a Kafka side is enabled")
		}
	}
	if cfg.Kafka.ConsumerEnabled {
		if cfg.Kafka.ConsumerTopic == "" {
			return errors.New("KAFKA_CONSUMER_TOPIC is required when KAFKA_CONSUMER_ENABLED")
		}
		if cfg.Kafka.ConsumerGroup == "" {
			return errors.New("KAFKA_CONSUMER_GROUP is required when KAFKA_CONSUMER_ENABLED")
		}
		if cfg.Kafka.Handlers.PaymentCompleted.ProcessTimeout == time.Duration(0) {
			return errors.New("KAFKA_HANDLER_PAYMENT_COMPLETED_PROCESS_TIMEOUT is required when KAFKA_CONSUMER_ENABLED")
		}
	}
	if cfg.Kafka.ProducerEnabled && cfg.Kafka.ProducerTopic == "" {
		return errors.New("KAFKA_PRODUCER_TOPIC is required when KAFKA_PRODUCER_ENABLED")
	}

	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetFloat(s string) (float64, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
