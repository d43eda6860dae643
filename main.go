package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"go-passport-validator/logging"
	"go-passport-validator/passport"
	redis "go-passport-validator/redis"

	"github.com/prometheus/client_golang/prometheus"
)

type Config struct {
	ServerConfig ServerConfig `json:"server_config"`

	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`

	JwtPrivateKeyPath string `json:"jwt_private_key_path"`
	JwtIssuer         string `json:"jwt_issuer"`

	OcrServiceUrl string `json:"ocr_service_url,omitempty"`

	// Validation knobs. Zero values mean "use the default".
	YearCutoff         int     `json:"year_cutoff,omitempty"`
	NameMatchThreshold float64 `json:"name_match_threshold,omitempty"`

	StorageType         string                    `json:"storage_type"`
	RedisConfig         redis.RedisConfig         `json:"redis_config,omitempty"`
	RedisSentinelConfig redis.RedisSentinelConfig `json:"redis_sentinel_config,omitempty"`
}

func main() {
	configPath := flag.String("config", "", "Path for the config.json to use")
	flag.Parse()

	if *configPath == "" {
		slog.Error("please provide a config path using the --config flag")
		os.Exit(1)
	}

	config, err := readConfigFile(*configPath)
	if err != nil {
		slog.Error("failed to read config file", "path", *configPath, "error", err)
		os.Exit(1)
	}

	logging.Init(config.LogLevel, config.LogFormat)
	slog.Info("using config", "path", *configPath)
	slog.Info("hosting on", "host", config.ServerConfig.Host, "port", config.ServerConfig.Port)

	jwtCreator, err := NewJwtCreator(config.JwtPrivateKeyPath, config.JwtIssuer)
	if err != nil {
		slog.Error("failed to instantiate jwt creator", "error", err)
		os.Exit(1)
	}

	nonceStorage, err := createNonceStorage(&config)
	if err != nil {
		slog.Error("failed to instantiate nonce storage", "error", err)
		os.Exit(1)
	}

	var ocrClient OcrClient
	if config.OcrServiceUrl != "" {
		slog.Info("using remote OCR service", "url", config.OcrServiceUrl)
		ocrClient = NewRemoteOcrClient(config.OcrServiceUrl)
	}

	registry := prometheus.NewRegistry()

	serverState := ServerState{
		nonceStorage: nonceStorage,
		validator:    createValidator(&config),
		jwtCreator:   jwtCreator,
		ocrClient:    ocrClient,
		metrics:      NewMetrics(registry),
	}

	server, err := NewServer(&serverState, config.ServerConfig, registry)
	if err != nil {
		slog.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	err = server.ListenAndServe()
	if err != nil {
		slog.Error("failed to listen and serve", "error", err)
		os.Exit(1)
	}
}

func readConfigFile(path string) (Config, error) {
	configBytes, err := os.ReadFile(path)

	if err != nil {
		return Config{}, err
	}

	var config Config
	err = json.Unmarshal(configBytes, &config)

	if err != nil {
		return Config{}, err
	}

	return config, nil
}

func createValidator(config *Config) *passport.Validator {
	cfg := passport.DefaultConfig()
	if config.YearCutoff != 0 {
		cfg.YearCutoff = config.YearCutoff
	}
	if config.NameMatchThreshold != 0 {
		cfg.NameMatchThreshold = config.NameMatchThreshold
	}
	return passport.NewValidatorWithConfig(cfg)
}

func createNonceStorage(config *Config) (NonceStorage, error) {
	if config.StorageType == "redis" {
		slog.Info("Using redis nonce storage")
		client, err := redis.NewRedisClient(&config.RedisConfig)
		if err != nil {
			return nil, err
		}
		return NewRedisNonceStorage(client, config.RedisConfig.Namespace), nil
	}
	if config.StorageType == "redis_sentinel" {
		slog.Info("Using redis sentinel nonce storage")
		client, err := redis.NewRedisSentinelClient(&config.RedisSentinelConfig)
		if err != nil {
			return nil, err
		}
		return NewRedisNonceStorage(client, config.RedisSentinelConfig.Namespace), nil
	}
	if config.StorageType == "memory" {
		slog.Info("Using in memory nonce storage")
		return NewInMemoryNonceStorage(), nil
	}
	return nil, fmt.Errorf("%v is not a valid storage type", config.StorageType)
}
