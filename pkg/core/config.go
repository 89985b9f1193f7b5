package core

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultConfigEnvironment = "development"
	defaultConfigPort        = 8000
	defaultSkipAuth          = false

	defaultOtelDisable          = false
	defaultOTLPExporterEndpoint = "localhost:4317"
	defaultOTLPInsecure         = false

	defaultGatewayIssuer   = "UNSET"
	defaultGatewayJWKSURL  = "UNSET"
	defaultGatewayClientID = "UNSET"

	defaultRedisAddr     = "localhost:6379"
	defaultRedisPassword = ""
	defaultRedisDB       = 0

	defaultNDIPollInterval = 3 * time.Second
	defaultNDISessionTTL   = time.Hour
	defaultHandoffTTL      = 30 * time.Minute
)

func DefaultConfig() Config {
	return Config{
		Environment: defaultConfigEnvironment,
		Port:        defaultConfigPort,
		SkipAuth:    defaultSkipAuth,
		Otel: OtelConfig{
			Disable: defaultOtelDisable,
			OtlpExporter: OtlpConfig{
				Endpoint: defaultOTLPExporterEndpoint,
				Insecure: defaultOTLPInsecure,
			},
		},
		Gateway: GatewayConfig{
			Issuer:   defaultGatewayIssuer,
			JWKSURL:  defaultGatewayJWKSURL,
			ClientID: defaultGatewayClientID,
		},
		Redis: RedisConfig{
			Addr:     defaultRedisAddr,
			Password: defaultRedisPassword,
			DB:       defaultRedisDB,
		},
		NDI: NDIConfig{
			PollInterval: defaultNDIPollInterval,
			SessionTTL:   defaultNDISessionTTL,
		},
		Handoff: HandoffConfig{
			TTL: defaultHandoffTTL,
		},
	}
}

func NewConfig(options ...func(*Config)) Config {
	config := DefaultConfig()
	for _, opt := range options {
		opt(&config)
	}
	return config
}

func NewConfigFromEnv(options ...func(*Config)) (Config, error) {
	config := DefaultConfig()
	err := errors.Join(
		setFromEnv(&config.Environment, "ENVIRONMENT"),
		setFromEnv(&config.Port, "PORT"),
		setFromEnv(&config.SkipAuth, "SKIP_AUTH"),
		setFromEnv(&config.Otel.Disable, "OTEL_DISABLE"),
		setFromEnv(&config.Otel.OtlpExporter.Endpoint, "OTEL_OTLP_EXPORTER_ENDPOINT"),
		setFromEnv(&config.Otel.OtlpExporter.Insecure, "OTEL_OTLP_EXPORTER_INSECURE"),
		setFromEnv(&config.Gateway.Issuer, "GATEWAY_ISSUER"),
		setFromEnv(&config.Gateway.JWKSURL, "GATEWAY_JWKS_URL"),
		setFromEnv(&config.Gateway.ClientID, "GATEWAY_CLIENT_ID"),
		setFromEnv(&config.Redis.Addr, "REDIS_ADDR"),
		setFromEnv(&config.Redis.Password, "REDIS_PASSWORD"),
		setFromEnv(&config.Redis.DB, "REDIS_DB"),
		setFromEnv(&config.NDI.BaseURL, "NDI_BASE_URL"),
		setFromEnv(&config.NDI.TokenURL, "NDI_TOKEN_URL"),
		setFromEnv(&config.NDI.ClientID, "NDI_CLIENT_ID"),
		setFromEnv(&config.NDI.ClientSecret, "NDI_CLIENT_SECRET"),
		setFromEnv(&config.NDI.SchemaName, "NDI_SCHEMA_NAME"),
		setFromEnv(&config.NDI.WebhookURL, "NDI_WEBHOOK_URL"),
		setFromEnv(&config.NDI.PollInterval, "NDI_POLL_INTERVAL"),
		setFromEnv(&config.NDI.SessionTTL, "NDI_SESSION_TTL"),
		setFromEnv(&config.CBS.LookupURL, "CBS_LOOKUP_URL"),
		setFromEnv(&config.CBS.APIKey, "CBS_API_KEY"),
		setFromEnv(&config.OTP.DispatchURL, "OTP_DISPATCH_URL"),
		setFromEnv(&config.OTP.TokenURL, "OTP_TOKEN_URL"),
		setFromEnv(&config.OTP.ClientID, "OTP_CLIENT_ID"),
		setFromEnv(&config.OTP.ClientSecret, "OTP_CLIENT_SECRET"),
		setFromEnv(&config.Handoff.TTL, "HANDOFF_TTL"),
	)

	for _, opt := range options {
		opt(&config)
	}

	return config, err
}

func LoadEnv(environment ...string) error {
	filenames := []string{
		".env.local",
		".env",
	}

	env := getEnv("ENVIRONMENT", DefaultConfig().Environment)
	if len(environment) > 0 {
		env = environment[0]
	}

	if env != "" {
		file := ".env." + env + ".local"
		filenames = append([]string{file}, filenames...)
	}

	var errs error

	for _, filename := range filenames {
		err := loadEnvFile(filename)
		if err != nil {
			errs = errors.Join(
				errs,
				fmt.Errorf("error loading %s: %w", filename, err),
			)
		}
	}

	return errs
}
