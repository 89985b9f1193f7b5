package core

import "time"

type Config struct {
	Environment string
	Port        int
	SkipAuth    bool
	Otel        OtelConfig
	Gateway     GatewayConfig
	Redis       RedisConfig
	NDI         NDIConfig
	CBS         CBSConfig
	OTP         OTPConfig
	Handoff     HandoffConfig
}

type OtlpConfig struct {
	Endpoint string
	Insecure bool
}

type OtelConfig struct {
	OtlpExporter OtlpConfig
	Disable      bool
}

// GatewayConfig describes the API gateway fronting this service. Its
// access tokens are verified on every request unless SkipAuth is set.
type GatewayConfig struct {
	Issuer   string
	JWKSURL  string
	ClientID string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NDIConfig points at the national digital-identity verifier and names
// the credential schema whose attributes we request.
type NDIConfig struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	SchemaName   string
	WebhookURL   string
	PollInterval time.Duration
	SessionTTL   time.Duration
}

// CBSConfig points at the core banking system's customer-onboarding API
// backing the existing-customer lookup path.
type CBSConfig struct {
	LookupURL string
	APIKey    string
}

// OTPConfig points at the messaging gateway delivering one-time
// passwords over SMS or email.
type OTPConfig struct {
	DispatchURL  string
	TokenURL     string
	ClientID     string
	ClientSecret string
}

type HandoffConfig struct {
	TTL time.Duration
}
