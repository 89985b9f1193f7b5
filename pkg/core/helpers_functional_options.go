package core

import "time"

func WithRedisAddr(addr string) func(*Config) {
	return func(c *Config) {
		c.Redis.Addr = addr
	}
}

func WithRedisPassword(pw string) func(*Config) {
	return func(c *Config) {
		c.Redis.Password = pw
	}
}

func WithRedisDB(db int) func(*Config) {
	return func(c *Config) {
		c.Redis.DB = db
	}
}

func WithEnvironment(environment string) func(*Config) {
	return func(c *Config) {
		c.Environment = environment
	}
}

func WithPort(port int) func(*Config) {
	return func(c *Config) {
		c.Port = port
	}
}

func WithSkipAuth(value ...bool) func(*Config) {
	val := true
	if len(value) > 0 {
		val = value[0]
	}

	return func(c *Config) {
		c.SkipAuth = val
	}
}

func WithOtlpEndpoint(endpoint string) func(*Config) {
	return func(c *Config) {
		c.Otel.OtlpExporter.Endpoint = endpoint
	}
}

func WithOtlpInsecure(insecure bool) func(*Config) {
	return func(c *Config) {
		c.Otel.OtlpExporter.Insecure = insecure
	}
}

func WithOtelDisable(value ...bool) func(*Config) {
	val := true
	if len(value) > 0 {
		val = value[0]
	}

	return func(c *Config) {
		c.Otel.Disable = val
	}
}

func WithGatewayIssuer(issuer string) func(*Config) {
	return func(c *Config) {
		c.Gateway.Issuer = issuer
	}
}

func WithGatewayJWKSURL(jwksURL string) func(*Config) {
	return func(c *Config) {
		c.Gateway.JWKSURL = jwksURL
	}
}

func WithGatewayClientID(clientID string) func(*Config) {
	return func(c *Config) {
		c.Gateway.ClientID = clientID
	}
}

func WithNDIBaseURL(baseURL string) func(*Config) {
	return func(c *Config) {
		c.NDI.BaseURL = baseURL
	}
}

func WithNDIPollInterval(interval time.Duration) func(*Config) {
	return func(c *Config) {
		c.NDI.PollInterval = interval
	}
}

func WithNDISessionTTL(ttl time.Duration) func(*Config) {
	return func(c *Config) {
		c.NDI.SessionTTL = ttl
	}
}

func WithCBSLookupURL(lookupURL string) func(*Config) {
	return func(c *Config) {
		c.CBS.LookupURL = lookupURL
	}
}

func WithOTPDispatchURL(dispatchURL string) func(*Config) {
	return func(c *Config) {
		c.OTP.DispatchURL = dispatchURL
	}
}

func WithHandoffTTL(ttl time.Duration) func(*Config) {
	return func(c *Config) {
		c.Handoff.TTL = ttl
	}
}
