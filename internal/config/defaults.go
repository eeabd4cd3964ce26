package config

import "time"

const (
	DefaultTokenSigningMethod = "HS256"
	DefaultTokenIssuer        = "go-auth-hub"
	DefaultTokenDuration      = 18 * time.Hour
	DefaultOTPTTL             = 5 * time.Minute
	DefaultOTPLength          = 6
	DefaultOTPAlphabet        = "0123456789"
	DefaultBcryptCost         = 12
	DefaultHashWorkers        = 4
	DefaultDBDriver           = "postgres"
	DefaultOTPRetention       = 24 * time.Hour
	DefaultRequestTimeout     = 30 * time.Second
	DefaultEmailBaseURL       = "https://api.postmarkapp.com"
	DefaultEmailTimeout       = 10 * time.Second
	DefaultLogLevel           = "debug"
)

// defaultConfig returns the values every other source is merged over.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel: DefaultLogLevel,
		},
		Auth: Auth{
			TokenSigningMethod: DefaultTokenSigningMethod,
			TokenIssuer:        DefaultTokenIssuer,
			TokenDuration:      DefaultTokenDuration,
			OTPTTL:             DefaultOTPTTL,
			OTPLength:          DefaultOTPLength,
			OTPAlphabet:        DefaultOTPAlphabet,
			BcryptCost:         DefaultBcryptCost,
			HashWorkers:        DefaultHashWorkers,
		},
		Storage: Storage{
			DB:    DB{Driver: DefaultDBDriver},
			Redis: Redis{OTPRetention: DefaultOTPRetention},
		},
		Server: Server{
			RequestTimeout: DefaultRequestTimeout,
		},
		Email: Email{
			BaseURL: DefaultEmailBaseURL,
			Timeout: DefaultEmailTimeout,
		},
	}
}
