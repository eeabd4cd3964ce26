package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the on-disk JSON layout.
// Durations are written as strings ("5m", "18h") or nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		Version  string `json:"version"`
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Auth struct {
		TokenSignKey       string   `json:"token_sign_key"`
		TokenSigningMethod string   `json:"token_signing_method"`
		TokenIssuer        string   `json:"token_issuer"`
		TokenDuration      Duration `json:"token_duration"`
		OTPTTL             Duration `json:"otp_ttl"`
		OTPLength          int      `json:"otp_length"`
		OTPAlphabet        string   `json:"otp_alphabet"`
		BcryptCost         int      `json:"bcrypt_cost"`
		HashWorkers        int      `json:"hash_workers"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Addr         string   `json:"addr"`
			Password     string   `json:"password"`
			DB           int      `json:"db"`
			OTPRetention Duration `json:"otp_retention"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Email struct {
		BaseURL     string   `json:"base_url"`
		ServerToken string   `json:"server_token"`
		FromEmail   string   `json:"from"`
		Timeout     Duration `json:"timeout"`
	} `json:"email,omitempty"`

	Workers struct {
		OTPSweepInterval Duration `json:"otp_sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:  jsonCfg.App.Version,
			LogLevel: jsonCfg.App.LogLevel,
		},
		Auth: Auth{
			TokenSignKey:       jsonCfg.Auth.TokenSignKey,
			TokenSigningMethod: jsonCfg.Auth.TokenSigningMethod,
			TokenIssuer:        jsonCfg.Auth.TokenIssuer,
			TokenDuration:      time.Duration(jsonCfg.Auth.TokenDuration),
			OTPTTL:             time.Duration(jsonCfg.Auth.OTPTTL),
			OTPLength:          jsonCfg.Auth.OTPLength,
			OTPAlphabet:        jsonCfg.Auth.OTPAlphabet,
			BcryptCost:         jsonCfg.Auth.BcryptCost,
			HashWorkers:        jsonCfg.Auth.HashWorkers,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Redis: Redis{
				Addr:         jsonCfg.Storage.Redis.Addr,
				Password:     jsonCfg.Storage.Redis.Password,
				DB:           jsonCfg.Storage.Redis.DB,
				OTPRetention: time.Duration(jsonCfg.Storage.Redis.OTPRetention),
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Email: Email{
			BaseURL:     jsonCfg.Email.BaseURL,
			ServerToken: jsonCfg.Email.ServerToken,
			FromEmail:   jsonCfg.Email.FromEmail,
			Timeout:     time.Duration(jsonCfg.Email.Timeout),
		},
		Workers: Workers{
			OTPSweepInterval: time.Duration(jsonCfg.Workers.OTPSweepInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
