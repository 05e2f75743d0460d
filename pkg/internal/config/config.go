package config

import (
	"errors"
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/chain"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config is built once at startup and handed to every component.
type Config struct {
	RpcURL             string `mapstructure:"rpc_url" validate:"required,url"`
	ContractAddress    string `mapstructure:"contract_address" validate:"omitempty,eth_addr"`
	Port               int    `mapstructure:"port" validate:"min=1,max=65535"`
	GrpcBind           string `mapstructure:"grpc_bind"`
	ProbeSchedule      string `mapstructure:"probe_schedule" validate:"required"`
	AdminToken         string `mapstructure:"admin_token"`
	MaxConcurrentReads int    `mapstructure:"max_concurrent_reads" validate:"min=0"`
	Debug              bool   `mapstructure:"debug"`
}

func (v Config) Bind() string {
	return fmt.Sprintf(":%d", v.Port)
}

var envBindings = map[string]string{
	"rpc_url":              "CRONOS_TESTNET_RPC_URL",
	"contract_address":     "CONTRACT_ADDRESS",
	"port":                 "PORT",
	"grpc_bind":            "GRPC_BIND",
	"probe_schedule":       "PROBE_SCHEDULE",
	"admin_token":          "ADMIN_TOKEN",
	"max_concurrent_reads": "MAX_CONCURRENT_READS",
	"debug":                "DEBUG",
}

// LoadDotenv loads the first .env file found, values already present in
// the environment win.
func LoadDotenv(paths ...string) {
	for _, path := range paths {
		if err := godotenv.Load(path); err == nil {
			log.Info().Str("path", path).Msg("Loaded environment file.")
			return
		}
	}
}

// Load reads settings.toml when present, then the environment.
func Load(v *viper.Viper) (Config, error) {
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.SetConfigName("settings")
	v.SetConfigType("toml")

	v.SetDefault("rpc_url", chain.CronosTestnetDefaultRPC)
	v.SetDefault("port", 4000)
	v.SetDefault("grpc_bind", ":4001")
	v.SetDefault("probe_schedule", "@every 5m")
	v.SetDefault("max_concurrent_reads", 0)
	v.SetDefault("debug", false)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read settings: %v", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode settings: %v", err)
	}

	cfg.ContractAddress = strings.TrimSpace(cfg.ContractAddress)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid settings: %v", err)
	}

	return cfg, nil
}
