package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/openmint/marketplace/internal/domain"
)

// BaseConfig holds base configuration shared by every binary
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
	PublicURL    string `mapstructure:"public_url"`    // base URL served to clients (metadata links)
}

// AuthConfig holds authentication configuration for write endpoints
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// CloudflareConfig holds Cloudflare Images configuration for asset uploads
type CloudflareConfig struct {
	AccountID string `mapstructure:"account_id"`
	APIToken  string `mapstructure:"api_token"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// EthereumConfig holds Ethereum RPC and contract configuration
type EthereumConfig struct {
	RPCURL              string        `mapstructure:"rpc_url"`
	ChainID             domain.Chain  `mapstructure:"chain_id"`
	ContractAddress     string        `mapstructure:"contract_address"`
	MintValueETH        float64       `mapstructure:"mint_value_eth"`
	TransferGasLimit    uint64        `mapstructure:"transfer_gas_limit"`
	ConfirmPollInterval time.Duration `mapstructure:"confirm_poll_interval"`
	ConfirmTimeout      time.Duration `mapstructure:"confirm_timeout"`
}

// GatewayConfig holds the persistence gateway endpoint used by the agent
type GatewayConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// WalletConfig holds the agent's signing key configuration
type WalletConfig struct {
	KeyFile string `mapstructure:"key_file"`
}

// APIConfig holds configuration for the marketplace API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Cloudflare CloudflareConfig `mapstructure:"cloudflare"`
	NATS       NATSConfig       `mapstructure:"nats"`
}

// AgentConfig holds configuration for the wallet agent
type AgentConfig struct {
	BaseConfig `mapstructure:",squash"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Gateway    GatewayConfig  `mapstructure:"gateway"`
	Wallet     WalletConfig   `mapstructure:"wallet"`
}

// LoadAPIConfig loads configuration for the marketplace API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("server.public_url", "http://localhost:8080")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("nats.stream_name", "MARKETPLACE_EVENTS")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "marketplace-api")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &cfg, nil
}

// LoadAgentConfig loads configuration for the wallet agent
func LoadAgentConfig(configFile string, envPath string) (*AgentConfig, error) {
	v := configureViper("agent", configFile, envPath)

	v.SetDefault("debug", false)
	v.SetDefault("ethereum.chain_id", "eip155:11155111")
	v.SetDefault("ethereum.mint_value_eth", 0.001)
	v.SetDefault("ethereum.transfer_gas_limit", 150000)
	v.SetDefault("ethereum.confirm_poll_interval", "3s")
	v.SetDefault("ethereum.confirm_timeout", "5m")
	v.SetDefault("gateway.base_url", "http://localhost:8080")
	v.SetDefault("gateway.timeout", "30s")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg AgentConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Ethereum.RPCURL == "" {
		return nil, errors.New("ethereum.rpc_url is required")
	}
	if !domain.IsValidAddress(cfg.Ethereum.ContractAddress) {
		return nil, errors.New("ethereum.contract_address must be a hex-40 address")
	}

	return &cfg, nil
}

// readConfig reads the config file, tolerating a missing file so pure-env
// deployments work
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment
// variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("MARKETPLACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// Viper needs the explicit bindings to map env vars onto struct fields when
// no config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.public_url",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Cloudflare
		"cloudflare.account_id",
		"cloudflare.api_token",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.chain_id",
		"ethereum.contract_address",
		"ethereum.mint_value_eth",
		"ethereum.transfer_gas_limit",
		"ethereum.confirm_poll_interval",
		"ethereum.confirm_timeout",
		// Gateway
		"gateway.base_url",
		"gateway.api_key",
		"gateway.timeout",
		// Wallet
		"wallet.key_file",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
