package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit          string        `yaml:"git_commit" envconfig:"BSTORE_GIT_COMMIT"`
	GitTag             string        `yaml:"git_tag" envconfig:"BSTORE_GIT_TAG"`
	BuildTime          string        `yaml:"build_time" envconfig:"BSTORE_BUILD_TIME"`
	IsProduction       bool          `yaml:"is_production" envconfig:"BSTORE_IS_PRODUCTION"`
	LogLevel           zapcore.Level `yaml:"log_level" envconfig:"BSTORE_LOG_LEVEL"`
	LogFolder          string        `yaml:"log_folder" envconfig:"BSTORE_LOG_FOLDER"`
	LogMaxSize         int           `yaml:"log_max_size" envconfig:"BSTORE_LOG_MAX_SIZE"`
	ProfilerEnable     bool          `yaml:"profiler_enable" envconfig:"BSTORE_PROFILER_ENABLE"`
	OpsEndpointsEnable bool          `yaml:"ops_endpoints_enable" envconfig:"BSTORE_OPS_ENDPOINTS_ENABLE"`
	Server             ServerConfig  `yaml:"server"`
	Redis              RedisConfig   `yaml:"redis"`
	BoltDB             BoltDBConfig  `yaml:"boltdb"`
	Auth               AuthConfig    `yaml:"auth"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"BSTORE_SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"BSTORE_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"BSTORE_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"BSTORE_SERVER_WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"BSTORE_SERVER_REQUEST_TIMEOUT"` // Time to wait for a request to finish
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"BSTORE_SERVER_SHUTDOWN_TIMEOUT"`
}

type RedisConfig struct {
	Host          string        `yaml:"host" envconfig:"BSTORE_REDIS_HOST"`
	Port          string        `yaml:"port" envconfig:"BSTORE_REDIS_PORT"`
	DialTimeout   time.Duration `yaml:"dial_timeout" envconfig:"BSTORE_REDIS_DIAL_TIMEOUT"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"BSTORE_REDIS_READ_TIMEOUT"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"BSTORE_REDIS_WRITE_TIMEOUT"`
	PoolSize      int           `yaml:"pool_size" envconfig:"BSTORE_REDIS_POOL_SIZE"`
	PoolTimeout   time.Duration `yaml:"pool_timeout" envconfig:"BSTORE_REDIS_POOL_TIMEOUT"`
	Username      string        `yaml:"username" envconfig:"BSTORE_REDIS_USERNAME"`
	Password      string        `yaml:"password" envconfig:"BSTORE_REDIS_PASSWORD"`
	DatabaseIndex int           `yaml:"db_index" envconfig:"BSTORE_REDIS_DATABASE_INDEX"`
}

type BoltDBConfig struct {
	FilePath      string        `yaml:"filepath" envconfig:"BSTORE_BOLTDB_FILE_PATH"`
	Timeout       time.Duration `yaml:"timeout" envconfig:"BSTORE_BOLTDB_TIMEOUT"`
	CartsBucket   string        `yaml:"carts_bucket" envconfig:"BSTORE_BOLTDB_CARTS_BUCKET"`
	ArchiveBucket string        `yaml:"archive_bucket" envconfig:"BSTORE_BOLTDB_ARCHIVE_BUCKET"`
}

type AuthConfig struct {
	Secret   string        `yaml:"secret" envconfig:"BSTORE_AUTH_SECRET"`
	TokenTTL time.Duration `yaml:"token_ttl" envconfig:"BSTORE_AUTH_TOKEN_TTL"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and provides an instance of the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	if len(config.Redis.Host) == 0 || len(config.Redis.Port) == 0 {
		return errors.New("make sure to set valid redis address and port in configuration file")
	}

	if len(config.BoltDB.FilePath) == 0 || len(config.BoltDB.CartsBucket) == 0 {
		return errors.New("make sure to set valid boltdb file path and carts bucket in configuration file")
	}

	if len(config.Auth.Secret) == 0 {
		return errors.New("make sure to set a non-empty auth secret in configuration file")
	}

	if config.Auth.TokenTTL == 0 {
		config.Auth.TokenTTL = 24 * time.Hour
	}

	if config.LogMaxSize == 0 {
		config.LogMaxSize = 100
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile("./config.yml")
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration.
	err = godotenv.Load("./config.env")
	if err != nil {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `BSTORE`.
	err = LoadConfigEnvs("BSTORE", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
