package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/config"
	"github.com/coinbase/l2node/internal/utils/retry"
)

type (
	Config struct {
		ConfigName string        `mapstructure:"config_name" validate:"required"`
		Chain      ChainConfig   `mapstructure:"chain"`
		API        APIConfig     `mapstructure:"api"`
		Replica    ReplicaConfig `mapstructure:"replica"`
		Server     ServerConfig  `mapstructure:"server"`
		Metrics    MetricsConfig `mapstructure:"metrics"`
		Tracer     TracerConfig  `mapstructure:"tracer"`
		Cron       CronConfig    `mapstructure:"cron"`

		env Env
	}

	ChainConfig struct {
		ChainID         uint64       `mapstructure:"chain_id" validate:"required"`
		Network         string       `mapstructure:"network" validate:"required"`
		ProtocolVersion string       `mapstructure:"protocol_version" validate:"required"`
		Client          ClientConfig `mapstructure:"client"`
	}

	ClientConfig struct {
		ServerName    string        `mapstructure:"server_name"`
		ServerAddress string        `mapstructure:"server_address"`
		ServerHandle  string        `mapstructure:"server_handle"`
		Primary       EndpointGroup `mapstructure:"primary"`
		Retry         RetryConfig   `mapstructure:"retry"`
	}

	EndpointGroup struct {
		Endpoints         []Endpoint `json:"endpoints" mapstructure:"endpoints"`
		EndpointsFailover []Endpoint `json:"endpoints_failover" mapstructure:"endpoints_failover"`
		UseFailover       bool       `json:"use_failover" mapstructure:"use_failover"`
	}

	// endpointGroup must be in sync with EndpointGroup
	endpointGroup struct {
		Endpoints         []Endpoint `json:"endpoints"`
		EndpointsFailover []Endpoint `json:"endpoints_failover"`
		UseFailover       bool       `json:"use_failover"`
	}

	Endpoint struct {
		Name     string `json:"name" mapstructure:"name"`
		Url      string `json:"url" mapstructure:"url"`
		User     string `json:"user" mapstructure:"user"`
		Password string `json:"password" mapstructure:"password"`
		Weight   uint8  `json:"weight" mapstructure:"weight"`
	}

	RetryConfig struct {
		MaxAttempts     int           `mapstructure:"max_attempts"`
		InitialInterval time.Duration `mapstructure:"initial_interval"`
	}

	APIConfig struct {
		// ReqEntitiesLimit is the maximum number of entities (logs, block hashes, tx hashes) a single request may return.
		ReqEntitiesLimit int    `mapstructure:"req_entities_limit" validate:"required,min=1"`
		MaxTxSize        int    `mapstructure:"max_tx_size" validate:"required,min=1"`
		GasPrice         uint64 `mapstructure:"gas_price" validate:"required"`

		EstimateGasScaleFactor              float64 `mapstructure:"estimate_gas_scale_factor" validate:"gt=0"`
		EstimateGasAcceptableOverestimation uint64  `mapstructure:"estimate_gas_acceptable_overestimation"`
		EstimateGasCap                      uint64  `mapstructure:"estimate_gas_cap" validate:"required"`

		CompatMode   CompatMode `mapstructure:"compat_mode" validate:"oneof=none openzeppelin"`
		FiltersLimit int        `mapstructure:"filters_limit" validate:"min=0"`
		Accounts     []string   `mapstructure:"accounts" validate:"dive,eth_addr"`
	}

	ReplicaConfig struct {
		Enabled        bool          `mapstructure:"enabled"`
		ProxyCacheSize int           `mapstructure:"proxy_cache_size" validate:"required,min=1"`
		SyncBlockDelta uint64        `mapstructure:"sync_block_delta"`
		PollInterval   time.Duration `mapstructure:"poll_interval" validate:"required"`
	}

	ServerConfig struct {
		BindAddress          string `mapstructure:"bind_address" validate:"required"`
		BatchItemLimit       int    `mapstructure:"batch_item_limit"`
		BatchResponseMaxSize int    `mapstructure:"batch_response_max_size"`
	}

	MetricsConfig struct {
		Prometheus bool `mapstructure:"prometheus"`
	}

	TracerConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	CronConfig struct {
		DisableFailover    bool `mapstructure:"disable_failover"`
		DisablePrimaryHead bool `mapstructure:"disable_primary_head"`
		DisableGasPrice    bool `mapstructure:"disable_gas_price"`
	}

	ConfigOption func(options *configOptions)

	Env string

	CompatMode string

	configOptions struct {
		ConfigName string `validate:"required"`
		Env        Env    `validate:"required,oneof=production development local"`
	}

	// derivedConfig defines a callback where a config struct can override its fields based on the global config.
	// For example, ClientConfig implements this interface to derive the server name from the network.
	derivedConfig interface {
		DeriveConfig(cfg *Config)
	}
)

const (
	EnvVarConfigName  = "L2NODE_CONFIG_NAME"
	EnvVarEnvironment = "L2NODE_ENVIRONMENT"
	EnvVarTestType    = "TEST_TYPE"
	EnvVarCI          = "CI"

	Namespace         = "l2node"
	DefaultConfigName = "mainnet"

	EnvBase        Env = "base"
	EnvLocal       Env = "local"
	EnvProduction  Env = "production"
	EnvDevelopment Env = "development"
	envSecrets     Env = "secrets" // .secrets.yml is merged into local.yml

	CompatModeNone         CompatMode = "none"
	CompatModeOpenZeppelin CompatMode = "openzeppelin"

	ServerHandle = "/v1"

	placeholderPassword = "<placeholder>"

	tagNetwork = "network"
	tagChainID = "chain_id"

	currentFileName = "/internal/config/config.go"
)

var (
	_ derivedConfig = (*ClientConfig)(nil)
	_ derivedConfig = (*APIConfig)(nil)

	// ConfigNames lists the networks with a config directory under config/l2node.
	ConfigNames = []string{
		"mainnet",
		"testnet",
	}
)

func New(opts ...ConfigOption) (*Config, error) {
	validate := validator.New()

	configOpts, err := getConfigOptions(opts...)
	if err != nil {
		return nil, xerrors.Errorf("failed to get config options %w", err)
	}

	if err := validate.Struct(configOpts); err != nil {
		return nil, xerrors.Errorf("failed to validate config options: %w", err)
	}

	configReader, err := getConfigData(Namespace, EnvBase, configOpts.ConfigName)
	if err != nil {
		return nil, xerrors.Errorf("failed to locate config file: %w", err)
	}

	cfg := Config{
		env: configOpts.Env,
	}

	v := viper.New()
	v.SetConfigName(string(EnvBase))
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)

	v.SetEnvPrefix("L2NODE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read the data in base.yml
	if err := v.ReadConfig(configReader); err != nil {
		return nil, xerrors.Errorf("failed to read config: %w", err)
	}

	// Merge in the env-specific config, such as development.yml
	if err := mergeInConfig(v, configOpts, configOpts.Env); err != nil {
		return nil, xerrors.Errorf("failed to merge in %v config: %w", configOpts.Env, err)
	}

	// Merge in .secrets.yml if available.
	if err := mergeInConfig(v, configOpts, envSecrets); err != nil {
		return nil, xerrors.Errorf("failed to merge in %v config: %w", envSecrets, err)
	}

	if err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, xerrors.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.setDerivedConfigs(reflect.ValueOf(&cfg))

	if err := validate.Struct(&cfg); err != nil {
		return nil, xerrors.Errorf("failed to validate config: %w", err)
	}

	return &cfg, nil
}

func mergeInConfig(v *viper.Viper, configOpts *configOptions, env Env) error {
	// Merge in the env-specific config if available.
	if configReader, err := getConfigData(Namespace, env, configOpts.ConfigName); err == nil {
		v.SetConfigName(string(env))
		if err := v.MergeConfig(configReader); err != nil {
			return xerrors.Errorf("failed to merge config %v: %w", configOpts.Env, err)
		}
	}
	return nil
}

func (c *Config) Env() Env {
	return c.env
}

func (c *Config) Network() string {
	return c.Chain.Network
}

func (c *Config) ChainID() uint64 {
	return c.Chain.ChainID
}

// IsFollower returns true when the node mirrors a primary node and proxies not-yet-local reads upstream.
func (c *Config) IsFollower() bool {
	return c.Replica.Enabled
}

func (c *Config) GetCommonTags() map[string]string {
	return map[string]string{
		tagNetwork: c.Network(),
		tagChainID: strconv.FormatUint(c.ChainID(), 10),
	}
}

func (c *Config) IsCI() bool {
	return os.Getenv(EnvVarCI) != ""
}

func (c *Config) IsFunctionalTest() bool {
	return os.Getenv(EnvVarTestType) == "functional"
}

func (c *Config) IsTest() bool {
	return os.Getenv(EnvVarTestType) != ""
}

// setDerivedConfigs recursively calls DeriveConfig on all the derivedConfig.
func (c *Config) setDerivedConfigs(v reflect.Value) {
	if v.CanInterface() {
		if oc, ok := v.Interface().(derivedConfig); ok {
			oc.DeriveConfig(c)
			return
		}
	}

	elem := v.Elem()
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Field(i)
		if field.Kind() == reflect.Struct && field.CanAddr() && field.Addr().CanInterface() {
			c.setDerivedConfigs(field.Addr())
		}
	}
}

func getConfigOptions(opts ...ConfigOption) (*configOptions, error) {
	configName, ok := os.LookupEnv(EnvVarConfigName)
	if !ok {
		configName = DefaultConfigName
	}

	env := EnvLocal
	if value, ok := os.LookupEnv(EnvVarEnvironment); ok && value != "" {
		env = Env(value)
	}

	configOpts := &configOptions{
		ConfigName: configName,
		Env:        env,
	}

	for _, opt := range opts {
		opt(configOpts)
	}
	return configOpts, nil
}

func getConfigData(namespace string, env Env, configName string) (io.Reader, error) {
	if env == envSecrets {
		// .secrets.yml is intentionally not embedded in config.Store.
		// Read it from the file system instead.
		_, filename, _, ok := runtime.Caller(0)
		if !ok {
			return nil, xerrors.Errorf("failed to recover the filename information")
		}
		rootDir := strings.TrimSuffix(filename, currentFileName)
		configPath := fmt.Sprintf("%v/config/%v/%v/.secrets.yml", rootDir, namespace, configName)
		reader, err := os.Open(configPath) // #nosec G304 - potential file inclusion via variable
		if err != nil {
			return nil, xerrors.Errorf("failed to read config file %v: %w", configPath, err)
		}
		return reader, nil
	}

	configPath := fmt.Sprintf("%s/%v/%v.yml", namespace, configName, env)
	return config.Store.Open(configPath)
}

func WithConfigName(configName string) ConfigOption {
	return func(opts *configOptions) {
		opts.ConfigName = configName
	}
}

func WithEnvironment(env Env) ConfigOption {
	return func(opts *configOptions) {
		opts.Env = env
	}
}

func (c *ClientConfig) DeriveConfig(cfg *Config) {
	if c.ServerAddress == "" {
		c.ServerAddress = "http://localhost:8000"
	}
	c.ServerName = fmt.Sprintf("%s-%s-%s", Namespace, cfg.Network(), cfg.Env())
	c.ServerHandle = ServerHandle
}

func (c *APIConfig) DeriveConfig(cfg *Config) {
	if c.CompatMode == "" {
		c.CompatMode = CompatModeNone
	}
}

// SortedAccounts returns the configured accounts, deduplicated and sorted in ascending byte order.
func (c *APIConfig) SortedAccounts() []common.Address {
	seen := make(map[common.Address]struct{}, len(c.Accounts))
	accounts := make([]common.Address, 0, len(c.Accounts))
	for _, account := range c.Accounts {
		address := common.HexToAddress(account)
		if _, ok := seen[address]; ok {
			continue
		}

		seen[address] = struct{}{}
		accounts = append(accounts, address)
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Cmp(accounts[j]) < 0
	})
	return accounts
}

// Empty returns true if no usable primary endpoint is configured.
func (c *ClientConfig) Empty() bool {
	if len(c.Primary.Endpoints) == 0 {
		return true
	}

	for _, endpoint := range c.Primary.Endpoints {
		if endpoint.Password == placeholderPassword {
			return true
		}
	}

	return false
}

func (e *EndpointGroup) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		return nil
	}

	var eg endpointGroup
	err := json.Unmarshal(text, &eg)
	if err != nil {
		return xerrors.Errorf("failed to parse EndpointGroup JSON: %w", err)
	}

	if len(eg.Endpoints) == 0 {
		return xerrors.New("endpoints is empty")
	}

	if eg.UseFailover && len(eg.EndpointsFailover) == 0 {
		return xerrors.New("endpoints_failover is empty")
	}

	e.Endpoints = eg.Endpoints
	e.EndpointsFailover = eg.EndpointsFailover
	e.UseFailover = eg.UseFailover

	for _, endpoints := range [][]Endpoint{e.Endpoints, e.EndpointsFailover} {
		for _, endpoint := range endpoints {
			if endpoint.Name == "" {
				return xerrors.New("empty endpoint.Name")
			}
			if endpoint.Url == "" {
				return xerrors.New("empty endpoint.URL")
			}
		}
	}
	return nil
}

func (c *RetryConfig) NewRetry(opts ...retry.Option) retry.Retry {
	if c.MaxAttempts > 0 {
		opts = append(opts, retry.WithMaxAttempts(c.MaxAttempts))
	}

	if c.InitialInterval > 0 {
		opts = append(opts, retry.WithBackoffFactory(func() retry.Backoff {
			backoff := retry.DefaultBackoffFactory()
			backoff.InitialInterval = c.InitialInterval
			return backoff
		}))
	}

	return retry.New(opts...)
}
