package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Ledger     LedgerConfig     `mapstructure:"ledger"`
	FeeHistory FeeHistoryConfig `mapstructure:"fee_history"`
	Pool       PoolConfig       `mapstructure:"pool"`
	Partner    PartnerConfig    `mapstructure:"partner"`
	TVLStream  TVLStreamConfig  `mapstructure:"tvl_stream"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type LedgerConfig struct {
	RPCURL  string        `mapstructure:"rpc_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// FeeHistoryConfig points at the analytics source providing the hourly
// cumulative fee series. The credential is read from the environment variable
// named by APIKeyEnv, never from the config file itself.
type FeeHistoryConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	APIKeyEnv     string        `mapstructure:"api_key_env"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RefreshCron   string        `mapstructure:"refresh_cron"`
	LookbackHours int           `mapstructure:"lookback_hours"`
}

type PoolConfig struct {
	StrategyID    string `mapstructure:"strategy_id"`
	MinDepositRaw string `mapstructure:"min_deposit_raw"`
}

type PartnerConfig struct {
	PositionURLBase string `mapstructure:"position_url_base"`
}

type TVLStreamConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	URL             string        `mapstructure:"url"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EARN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("ledger.rpc_url", "https://fullnode.mainnet.sui.io:443")
	v.SetDefault("ledger.timeout", "15s")
	v.SetDefault("fee_history.base_url", "")
	v.SetDefault("fee_history.api_key_env", "EARN_FEE_HISTORY_API_KEY")
	v.SetDefault("fee_history.timeout", "15s")
	v.SetDefault("fee_history.refresh_cron", "@every 10m")
	v.SetDefault("fee_history.lookback_hours", 721)
	v.SetDefault("pool.strategy_id", "tlp-main")
	v.SetDefault("pool.min_deposit_raw", "1000000")
	v.SetDefault("partner.position_url_base", "")
	v.SetDefault("tvl_stream.enabled", false)
	v.SetDefault("tvl_stream.url", "")
	v.SetDefault("tvl_stream.refresh_interval", "30s")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
