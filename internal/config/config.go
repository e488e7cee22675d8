package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	ISS      ISSConfig      `mapstructure:"iss"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
	Export   ExportConfig   `mapstructure:"export"`
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

// ISSConfig points at the MOEX ISS public API.
type ISSConfig struct {
	OptionsBaseURL  string        `mapstructure:"options_base_url"`
	CandlesBaseURL  string        `mapstructure:"candles_base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	RequestInterval time.Duration `mapstructure:"request_interval"`
}

type PipelineConfig struct {
	Tickers       []string `mapstructure:"tickers"`
	MaxExpiration string   `mapstructure:"max_expiration"`
	NearMoneyPct  float64  `mapstructure:"near_money_pct"`
}

// Cutoff parses MaxExpiration as a calendar date.
func (c PipelineConfig) Cutoff() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.MaxExpiration)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pipeline.max_expiration %q: %w", c.MaxExpiration, err)
	}
	return t, nil
}

type MonitorConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type ExportConfig struct {
	TablesDir     string `mapstructure:"tables_dir"`
	MonitoringDir string `mapstructure:"monitoring_dir"`
	Top           int    `mapstructure:"top"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("OPTSCAN")
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

	v.SetDefault("iss.options_base_url", "https://iss.moex.com/iss/statistics/engines/futures/markets/options/assets")
	v.SetDefault("iss.candles_base_url", "https://iss.moex.com/iss/engines/stock/markets/shares/securities")
	v.SetDefault("iss.timeout", "30s")
	v.SetDefault("iss.request_interval", "10ms")

	v.SetDefault("pipeline.tickers", defaultTickers)
	v.SetDefault("pipeline.max_expiration", "2026-06-01")
	v.SetDefault("pipeline.near_money_pct", 10.0)

	v.SetDefault("monitor.interval", "15m")

	v.SetDefault("export.tables_dir", "output/tables")
	v.SetDefault("export.monitoring_dir", "output/monitoring")
	v.SetDefault("export.top", 10)

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

// defaultTickers is the underlying universe scanned when the config file
// does not override pipeline.tickers.
var defaultTickers = []string{
	"GLDRUB_TOM", "USD000UTSTOM", "EUR_RUB__TOM", "CNYRUB_TOM", "T", "SBERP", "ABIO",
	"YDEX", "SBER", "TATN", "TATNP", "SVCB", "FEES", "AFKS", "POSI", "RTKM",
	"MGNT", "PHOR", "SNGS", "SNGSP", "MSNG", "IRAO", "VKCO", "CHMF", "RUAL",
	"GMKN", "SMLT", "NLMK", "LKOH", "NVTK", "VTBR", "SIBN", "ALRS", "PIKK",
	"AFLT", "GAZP", "ROSN", "MTLR", "MTSS", "MOEX", "MAGN",
}
