package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	JwtSecret string `yaml:"jwt_secret" json:"jwt_secret"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// CurrencyConfig drives the exchange-rate pipeline. Endpoint is queried as
// GET <endpoint>/<FROM>; CacheTTL bounds rate staleness in seconds.
type CurrencyConfig struct {
	ProviderEndpoint string `yaml:"provider_endpoint" json:"provider_endpoint"`
	FetchTimeout     int    `yaml:"fetch_timeout" json:"fetch_timeout"`
	CacheTTL         int    `yaml:"cache_ttl" json:"cache_ttl"`
	DefaultCurrency  string `yaml:"default_currency" json:"default_currency"`
}

type AssetsConfig struct {
	Basedir string `yaml:"basedir" json:"basedir"`
}

type AppConfig struct {
	System   SysConfig      `yaml:"system" json:"system"`
	Web      WebConfig      `yaml:"web" json:"web"`
	Database DBConfig       `yaml:"database" json:"database"`
	Logger   LoggerConfig   `yaml:"logger" json:"logger"`
	Currency CurrencyConfig `yaml:"currency" json:"currency"`
	Assets   AssetsConfig   `yaml:"assets" json:"assets"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "catalogd",
		Location: "Asia/Jakarta",
		Workdir:  "/var/catalogd",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1816,
		JwtSecret: "9b6de5cc-catalogd-0cc1-jwt",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "catalogd",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/catalogd/catalogd.log",
	},
	Currency: CurrencyConfig{
		ProviderEndpoint: "https://open.er-api.com/v6/latest",
		FetchTimeout:     5,
		CacheTTL:         3600,
		DefaultCurrency:  "EUR",
	},
	Assets: AssetsConfig{
		Basedir: "/var/catalogd/assets",
	},
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0755)
	_ = os.MkdirAll(c.Assets.Basedir, 0755)
}

func setEnvValue(name string, f func(v string)) {
	if v := os.Getenv(name); v != "" {
		f(v)
	}
}

// LoadConfig reads the YAML configuration file and applies environment
// overrides. A missing file yields the built-in defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			cfg = new(AppConfig)
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(err)
			}
		}
	}

	setEnvValue("CATALOGD_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("CATALOGD_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("CATALOGD_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("CATALOGD_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("CATALOGD_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("CATALOGD_WEB_JWT_SECRET", func(v string) { cfg.Web.JwtSecret = v })
	setEnvValue("CATALOGD_RATE_ENDPOINT", func(v string) { cfg.Currency.ProviderEndpoint = v })
	setEnvValue("CATALOGD_ASSETS_BASEDIR", func(v string) { cfg.Assets.Basedir = v })

	return cfg
}
