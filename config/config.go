package config

import (
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// SysConfig holds process-level settings.
type SysConfig struct {
	Appname  string `yaml:"appname" json:"appname"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// WebConfig holds the HTTP server settings.
type WebConfig struct {
	Host          string `yaml:"host" json:"host"`
	Port          int    `yaml:"port" json:"port"`
	SessionSecret string `yaml:"session_secret" json:"session_secret"`
	// SessionMaxAge is the absolute session lifetime in seconds.
	// Sessions are not renewed on activity.
	SessionMaxAge int    `yaml:"session_max_age" json:"session_max_age"`
	UploadDir     string `yaml:"upload_dir" json:"upload_dir"`
	PublicDir     string `yaml:"public_dir" json:"public_dir"`
}

// DBConfig holds the catalog database settings.
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

// RedisConfig holds the optional read-cache settings. An empty Addr
// disables caching entirely.
type RedisConfig struct {
	Addr   string `yaml:"addr" json:"addr"`
	Passwd string `yaml:"passwd" json:"passwd"`
	DB     int    `yaml:"db" json:"db"`
}

// SmtpConfig holds optional contact notification settings. An empty Host
// disables outbound mail.
type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
	To       string `yaml:"to" json:"to"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig   `yaml:"system" json:"system"`
	Web      WebConfig   `yaml:"web" json:"web"`
	Database DBConfig    `yaml:"database" json:"database"`
	Redis    RedisConfig `yaml:"redis" json:"redis"`
	Smtp     SmtpConfig  `yaml:"smtp" json:"smtp"`
	Logger   LogConfig   `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appname:  "ModderPro",
		Location: "Africa/Johannesburg",
		Workdir:  "/var/modderpro",
		Debug:    true,
	},
	Web: WebConfig{
		Host:          "0.0.0.0",
		Port:          3000,
		SessionSecret: "",
		SessionMaxAge: 86400,
		UploadDir:     "public/uploads",
		PublicDir:     "public",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "modderpro",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  50,
		IdleConn: 10,
	},
	Redis: RedisConfig{
		Addr: "",
		DB:   0,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/modderpro/modderpro.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

func setEnvIntValue(name string, f func(v int)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(cast.ToInt(evalue))
	}
}

// LoadConfig reads the yaml configuration file when present and applies
// environment variable overrides on top of it.
func LoadConfig(cfile string) *AppConfig {
	if cfile == "" {
		cfile = "modderpro.yml"
	}
	// Copy the defaults so repeated loads never mutate the shared struct.
	cfg := *DefaultAppConfig
	if _, err := os.Stat(cfile); err == nil {
		data, err := os.ReadFile(cfile)
		if err == nil {
			_ = yaml.Unmarshal(data, &cfg)
		}
	}

	setEnvValue("MODSITE_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("MODSITE_SYSTEM_LOCATION", func(v string) { cfg.System.Location = v })
	setEnvBoolValue("MODSITE_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })

	setEnvValue("MODSITE_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvIntValue("PORT", func(v int) { cfg.Web.Port = v })
	setEnvValue("SESSION_SECRET", func(v string) { cfg.Web.SessionSecret = v })
	setEnvIntValue("MODSITE_WEB_SESSION_MAX_AGE", func(v int) { cfg.Web.SessionMaxAge = v })
	setEnvValue("MODSITE_WEB_UPLOAD_DIR", func(v string) { cfg.Web.UploadDir = v })
	setEnvValue("MODSITE_WEB_PUBLIC_DIR", func(v string) { cfg.Web.PublicDir = v })

	setEnvValue("MODSITE_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvIntValue("MODSITE_DB_PORT", func(v int) { cfg.Database.Port = v })
	setEnvValue("MODSITE_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("MODSITE_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("MODSITE_DB_PASSWD", func(v string) { cfg.Database.Passwd = v })

	setEnvValue("MODSITE_REDIS_ADDR", func(v string) { cfg.Redis.Addr = v })
	setEnvValue("MODSITE_REDIS_PASSWD", func(v string) { cfg.Redis.Passwd = v })
	setEnvIntValue("MODSITE_REDIS_DB", func(v int) { cfg.Redis.DB = v })

	setEnvValue("MODSITE_SMTP_HOST", func(v string) { cfg.Smtp.Host = v })
	setEnvIntValue("MODSITE_SMTP_PORT", func(v int) { cfg.Smtp.Port = v })
	setEnvValue("MODSITE_SMTP_USERNAME", func(v string) { cfg.Smtp.Username = v })
	setEnvValue("MODSITE_SMTP_PASSWORD", func(v string) { cfg.Smtp.Password = v })
	setEnvValue("MODSITE_SMTP_FROM", func(v string) { cfg.Smtp.From = v })
	setEnvValue("MODSITE_SMTP_TO", func(v string) { cfg.Smtp.To = v })

	setEnvValue("MODSITE_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvBoolValue("MODSITE_LOGGER_FILE_ENABLE", func(v bool) { cfg.Logger.FileEnable = v })
	setEnvValue("MODSITE_LOGGER_FILENAME", func(v string) { cfg.Logger.Filename = v })

	return &cfg
}
