package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	StorageJSON   = "json"
	StorageMemory = "memory"
)

type (
	ServerConfig struct {
		Addr            string
		ShutdownTimeout time.Duration
	}

	Config struct {
		Env          string // DEV (local; default), TEST, QA, PROD
		Debug        bool
		TestMode     bool
		AppName      string
		Build        string
		DataFile     string
		SeedDemo     bool
		Storage      string
		BackupDir    string
		ReportDir    string
		LogFile      string
		RollbarToken string
		Server       ServerConfig
	}
)

func newViper(env string) *viper.Viper {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "MSMS")
	v.SetDefault("build", "dev")
	v.SetDefault("dataFile", filepath.Join("data", "msms.json"))
	v.SetDefault("seedDemo", true)
	v.SetDefault("storage", StorageJSON)
	v.SetDefault("backupDir", "backups")
	v.SetDefault("reportDir", "reports")
	v.SetDefault("logFile", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)

	if env == "TEST" {
		v.SetDefault("testMode", true)
		v.SetDefault("seedDemo", false)
	}

	v.SetEnvPrefix("MSMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// NewConfig loads the application configuration.
// Values come from defaults, then `config/.env.<env>` (if it exists), then MSMS_* environment variables.
func NewConfig() (*Config, error) {
	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}

	v := newViper(env)
	conf := &Config{
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		DataFile:     v.GetString("dataFile"),
		SeedDemo:     v.GetBool("seedDemo"),
		Storage:      strings.ToLower(v.GetString("storage")),
		BackupDir:    v.GetString("backupDir"),
		ReportDir:    v.GetString("reportDir"),
		LogFile:      v.GetString("logFile"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Addr:            v.GetString("server.addr"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
	}
	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) validate() error {
	switch c.Storage {
	case StorageJSON, StorageMemory:
	default:
		return errors.Errorf("config: unknown storage %q (want %q or %q)", c.Storage, StorageJSON, StorageMemory)
	}
	if c.Storage == StorageJSON && CleanString(c.DataFile) == "" {
		return errors.New("config: dataFile is required for json storage")
	}
	return nil
}
