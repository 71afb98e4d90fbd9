package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/playback"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/session"
)

// Config is the aggregate runtime configuration.
type Config struct {
	// ListenAddr is the HTTP bind address.
	ListenAddr string

	// StorageRoot is where durable session backups live. Empty selects
	// the in-memory store.
	StorageRoot string

	// BackupMaxAge bounds how old a local backup may be and still be
	// merged on session load.
	BackupMaxAge time.Duration

	// JobRetention is how long finished load jobs stay queryable before
	// they are pruned.
	JobRetention time.Duration

	SessionCfg  session.Config
	PlaybackCfg playback.Config
}

// DefaultConfig returns development defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:   ":8080",
		StorageRoot:  "",
		BackupMaxAge: 24 * time.Hour,
		JobRetention: time.Hour,
		SessionCfg:   session.DefaultConfig(),
		PlaybackCfg:  playback.DefaultConfig(),
	}
}

// LoadConfig reads configuration from an optional file and the
// environment. File keys mirror the struct (listen_addr, storage_root,
// backup_max_age, session.base_url, ...); environment variables use the
// EXPLAINO_ prefix with underscores, e.g. EXPLAINO_SESSION_BASE_URL.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetDefault("listen_addr", cfg.ListenAddr)
	v.SetDefault("storage_root", cfg.StorageRoot)
	v.SetDefault("backup_max_age", cfg.BackupMaxAge)
	v.SetDefault("job_retention", cfg.JobRetention)
	v.SetDefault("session.base_url", cfg.SessionCfg.BaseURL)
	v.SetDefault("session.http_timeout", cfg.SessionCfg.HTTPTimeout)
	v.SetDefault("session.poll_initial_interval", cfg.SessionCfg.PollInitialInterval)
	v.SetDefault("session.poll_max_interval", cfg.SessionCfg.PollMaxInterval)
	v.SetDefault("session.poll_max_elapsed", cfg.SessionCfg.PollMaxElapsed)

	v.SetEnvPrefix("EXPLAINO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg.ListenAddr = v.GetString("listen_addr")
	cfg.StorageRoot = v.GetString("storage_root")
	cfg.BackupMaxAge = v.GetDuration("backup_max_age")
	cfg.JobRetention = v.GetDuration("job_retention")
	cfg.SessionCfg.BaseURL = v.GetString("session.base_url")
	cfg.SessionCfg.HTTPTimeout = v.GetDuration("session.http_timeout")
	cfg.SessionCfg.PollInitialInterval = v.GetDuration("session.poll_initial_interval")
	cfg.SessionCfg.PollMaxInterval = v.GetDuration("session.poll_max_interval")
	cfg.SessionCfg.PollMaxElapsed = v.GetDuration("session.poll_max_elapsed")

	return cfg, nil
}
