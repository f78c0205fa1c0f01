package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. MDTOC_HEADING_TEXT.
const EnvPrefix = "MDTOC"

// Manager loads configuration and can reload it when the file changes.
type Manager struct {
	v         *viper.Viper
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager loads cfgFile, or .md-toc.yaml from the working directory when
// cfgFile is empty. A missing default file is not an error.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{v: viper.New()}
	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg
	return cm, nil
}

// Load is NewManager for callers that never reload.
func Load(cfgFile string) (*Config, error) {
	cm, err := NewManager(cfgFile)
	if err != nil {
		return nil, err
	}
	return cm.Get(), nil
}

func (cm *Manager) initViper(cfgFile string) error {
	defaults := DefaultConfig()
	v := cm.v
	v.SetDefault("heading_text", defaults.HeadingText)
	v.SetDefault("heading_level", defaults.HeadingLevel)
	v.SetDefault("skip_level", defaults.SkipLevel)
	v.SetDefault("max_level", defaults.MaxLevel)
	v.SetDefault("add_trailing_heading_chars", defaults.AddTrailingHeadingChars)
	v.SetDefault("alt_list_char", defaults.AltListChar)
	v.SetDefault("numbered", defaults.Numbered)
	v.SetDefault("comment_full_command", defaults.CommentFullCommand)
	v.SetDefault("comment_datestamp", defaults.CommentDatestamp)
	v.SetDefault("newlines", defaults.Newlines)
	v.SetDefault("jobs", defaults.Jobs)
	v.SetDefault("state_dir", defaults.StateDir)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("watch_debounce", defaults.WatchDebounce)
	v.SetDefault("mcp_transport", defaults.MCPTransport)
	v.SetDefault("mcp_port", defaults.MCPPort)
	v.SetDefault("serve_addr", defaults.ServeAddr)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// comment has no default, so AutomaticEnv alone would never see it
	if err := v.BindEnv("comment"); err != nil {
		return fmt.Errorf("error binding comment env: %w", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// ConfigFile returns the file the configuration was read from, if any.
func (cm *Manager) ConfigFile() string {
	return cm.v.ConfigFileUsed()
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig reloads the configuration whenever the file changes and
// passes the new value to every OnChange callback. Reloads that fail to
// parse are ignored.
func (cm *Manager) WatchConfig() {
	if cm.ConfigFile() == "" {
		return
	}
	cm.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	cm.v.WatchConfig()
}
