package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"` // "development" | "production"
	Timezone       string                `yaml:"timezone"`
	JWTSecret      string                `yaml:"jwt_secret"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	Paths          RuntimePathsConfig    `yaml:"paths"`
	Database       DatabaseRuntimeConfig `yaml:"database"`
	Redis          RedisRuntimeConfig    `yaml:"redis"`
	Classifier     ClassifierConfig      `yaml:"classifier"`
	Lock           LockConfig            `yaml:"lock"`
	Trend          TrendConfig           `yaml:"trend"`
	Recommendation RecommendationConfig  `yaml:"recommendation"`
	Reminder       ReminderConfig        `yaml:"reminder"`
	Tracing        TracingConfig         `yaml:"tracing"`

	root string
}

type DatabaseRuntimeConfig struct {
	Driver     string            `yaml:"driver"` // "mysql" | "sqlite"
	DSN        string            `yaml:"dsn"`
	Host       string            `yaml:"host"`
	Port       int               `yaml:"port"`
	User       string            `yaml:"user"`
	Password   string            `yaml:"password"`
	Name       string            `yaml:"name"`
	Charset    string            `yaml:"charset"`
	ParseTime  bool              `yaml:"parse_time"`
	Loc        string            `yaml:"loc"`
	Params     map[string]string `yaml:"params"`
	SQLitePath string            `yaml:"sqlite_path"`
	// MaxRetries bounds how often a failed transaction is retried before a StoreError surfaces.
	MaxRetries int `yaml:"max_retries"`

	root string
}

type RedisRuntimeConfig struct {
	Enable   bool              `yaml:"enable"`
	URL      string            `yaml:"url"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	DB       int               `yaml:"db"`
	TLS      bool              `yaml:"tls"`
	Scheme   string            `yaml:"scheme"`
	Params   map[string]string `yaml:"params"`
}

// ClassifierConfig selects the emotion classifier backend.
type ClassifierConfig struct {
	Provider  string        `yaml:"provider"` // http | openai | anthropic | openai-compatible | lexicon
	Endpoint  string        `yaml:"endpoint"`
	APIKey    string        `yaml:"api_key"`
	Model     string        `yaml:"model"`
	Threshold float64       `yaml:"threshold"`
	Timeout   time.Duration `yaml:"timeout"`
}

type LockConfig struct {
	Driver string        `yaml:"driver"` // local | redis
	TTL    time.Duration `yaml:"ttl"`
}

type TrendConfig struct {
	Mode                  string        `yaml:"mode"` // inline | queue
	ShiftWindow           int           `yaml:"shift_window"`
	PosThreshold          float64       `yaml:"pos_threshold"`
	NegThreshold          float64       `yaml:"neg_threshold"`
	HighThreshold         float64       `yaml:"high_threshold"`
	SadWindowDays         int           `yaml:"sad_window_days"`
	SadMinCount           int           `yaml:"sad_min_count"`
	SadMinRatio           float64       `yaml:"sad_min_ratio"`
	ShiftCooldown         time.Duration `yaml:"shift_cooldown"`
	ReinforcementCooldown time.Duration `yaml:"reinforcement_cooldown"`
	SadnessCooldown       time.Duration `yaml:"sadness_cooldown"`
	InactivityCooldown    time.Duration `yaml:"inactivity_cooldown"`
	ScheduleInterval      time.Duration `yaml:"schedule_interval"`
}

type RecommendationConfig struct {
	Limit int  `yaml:"limit"`
	Seed  bool `yaml:"seed"`
}

type ReminderConfig struct {
	Enable   bool          `yaml:"enable"`
	Interval time.Duration `yaml:"interval"`
}

type TracingConfig struct {
	Enable      bool              `yaml:"enable"`
	Exporter    string            `yaml:"exporter"` // stdout | otlp
	Endpoint    string            `yaml:"endpoint"`
	Insecure    bool              `yaml:"insecure"`
	Headers     map[string]string `yaml:"headers"`
	SampleRatio float64           `yaml:"sample_ratio"`
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
}

// rawAppConfig mirrors AppConfig with pointer fields where zero is a valid
// explicit value and must not be overwritten by a default.
type rawAppConfig struct {
	Port           int                 `yaml:"port"`
	Env            string              `yaml:"env"`
	Timezone       string              `yaml:"timezone"`
	TZ             string              `yaml:"tz"`
	JWTSecret      string              `yaml:"jwt_secret"`
	AllowedOrigins []string            `yaml:"allowed_origins"`
	Paths          RuntimePathsConfig  `yaml:"paths"`
	LogDir         string              `yaml:"log_dir"`
	Database       rawDatabaseConfig   `yaml:"database"`
	Redis          rawRedisConfig      `yaml:"redis"`
	Classifier     rawClassifierConfig `yaml:"classifier"`
	Lock           LockConfig          `yaml:"lock"`
	Trend          TrendConfig         `yaml:"trend"`
	Recommendation rawRecommendation   `yaml:"recommendation"`
	Reminder       rawReminderConfig   `yaml:"reminder"`
	Tracing        rawTracingConfig    `yaml:"tracing"`
}

type rawDatabaseConfig struct {
	Driver     string            `yaml:"driver"`
	DSN        string            `yaml:"dsn"`
	Host       string            `yaml:"host"`
	Port       int               `yaml:"port"`
	User       string            `yaml:"user"`
	Password   string            `yaml:"password"`
	Name       string            `yaml:"name"`
	Charset    string            `yaml:"charset"`
	ParseTime  *bool             `yaml:"parse_time"`
	Loc        string            `yaml:"loc"`
	Params     map[string]string `yaml:"params"`
	SQLitePath string            `yaml:"sqlite_path"`
	MaxRetries *int              `yaml:"max_retries"`
}

type rawRedisConfig struct {
	Enable   *bool             `yaml:"enable"`
	URL      string            `yaml:"url"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	DB       *int              `yaml:"db"`
	TLS      *bool             `yaml:"tls"`
	Scheme   string            `yaml:"scheme"`
	Params   map[string]string `yaml:"params"`
}

type rawClassifierConfig struct {
	Provider  string        `yaml:"provider"`
	Endpoint  string        `yaml:"endpoint"`
	APIKey    string        `yaml:"api_key"`
	Model     string        `yaml:"model"`
	Threshold *float64      `yaml:"threshold"`
	Timeout   time.Duration `yaml:"timeout"`
}

type rawRecommendation struct {
	Limit int   `yaml:"limit"`
	Seed  *bool `yaml:"seed"`
}

type rawReminderConfig struct {
	Enable   *bool         `yaml:"enable"`
	Interval time.Duration `yaml:"interval"`
}

type rawTracingConfig struct {
	Enable      bool              `yaml:"enable"`
	Exporter    string            `yaml:"exporter"`
	Endpoint    string            `yaml:"endpoint"`
	Insecure    bool              `yaml:"insecure"`
	Headers     map[string]string `yaml:"headers"`
	SampleRatio *float64          `yaml:"sample_ratio"`
}

func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}
	cfg.setRoot(path)
	return cfg, nil
}

// Parse decodes YAML content on top of the defaults and validates the result.
func Parse(content []byte) (*AppConfig, error) {
	cfg := Default()
	raw := rawAppConfig{}
	if len(bytes.TrimSpace(content)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
	}

	applyRawAppConfig(&cfg, raw)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when a key is absent from YAML.
func Default() AppConfig {
	cfg := AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			Driver:     defaultDBDriver,
			ParseTime:  true,
			MaxRetries: defaultDBRetries,
		},
		Redis: RedisRuntimeConfig{DB: defaultRedisDB},
		Classifier: ClassifierConfig{
			Provider:  defaultClassifierProvider,
			Endpoint:  defaultClassifierEndpoint,
			Threshold: defaultClassifierThreshold,
			Timeout:   defaultClassifierTimeout,
		},
		Lock: LockConfig{Driver: defaultLockDriver, TTL: defaultLockTTL},
		Trend: TrendConfig{
			Mode:                  defaultTrendMode,
			ShiftWindow:           defaultShiftWindow,
			PosThreshold:          defaultPosThreshold,
			NegThreshold:          defaultNegThreshold,
			HighThreshold:         defaultHighThreshold,
			SadWindowDays:         defaultSadWindowDays,
			SadMinCount:           defaultSadMinCount,
			SadMinRatio:           defaultSadMinRatio,
			ShiftCooldown:         defaultShiftCooldown,
			ReinforcementCooldown: defaultReinforceCooldown,
			SadnessCooldown:       defaultSadnessCooldown,
			InactivityCooldown:    defaultInactivityCooldown,
			ScheduleInterval:      defaultTrendInterval,
		},
		Recommendation: RecommendationConfig{Limit: defaultRecommendationLimit, Seed: true},
		Reminder:       ReminderConfig{Enable: true, Interval: defaultReminderInterval},
		Tracing:        TracingConfig{Exporter: defaultTracingExporter, SampleRatio: defaultSampleRatio},
	}
	cfg.Database = normalizeDatabaseConfig(cfg.Database)
	cfg.Redis = normalizeRedisConfig(cfg.Redis)
	return cfg
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.Timezone); v != "" {
		cfg.Timezone = v
	}
	if v := strings.TrimSpace(raw.TZ); v != "" {
		cfg.Timezone = v
	}
	if v := strings.TrimSpace(raw.JWTSecret); v != "" {
		cfg.JWTSecret = v
	}
	if len(raw.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = raw.AllowedOrigins
	}
	cfg.Paths = raw.Paths
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.Paths.Logs = v
	}

	cfg.Database = applyRawDatabaseConfig(cfg.Database, raw.Database)
	cfg.Redis = applyRawRedisConfig(cfg.Redis, raw.Redis)
	cfg.Classifier = applyRawClassifierConfig(cfg.Classifier, raw.Classifier)
	cfg.Lock = mergeLockConfig(cfg.Lock, raw.Lock)
	cfg.Trend = mergeTrendConfig(cfg.Trend, raw.Trend)

	if raw.Recommendation.Limit > 0 {
		cfg.Recommendation.Limit = raw.Recommendation.Limit
	}
	if raw.Recommendation.Seed != nil {
		cfg.Recommendation.Seed = *raw.Recommendation.Seed
	}
	if raw.Reminder.Enable != nil {
		cfg.Reminder.Enable = *raw.Reminder.Enable
	}
	if raw.Reminder.Interval > 0 {
		cfg.Reminder.Interval = raw.Reminder.Interval
	}

	cfg.Tracing.Enable = raw.Tracing.Enable
	cfg.Tracing.Insecure = raw.Tracing.Insecure
	cfg.Tracing.Endpoint = strings.TrimSpace(raw.Tracing.Endpoint)
	cfg.Tracing.Headers = copyStringMap(raw.Tracing.Headers)
	if v := strings.ToLower(strings.TrimSpace(raw.Tracing.Exporter)); v != "" {
		cfg.Tracing.Exporter = v
	}
	if raw.Tracing.SampleRatio != nil {
		cfg.Tracing.SampleRatio = *raw.Tracing.SampleRatio
	}

	cfg.Env = normalizeEnv(cfg.Env)
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	cfg.Paths = normalizeRuntimePaths(cfg.Paths)
	cfg.Database = normalizeDatabaseConfig(cfg.Database)
	cfg.Redis = normalizeRedisConfig(cfg.Redis)
	cfg.Classifier = normalizeClassifierConfig(cfg.Classifier)
	cfg.Lock.Driver = strings.ToLower(strings.TrimSpace(cfg.Lock.Driver))
	cfg.Trend.Mode = strings.ToLower(strings.TrimSpace(cfg.Trend.Mode))
}

func applyRawDatabaseConfig(current DatabaseRuntimeConfig, raw rawDatabaseConfig) DatabaseRuntimeConfig {
	if v := strings.TrimSpace(raw.Driver); v != "" {
		current.Driver = v
	}
	if v := strings.TrimSpace(raw.DSN); v != "" {
		current.DSN = v
	}
	if v := strings.TrimSpace(raw.Host); v != "" {
		current.Host = v
	}
	if raw.Port != 0 {
		current.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.User); v != "" {
		current.User = v
	}
	if v := strings.TrimSpace(raw.Password); v != "" {
		current.Password = v
	}
	if v := strings.TrimSpace(raw.Name); v != "" {
		current.Name = v
	}
	if v := strings.TrimSpace(raw.Charset); v != "" {
		current.Charset = v
	}
	if raw.ParseTime != nil {
		current.ParseTime = *raw.ParseTime
	}
	if v := strings.TrimSpace(raw.Loc); v != "" {
		current.Loc = v
	}
	if raw.Params != nil {
		current.Params = raw.Params
	}
	if v := strings.TrimSpace(raw.SQLitePath); v != "" {
		current.SQLitePath = v
	}
	if raw.MaxRetries != nil {
		current.MaxRetries = *raw.MaxRetries
	}
	return current
}

func applyRawRedisConfig(current RedisRuntimeConfig, raw rawRedisConfig) RedisRuntimeConfig {
	if raw.Enable != nil {
		current.Enable = *raw.Enable
	}
	if v := strings.TrimSpace(raw.URL); v != "" {
		current.URL = v
		if raw.Enable == nil {
			current.Enable = true
		}
	}
	if v := strings.TrimSpace(raw.Host); v != "" {
		current.Host = v
	}
	if raw.Port != 0 {
		current.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Username); v != "" {
		current.Username = v
	}
	if v := strings.TrimSpace(raw.Password); v != "" {
		current.Password = v
	}
	if raw.DB != nil {
		current.DB = *raw.DB
	}
	if raw.TLS != nil {
		current.TLS = *raw.TLS
	}
	if v := strings.TrimSpace(raw.Scheme); v != "" {
		current.Scheme = v
	}
	if raw.Params != nil {
		current.Params = raw.Params
	}
	return current
}

func applyRawClassifierConfig(current ClassifierConfig, raw rawClassifierConfig) ClassifierConfig {
	if v := strings.TrimSpace(raw.Provider); v != "" {
		current.Provider = v
	}
	if v := strings.TrimSpace(raw.Endpoint); v != "" {
		current.Endpoint = v
	}
	if v := strings.TrimSpace(raw.APIKey); v != "" {
		current.APIKey = v
	}
	if v := strings.TrimSpace(raw.Model); v != "" {
		current.Model = v
	}
	if raw.Threshold != nil {
		current.Threshold = *raw.Threshold
	}
	if raw.Timeout > 0 {
		current.Timeout = raw.Timeout
	}
	return current
}

func mergeLockConfig(current, raw LockConfig) LockConfig {
	if v := strings.TrimSpace(raw.Driver); v != "" {
		current.Driver = v
	}
	if raw.TTL > 0 {
		current.TTL = raw.TTL
	}
	return current
}

func mergeTrendConfig(current, raw TrendConfig) TrendConfig {
	if v := strings.TrimSpace(raw.Mode); v != "" {
		current.Mode = v
	}
	if raw.ShiftWindow > 0 {
		current.ShiftWindow = raw.ShiftWindow
	}
	if raw.PosThreshold > 0 {
		current.PosThreshold = raw.PosThreshold
	}
	if raw.NegThreshold > 0 {
		current.NegThreshold = raw.NegThreshold
	}
	if raw.HighThreshold > 0 {
		current.HighThreshold = raw.HighThreshold
	}
	if raw.SadWindowDays > 0 {
		current.SadWindowDays = raw.SadWindowDays
	}
	if raw.SadMinCount > 0 {
		current.SadMinCount = raw.SadMinCount
	}
	if raw.SadMinRatio > 0 {
		current.SadMinRatio = raw.SadMinRatio
	}
	if raw.ShiftCooldown > 0 {
		current.ShiftCooldown = raw.ShiftCooldown
	}
	if raw.ReinforcementCooldown > 0 {
		current.ReinforcementCooldown = raw.ReinforcementCooldown
	}
	if raw.SadnessCooldown > 0 {
		current.SadnessCooldown = raw.SadnessCooldown
	}
	if raw.InactivityCooldown > 0 {
		current.InactivityCooldown = raw.InactivityCooldown
	}
	if raw.ScheduleInterval > 0 {
		current.ScheduleInterval = raw.ScheduleInterval
	}
	return current
}

func (c *AppConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	switch c.Database.Driver {
	case "mysql":
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("invalid database.port %d, expected 1-65535", c.Database.Port)
		}
	case "sqlite":
	default:
		return fmt.Errorf("invalid database.driver %q, expected mysql or sqlite", c.Database.Driver)
	}
	if c.Database.MaxRetries < 0 {
		return fmt.Errorf("invalid database.max_retries %d, expected >= 0", c.Database.MaxRetries)
	}
	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		return fmt.Errorf("invalid redis.port %d, expected 1-65535", c.Redis.Port)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("invalid redis.db %d, expected >= 0", c.Redis.DB)
	}
	if c.Classifier.Threshold < 0 || c.Classifier.Threshold > 1 {
		return fmt.Errorf("invalid classifier.threshold %v, expected 0-1", c.Classifier.Threshold)
	}
	switch c.Lock.Driver {
	case "local":
	case "redis":
		if !c.Redis.Enable {
			return fmt.Errorf("lock.driver redis requires redis.enable")
		}
	default:
		return fmt.Errorf("invalid lock.driver %q, expected local or redis", c.Lock.Driver)
	}
	switch c.Trend.Mode {
	case "inline":
	case "queue":
		if !c.Redis.Enable {
			return fmt.Errorf("trend.mode queue requires redis.enable")
		}
	default:
		return fmt.Errorf("invalid trend.mode %q, expected inline or queue", c.Trend.Mode)
	}
	if c.Trend.HighThreshold < c.Trend.NegThreshold {
		return fmt.Errorf("trend.high_threshold %v must not be below trend.neg_threshold %v", c.Trend.HighThreshold, c.Trend.NegThreshold)
	}
	if c.Trend.SadMinRatio > 1 {
		return fmt.Errorf("invalid trend.sad_min_ratio %v, expected 0-1", c.Trend.SadMinRatio)
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

func (c *AppConfig) LogDir() string {
	if c == nil {
		return runtimePath("", "", "logs")
	}
	return runtimePath(c.root, c.Paths.Logs, "logs")
}
