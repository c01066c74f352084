package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2333
	defaultEnv        = "development"

	defaultDBDriver   = "mysql"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "serenity"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultSQLitePath = "serenity.db"
	defaultDBRetries  = 3

	defaultRedisHost = "localhost"
	defaultRedisPort = 6379
	defaultRedisDB   = 0

	defaultClassifierProvider = "http"
	defaultClassifierEndpoint = "http://127.0.0.1:8500"
	defaultClassifierTimeout  = 10 * time.Second
	// GoEmotions-style classifiers report every label; anything at or below
	// this confidence is noise.
	defaultClassifierThreshold = 0.1

	defaultLockDriver = "local"
	defaultLockTTL    = 30 * time.Second

	defaultShiftWindow        = 4
	defaultPosThreshold       = 0.3
	defaultNegThreshold       = 0.3
	defaultHighThreshold      = 0.6
	defaultSadWindowDays      = 7
	defaultSadMinCount        = 3
	defaultSadMinRatio        = 0.6
	defaultShiftCooldown      = 12 * time.Hour
	defaultReinforceCooldown  = 24 * time.Hour
	defaultSadnessCooldown    = 72 * time.Hour
	defaultInactivityCooldown = 24 * time.Hour
	defaultTrendMode          = "inline"
	defaultTrendInterval      = 6 * time.Hour

	defaultRecommendationLimit = 3
	defaultReminderInterval    = 24 * time.Hour

	defaultTracingExporter = "stdout"
	defaultSampleRatio     = 0.1
)
