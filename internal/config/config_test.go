package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3, cfg.Database.MaxRetries)
	assert.Equal(t, 0.1, cfg.Classifier.Threshold)
	assert.Equal(t, 10*time.Second, cfg.Classifier.Timeout)
	assert.Equal(t, 12*time.Hour, cfg.Trend.ShiftCooldown)
	assert.Equal(t, 24*time.Hour, cfg.Trend.ReinforcementCooldown)
	assert.Equal(t, 72*time.Hour, cfg.Trend.SadnessCooldown)
	assert.Equal(t, "inline", cfg.Trend.Mode)
	assert.Equal(t, "local", cfg.Lock.Driver)
	assert.Equal(t, 3, cfg.Recommendation.Limit)
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`
port: 8080
env: Production
database:
  driver: sqlite3
  sqlite_path: ":memory:"
  max_retries: 0
redis:
  url: localhost:6380/1
classifier:
  provider: OpenAI_Compatible
  threshold: 0
  timeout: 2s
lock:
  driver: redis
trend:
  mode: queue
  shift_window: 2
  sad_min_count: 4
`))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.SQLiteDSN())
	assert.Equal(t, 0, cfg.Database.MaxRetries)
	assert.True(t, cfg.Redis.Enable)
	assert.Equal(t, "redis://localhost:6380/1", cfg.Redis.URLValue())
	assert.Equal(t, "openai-compatible", cfg.Classifier.Provider)
	assert.Equal(t, 0.0, cfg.Classifier.Threshold)
	assert.Equal(t, 2*time.Second, cfg.Classifier.Timeout)
	assert.Equal(t, 2, cfg.Trend.ShiftWindow)
	assert.Equal(t, 4, cfg.Trend.SadMinCount)
	assert.Equal(t, 0.6, cfg.Trend.SadMinRatio)
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown key":       "bogus: 1\n",
		"bad driver":        "database:\n  driver: postgres\n",
		"threshold":         "classifier:\n  threshold: 1.5\n",
		"redis lock":        "lock:\n  driver: redis\n",
		"queue mode":        "trend:\n  mode: queue\n",
		"high below neg":    "trend:\n  neg_threshold: 0.5\n  high_threshold: 0.4\n",
		"port out of range": "port: 70000\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestDSNValue(t *testing.T) {
	cfg := Default()
	cfg.Database.Params = map[string]string{"timeout": "5s"}
	dsn := cfg.Database.DSNValue()
	assert.Contains(t, dsn, "root:password@tcp(127.0.0.1:3306)/serenity?")
	assert.Contains(t, dsn, "charset=utf8mb4")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "timeout=5s")

	assert.Contains(t, dsn, "loc=Local")

	cfg.Database.DSN = "u:p@tcp(db:3306)/x"
	assert.Equal(t, "u:p@tcp(db:3306)/x", cfg.Database.DSNValue())
}

func TestURLValueFromFields(t *testing.T) {
	cfg := Default()
	cfg.Redis.Host = "cache"
	cfg.Redis.Port = 6390
	cfg.Redis.DB = 2
	cfg.Redis.Password = "pw"
	cfg.Redis.TLS = true
	assert.Equal(t, "rediss://:pw@cache:6390/2", cfg.Redis.URLValue())
}

func TestRelativePathsFollowConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("paths:\n  logs: var/logs\ndatabase:\n  driver: sqlite\n  sqlite_path: data/serenity.db\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "var", "logs"), cfg.LogDir())
	assert.Equal(t, filepath.Join(dir, "data", "serenity.db")+"?"+sqliteParams, cfg.Database.SQLiteDSN())

	abs := filepath.Join(dir, "elsewhere.db")
	cfg.Database.SQLitePath = abs
	assert.Equal(t, abs+"?"+sqliteParams, cfg.Database.SQLiteDSN())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
