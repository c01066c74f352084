package config

import (
	"net"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// sqliteParams makes a writer wait for a lock held by another process (a
// backup, the sqlite3 shell) instead of failing with SQLITE_BUSY.
const sqliteParams = "_busy_timeout=5000"

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func portOr(p, def int) int {
	if p == 0 {
		return def
	}
	return p
}

// DSNValue returns database.dsn verbatim, or formats one from the discrete
// mysql fields through the driver's own config.
func (c DatabaseRuntimeConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	mc := mysql.NewConfig()
	mc.User = orDefault(c.User, defaultDBUser)
	mc.Passwd = orDefault(c.Password, defaultDBPassword)
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(orDefault(c.Host, defaultDBHost), strconv.Itoa(portOr(c.Port, defaultDBPort)))
	mc.DBName = orDefault(c.Name, defaultDBName)
	mc.ParseTime = c.ParseTime
	if loc, err := time.LoadLocation(orDefault(c.Loc, defaultDBLoc)); err == nil {
		mc.Loc = loc
	} else {
		mc.Loc = time.Local
	}

	mc.Params = map[string]string{"charset": orDefault(c.Charset, defaultDBCharset)}
	for k, v := range c.Params {
		if k, v = strings.TrimSpace(k), strings.TrimSpace(v); k != "" && v != "" {
			mc.Params[k] = v
		}
	}
	return mc.FormatDSN()
}

// SQLiteFile returns the resolved database file, or "" when sqlite_path is
// an in-memory or URI name. Relative paths resolve against the config file's
// directory.
func (c DatabaseRuntimeConfig) SQLiteFile() string {
	p := orDefault(c.SQLitePath, defaultSQLitePath)
	if p == ":memory:" || strings.HasPrefix(p, "file:") {
		return ""
	}
	return runtimePath(c.root, p, defaultSQLitePath)
}

// SQLiteDSN returns the sqlite connection string.
func (c DatabaseRuntimeConfig) SQLiteDSN() string {
	if f := c.SQLiteFile(); f != "" {
		return f + "?" + sqliteParams
	}
	return orDefault(c.SQLitePath, defaultSQLitePath)
}

// URLValue returns redis.url, or a redis:// URL assembled from the discrete
// fields. The task queue, rate limiter and owner locks share this client.
func (c RedisRuntimeConfig) URLValue() string {
	if u := normalizeRedisRawURL(c.URL); u != "" {
		return u
	}

	scheme := "redis"
	if c.TLS || strings.EqualFold(c.Scheme, "rediss") {
		scheme = "rediss"
	}
	u := &neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(orDefault(c.Host, defaultRedisHost), strconv.Itoa(portOr(c.Port, defaultRedisPort))),
		Path:   "/" + strconv.Itoa(max(c.DB, 0)),
	}
	if c.Username != "" || c.Password != "" {
		u.User = neturl.UserPassword(c.Username, c.Password)
	}

	q := neturl.Values{}
	for k, v := range c.Params {
		if k, v = strings.TrimSpace(k), strings.TrimSpace(v); k != "" && v != "" {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
