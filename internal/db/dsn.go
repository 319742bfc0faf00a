package db

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mkravets/dicthub/pkg/dicthub"
)

// ParseDSN parses a PostgreSQL URI into a ConnectionConfig.
//
// Format: postgresql://[user[:password]@][host][:port][/dbname][?param=value&...]
// Recognized query parameters are sslmode, application_name and
// connect_timeout; anything else is rejected so a typo does not silently
// change connection behavior.
func ParseDSN(dsn string) (*dicthub.ConnectionConfig, error) {
	if !strings.HasPrefix(dsn, "postgresql://") && !strings.HasPrefix(dsn, "postgres://") {
		return nil, fmt.Errorf("unrecognized connection string, expected postgresql:// URI")
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid PostgreSQL URI: %w", err)
	}

	config := &dicthub.ConnectionConfig{
		Host:       "localhost",
		Port:       5432,
		Database:   "postgres",
		SSLMode:    "prefer",
		AuthMethod: dicthub.AuthMethodStandard,
	}

	if u.Hostname() != "" {
		config.Host = u.Hostname()
	}
	if u.Port() != "" {
		port, err := strconv.Atoi(u.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid port: %w", err)
		}
		config.Port = port
	}
	if u.User != nil {
		config.Username = u.User.Username()
		if pass, ok := u.User.Password(); ok {
			config.Password = pass
		}
	}
	if len(u.Path) > 1 {
		config.Database = strings.TrimPrefix(u.Path, "/")
	}

	for key, values := range u.Query() {
		if len(values) == 0 {
			continue
		}
		value := values[0]
		switch strings.ToLower(key) {
		case "sslmode":
			config.SSLMode = value
		case "application_name":
			config.AppName = value
		case "connect_timeout":
			timeout, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid connect_timeout: %w", err)
			}
			config.ConnectTimeout = time.Duration(timeout) * time.Second
		default:
			return nil, fmt.Errorf("unsupported connection parameter %q", key)
		}
	}

	return config, nil
}

// BuildConnectionString converts a ConnectionConfig to a PostgreSQL URI
// accepted by pgx.
func BuildConnectionString(config *dicthub.ConnectionConfig) string {
	u := &url.URL{
		Scheme: "postgresql",
		Host:   fmt.Sprintf("%s:%d", config.Host, config.Port),
		Path:   "/" + config.Database,
	}

	if config.Username != "" {
		if config.Password != "" {
			u.User = url.UserPassword(config.Username, config.Password)
		} else {
			u.User = url.User(config.Username)
		}
	}

	query := url.Values{}
	if config.SSLMode != "" {
		query.Set("sslmode", config.SSLMode)
	}
	if config.AppName != "" {
		query.Set("application_name", config.AppName)
	}
	if config.ConnectTimeout > 0 {
		query.Set("connect_timeout", strconv.Itoa(int(config.ConnectTimeout.Seconds())))
	}

	u.RawQuery = query.Encode()
	return u.String()
}
