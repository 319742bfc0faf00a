// Package db establishes pgx connections to introspection source databases.
// It supports password authentication plus the IAM token flows of the three
// major clouds; a token, once acquired, is just the PostgreSQL password.
//
// Introspection is a one-shot read of the catalog tables, so connections are
// not retried. A failed connect surfaces immediately with a hint about the
// likely cause.
package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkravets/dicthub/pkg/dicthub"
)

const (
	// DefaultMaxConns stays small: one session reads the catalog, a second
	// covers the liveness ping.
	DefaultMaxConns = 2

	// DefaultMinConns maintains at least one connection in the pool.
	DefaultMinConns = 1

	// DefaultMaxConnIdleTime bounds how long an idle catalog connection
	// lingers before the run exits.
	DefaultMaxConnIdleTime = 5 * time.Minute
)

func configurePool(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
}

// StandardConnector implements the Connector interface for standard
// username/password authentication.
type StandardConnector struct {
	config *dicthub.ConnectionConfig
}

// NewStandardConnector creates a StandardConnector with the given configuration.
func NewStandardConnector(config *dicthub.ConnectionConfig) *StandardConnector {
	return &StandardConnector{config: config}
}

// Connect establishes a connection pool using standard authentication.
func (c *StandardConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	return connectPool(ctx, BuildConnectionString(c.config), c.config)
}

func connectPool(ctx context.Context, connStr string, config *dicthub.ConnectionConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}

	configurePool(poolConfig)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, config.Host, config.Port, config.Database)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, config.Host, config.Port, config.Database)
	}

	return pool, nil
}

// NewConnector is a factory function that creates the appropriate Connector
// based on the ConnectionConfig's AuthMethod. The logger receives token
// expiry warnings from the cloud connectors; pass a NullLogger to silence
// them.
func NewConnector(config *dicthub.ConnectionConfig, logger dicthub.Logger) (dicthub.Connector, error) {
	if !config.AuthMethod.IsValid() {
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, dicthub.ErrUnsupportedAuthMethod)
	}

	switch config.AuthMethod {
	case dicthub.AuthMethodStandard:
		return NewStandardConnector(config), nil
	case dicthub.AuthMethodAWSIAM:
		return newAWSConnector(config, logger)
	case dicthub.AuthMethodGoogleIAM:
		return newGoogleConnector(config)
	default:
		return newAzureConnector(config, logger)
	}
}

// wrapConnectionError tags raw pgx connection errors with the connection
// sentinel and a hint about the likely cause.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf("%w: connection refused to %s (is PostgreSQL running? check: pg_isready -h %s -p %d): %v",
			dicthub.ErrConnectionFailed, addr, host, port, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf("%w: cannot resolve host %q (misspelled hostname or DNS issue): %v",
			dicthub.ErrConnectionFailed, host, err)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf("%w: password authentication failed for database %q (check $PGPASSWORD or ~/.pgpass): %v",
			dicthub.ErrConnectionFailed, database, err)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf("%w: database %q does not exist: %v",
			dicthub.ErrConnectionFailed, database, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf("%w: connection timed out to %s (server unresponsive, or firewall dropping packets): %v",
			dicthub.ErrConnectionFailed, addr, err)

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls"):
		return fmt.Errorf("%w: SSL/TLS connection error (server may require a different --sslmode): %v",
			dicthub.ErrConnectionFailed, err)

	default:
		return fmt.Errorf("%w: %v", dicthub.ErrConnectionFailed, err)
	}
}

// newAWSConnector creates a token-based connector with the AWS IAM token provider.
func newAWSConnector(config *dicthub.ConnectionConfig, logger dicthub.Logger) (dicthub.Connector, error) {
	endpoint := fmt.Sprintf("%s:%d", config.Host, config.Port)

	tokenProvider, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, config.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS IAM token provider: %w", err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "AWS IAM").WithLogger(logger), nil
}

// newGoogleConnector creates a connector for Google Cloud SQL IAM authentication.
func newGoogleConnector(config *dicthub.ConnectionConfig) (dicthub.Connector, error) {
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --google-instance (project:region:instance)")
	}
	if config.Username == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires a username")
	}

	return NewGoogleCloudSQLConnector(config, config.GoogleInstance), nil
}

// newAzureConnector creates a token-based connector with the Azure Entra ID
// token provider. Explicit credentials (tenant, client, secret) select
// Service Principal auth; otherwise the DefaultAzureCredential chain runs.
func newAzureConnector(config *dicthub.ConnectionConfig, logger dicthub.Logger) (dicthub.Connector, error) {
	var tokenProvider TokenProvider
	var err error

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		tokenProvider, err = NewAzureServicePrincipalProvider(
			config.AzureTenantID,
			config.AzureClientID,
			config.AzureClientSecret,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Service Principal provider: %w", err)
		}
	} else {
		tokenProvider, err = NewAzureDefaultCredentialProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Default Credential provider: %w", err)
		}
	}

	return NewTokenBasedConnector(config, tokenProvider, "Azure").WithLogger(logger), nil
}
