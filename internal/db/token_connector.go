package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkravets/dicthub/pkg/dicthub"
)

// TokenBasedConnector implements the Connector interface for cloud providers
// that authenticate via short-lived tokens (AWS IAM, Azure Entra ID).
// The token is acquired from a TokenProvider and used as the PostgreSQL
// password for a freshly built connection string; the base config is never
// mutated.
type TokenBasedConnector struct {
	config        *dicthub.ConnectionConfig
	tokenProvider TokenProvider
	providerName  string
	logger        dicthub.Logger
}

// NewTokenBasedConnector creates a connector that uses a TokenProvider for
// authentication. providerName appears in error and warning messages
// (e.g. "AWS IAM", "Azure").
func NewTokenBasedConnector(config *dicthub.ConnectionConfig, tokenProvider TokenProvider, providerName string) *TokenBasedConnector {
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		providerName:  providerName,
	}
}

// WithLogger attaches a logger for token expiry warnings.
func (c *TokenBasedConnector) WithLogger(logger dicthub.Logger) *TokenBasedConnector {
	c.logger = logger
	return c
}

func (c *TokenBasedConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	token, expiresOn, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire %s token: %w", c.providerName, err)
	}

	if c.logger != nil && time.Until(expiresOn) < 5*time.Minute {
		c.logger.Info("Warning: %s token expires in %v", c.providerName, time.Until(expiresOn).Round(time.Second))
	}

	configWithToken := *c.config
	configWithToken.Password = token

	return connectPool(ctx, BuildConnectionString(&configWithToken), c.config)
}
