package db

import (
	"context"
	"time"
)

// TokenProvider abstracts cloud token acquisition for database
// authentication. The acquired token is used as the password when connecting
// to cloud-hosted PostgreSQL. Mock providers stand in during tests.
type TokenProvider interface {
	// GetToken acquires an auth token and reports when it expires.
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String returns a human-readable description for logging.
	// Must not include secrets.
	String() string
}

// AzurePostgreSQLScope is the OAuth scope for Azure Database for PostgreSQL.
const AzurePostgreSQLScope = "https://ossrdbms-aad.database.windows.net/.default"
