package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/dicthub/internal/logging"
	"github.com/mkravets/dicthub/pkg/dicthub"
)

func TestNewConnector_Standard(t *testing.T) {
	connector, err := NewConnector(&dicthub.ConnectionConfig{AuthMethod: dicthub.AuthMethodStandard}, logging.NewNullLogger())
	require.NoError(t, err)
	assert.IsType(t, &StandardConnector{}, connector)
}

func TestNewConnector_AWSRequiresRegion(t *testing.T) {
	_, err := NewConnector(&dicthub.ConnectionConfig{
		Host:       "mydb.cluster.rds.amazonaws.com",
		Port:       5432,
		Username:   "iam_user",
		AuthMethod: dicthub.AuthMethodAWSIAM,
	}, logging.NewNullLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region")
}

func TestNewConnector_AWS(t *testing.T) {
	connector, err := NewConnector(&dicthub.ConnectionConfig{
		Host:       "mydb.cluster.rds.amazonaws.com",
		Port:       5432,
		Username:   "iam_user",
		AWSRegion:  "us-west-2",
		AuthMethod: dicthub.AuthMethodAWSIAM,
	}, logging.NewNullLogger())
	require.NoError(t, err)
	assert.IsType(t, &TokenBasedConnector{}, connector)
}

func TestNewConnector_GoogleRequiresInstance(t *testing.T) {
	_, err := NewConnector(&dicthub.ConnectionConfig{
		Username:   "iam_user",
		AuthMethod: dicthub.AuthMethodGoogleIAM,
	}, logging.NewNullLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--google-instance")
}

func TestNewConnector_Google(t *testing.T) {
	connector, err := NewConnector(&dicthub.ConnectionConfig{
		Username:       "iam_user",
		GoogleInstance: "proj:region:instance",
		AuthMethod:     dicthub.AuthMethodGoogleIAM,
	}, logging.NewNullLogger())
	require.NoError(t, err)
	assert.IsType(t, &GoogleCloudSQLConnector{}, connector)
}

func TestNewConnector_UnsupportedMethod(t *testing.T) {
	_, err := NewConnector(&dicthub.ConnectionConfig{AuthMethod: dicthub.AuthMethod(99)}, logging.NewNullLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, dicthub.ErrUnsupportedAuthMethod)
}

func TestWrapConnectionError_Classification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		hint string
	}{
		{"refused", errors.New("dial tcp 127.0.0.1:5432: connection refused"), "pg_isready"},
		{"no host", errors.New("lookup dbhost: no such host"), "resolve"},
		{"bad password", errors.New("FATAL: password authentication failed for user"), "PGPASSWORD"},
		{"missing database", errors.New(`FATAL: database "catalog" does not exist`), "does not exist"},
		{"timeout", errors.New("i/o timeout"), "timed out"},
		{"tls", errors.New("tls: handshake failure"), "sslmode"},
		{"other", errors.New("something odd"), "something odd"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := wrapConnectionError(tc.err, "dbhost", 5432, "catalog")
			assert.ErrorIs(t, wrapped, dicthub.ErrConnectionFailed)
			assert.Contains(t, wrapped.Error(), tc.hint)
		})
	}
}

func TestWrapConnectionError_ExitCode(t *testing.T) {
	wrapped := wrapConnectionError(errors.New("connection refused"), "dbhost", 5432, "catalog")
	assert.Equal(t, dicthub.ExitConnectionError, dicthub.ExitCodeForError(wrapped))
}

type failingTokenProvider struct{}

func (failingTokenProvider) GetToken(context.Context) (string, time.Time, error) {
	return "", time.Time{}, fmt.Errorf("credential chain exhausted")
}

func (failingTokenProvider) String() string { return "failingTokenProvider" }

func TestTokenBasedConnector_TokenFailure(t *testing.T) {
	connector := NewTokenBasedConnector(
		&dicthub.ConnectionConfig{Host: "dbhost", Port: 5432, Database: "catalog"},
		failingTokenProvider{},
		"Testing",
	)

	_, err := connector.Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Testing token")
	assert.Contains(t, err.Error(), "credential chain exhausted")
}

type soonExpiringTokenProvider struct{}

func (soonExpiringTokenProvider) GetToken(context.Context) (string, time.Time, error) {
	return "short-lived-token", time.Now().Add(time.Minute), nil
}

func (soonExpiringTokenProvider) String() string { return "soonExpiringTokenProvider" }

type captureLogger struct {
	infos []string
}

func (l *captureLogger) Verbose(format string, args ...interface{}) {}

func (l *captureLogger) Info(format string, args ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *captureLogger) Error(format string, args ...interface{}) {}

func TestTokenBasedConnector_WarnsOnSoonExpiringToken(t *testing.T) {
	logger := &captureLogger{}
	connector := NewTokenBasedConnector(
		// Port 1 is never listening; the connect attempt fails fast after
		// the token has been acquired and checked.
		&dicthub.ConnectionConfig{Host: "127.0.0.1", Port: 1, Database: "catalog", Username: "iam_user", SSLMode: "disable"},
		soonExpiringTokenProvider{},
		"Testing",
	).WithLogger(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := connector.Connect(ctx)
	require.Error(t, err)

	require.NotEmpty(t, logger.infos)
	assert.Contains(t, logger.infos[0], "Testing token expires in")
}

func TestTokenProviderStrings_NoSecrets(t *testing.T) {
	aws, err := NewAWSIAMTokenProvider("db:5432", "us-east-1", "iam_user")
	require.NoError(t, err)
	assert.Contains(t, aws.String(), "us-east-1")

	azure, err := NewAzureServicePrincipalProvider("tenant-id", "client-id", "very-secret")
	require.NoError(t, err)
	assert.NotContains(t, azure.String(), "very-secret")
}
