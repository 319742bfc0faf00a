package dicthub

import (
	"errors"
	"fmt"
	"time"
)

// EmitConfig contains all parameters needed to submit records to a
// DataHub metadata service.
type EmitConfig struct {
	// Endpoint is the GMS base URL, e.g. "http://localhost:8080"
	Endpoint string

	// Token is an optional bearer token for authenticated deployments
	Token string

	// RequestsPerSecond caps the batch emission rate.
	// Zero means DefaultEmitRate. This is politeness, not retry.
	RequestsPerSecond int

	// Force bypasses interactive approval (countdown instead of prompt)
	Force bool

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the EmitConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *EmitConfig) Validate() error {
	var errs []error

	if c.Endpoint == "" {
		errs = append(errs, fmt.Errorf("Endpoint is required: %w", ErrInvalidConfig))
	}

	if c.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("RequestsPerSecond cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ConnectionConfig represents parsed connection parameters for an
// introspection source database.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName        string
	ConnectTimeout time.Duration

	// AWSRegion is required for AWS IAM authentication
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance (project:region:instance)
	// required for Google IAM authentication
	GoogleInstance string

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID).
	// If all three are provided, Service Principal authentication is used.
	// If none are provided, DefaultAzureCredential chain is used (env vars, managed identity, CLI, etc.)
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}
