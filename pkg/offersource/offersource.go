package offersource

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var (
	ErrAuthentication    = errors.New("authentication failed")
	ErrFetch             = errors.New("fetching offerings failed")
	ErrMalformedResponse = errors.New("malformed response")
)

// Credentials identify an account with the provider.
type Credentials struct {
	Username string
	Password string
}

// Tokens are issued once by Authenticate and sent with every fetch. They are
// never refreshed, so a run must finish within their validity.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// VMOffering is one VM configuration offered in a cluster. Numeric and
// boolean fields keep the upstream JSON value as-is.
type VMOffering struct {
	Configuration string
	Cluster       string
	ResourcePool  string
	Type          string
	Price         gjson.Result
	Available     gjson.Result
	Count         gjson.Result
	MaxCount      gjson.Result
}

type OfferingSource interface {
	Name() string
	Authenticate(ctx context.Context, creds Credentials) (Tokens, error)
	GetOfferings(ctx context.Context, cluster string, tokens Tokens) ([]VMOffering, error)
}

// GetOfferingSource returns the source for provider, or an error if the
// provider is unknown.
func GetOfferingSource(provider, baseURL, resourcePool string) (OfferingSource, error) {
	switch strings.ToLower(provider) {
	case "", "denvr":
		return NewDenvrOfferingSource(baseURL, resourcePool), nil
	}
	return nil, errors.Errorf("provider %s is not supported", provider)
}

// Text renders a JSON value the way it appeared upstream: strings unquoted,
// numbers and booleans verbatim, null or missing as empty.
func Text(value gjson.Result) string {
	switch value.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return value.Str
	default:
		return value.Raw
	}
}
