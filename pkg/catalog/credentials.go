package catalog

import (
	"github.com/davidcollom/denvr-catalog/pkg/offersource"
	"github.com/pkg/errors"
)

const (
	UsernameEnv = "DENVR_CLOUD_USER_EMAIL"
	PasswordEnv = "DENVR_CLOUD_PASSWORD"
)

var ErrMissingCredentials = errors.New("Denvr Cloud credentials must be provided via --username/--password or " +
	"through the " + UsernameEnv + " and " + PasswordEnv + " environment variables")

// ResolveCredentials prefers explicit values and falls back to getenv for
// whichever of the two is empty.
func ResolveCredentials(username, password string, getenv func(string) string) (offersource.Credentials, error) {
	if username == "" {
		username = getenv(UsernameEnv)
	}
	if password == "" {
		password = getenv(PasswordEnv)
	}
	if username == "" || password == "" {
		return offersource.Credentials{}, ErrMissingCredentials
	}
	return offersource.Credentials{Username: username, Password: password}, nil
}
