// Package credentials resolves the Nexus login and password for a run.
//
// Resolution is linear: an explicit login wins (prompting for the password
// when none is given), then NEXUS_LOGIN/NEXUS_PASSWD from the environment,
// and otherwise the run is anonymous.
package credentials

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/rrf-tools/nexus-cli/util/common/errors"
)

const (
	EnvLogin    = "NEXUS_LOGIN"
	EnvPassword = "NEXUS_PASSWD"
)

// Credentials holds a login/password pair. The zero value means anonymous.
type Credentials struct {
	Login    string
	Password string
}

// Empty reports whether no login is set.
func (c Credentials) Empty() bool {
	return c.Login == ""
}

// String never reveals the password.
func (c Credentials) String() string {
	if c.Empty() {
		return "<anonymous>"
	}
	return c.Login + ":***"
}

// Prompter asks the user for a secret.
type Prompter interface {
	Password(login string) (string, error)
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Resolver resolves credentials from explicit input, the environment and
// an optional interactive prompt.
type Resolver struct {
	Lookup   LookupFunc
	Prompter Prompter
}

// NewResolver returns a Resolver reading the process environment.
func NewResolver(p Prompter) *Resolver {
	return &Resolver{Lookup: os.LookupEnv, Prompter: p}
}

// Resolve applies explicit > environment > anonymous. A NEXUS_LOGIN
// without NEXUS_PASSWD is a configuration error.
func (r *Resolver) Resolve(login, password string) (Credentials, error) {
	if login != "" {
		if password == "" {
			if r.Prompter == nil {
				return Credentials{}, errors.NewConfigError("password",
					"a password is required for login "+login+" but no prompt is available", nil)
			}
			p, err := r.Prompter.Password(login)
			if err != nil {
				return Credentials{}, errors.NewConfigError("password", "error reading password", err)
			}
			password = p
		}
		log.Debug().Str("login", login).Msg("using explicit credentials")
		return Credentials{Login: login, Password: password}, nil
	}

	lookup := r.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	envLogin, ok := lookup(EnvLogin)
	if !ok || envLogin == "" {
		log.Debug().Msg("no credentials supplied, using anonymous access")
		return Credentials{}, nil
	}
	envPassword, ok := lookup(EnvPassword)
	if !ok {
		return Credentials{}, errors.NewConfigError(EnvPassword,
			"env variable is not defined while "+EnvLogin+" is set", nil)
	}
	log.Debug().Str("login", envLogin).Msg("using credentials from environment")
	return Credentials{Login: envLogin, Password: envPassword}, nil
}

// LoadEnvFile loads variables from a dotenv file without overriding
// variables already present in the environment.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.NewConfigError("env-file", "error loading "+path, err)
	}
	log.Debug().Str("path", path).Msg("loaded env file")
	return nil
}
