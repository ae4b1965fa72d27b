package sane

import (
	"os/user"
)

// IdentityProvider supplies the username INIT sends to the daemon.
//
// Factored out per spec §9's "global state" note: the OS user name is
// injectable so tests can pin a deterministic value instead of depending
// on the ambient environment.
type IdentityProvider interface {
	Username() (string, error)
}

// osIdentityProvider reads the current OS user name, the default used
// when no IdentityProvider is supplied to Connect.
type osIdentityProvider struct{}

func (osIdentityProvider) Username() (string, error) {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username, nil
	}
	return "", newErr(KindIO, "could not determine the current OS user name")
}

// StaticIdentity returns an IdentityProvider that always reports name,
// useful for tests and for callers that want a fixed identity regardless
// of the host environment.
func StaticIdentity(name string) IdentityProvider {
	return staticIdentity(name)
}

type staticIdentity string

func (s staticIdentity) Username() (string, error) { return string(s), nil }
