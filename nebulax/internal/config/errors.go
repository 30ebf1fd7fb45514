package config

import (
	"errors"
	"fmt"
)

var ErrMissingCredential = errors.New("signing credential is not set")

// MissingCredentialError is returned by Resolve when the signing key is absent.
// It is fatal: nothing may be deployed without it.
type MissingCredentialError struct {
	Variable string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s: please set your %s in the .env file or the environment", ErrMissingCredential, e.Variable)
}

func (e *MissingCredentialError) Unwrap() error {
	return ErrMissingCredential
}
