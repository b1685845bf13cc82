package auth

import "errors"

var (
	// ErrNoCredentials indicates a provider has nothing to offer.
	ErrNoCredentials = errors.New("no credentials available")

	// ErrRecordNotFound indicates the named record does not exist.
	ErrRecordNotFound = errors.New("credential record not found")
)
