package domain

import (
	"errors"
	"fmt"
)

type ProviderErrorKind string

const (
	ProviderErrorAuthorization ProviderErrorKind = "authorization"
	ProviderErrorAccessRevoked ProviderErrorKind = "access_revoked"
	ProviderErrorResourceGone  ProviderErrorKind = "resource_gone"
	ProviderErrorRateLimited   ProviderErrorKind = "rate_limited"
	ProviderErrorTransient     ProviderErrorKind = "transient"
)

// ProviderError normaliza as falhas do Meta e do Google em uma única taxonomia
type ProviderError struct {
	Provider   Provider
	Kind       ProviderErrorKind
	Code       int
	Subcode    int
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s %s error (code %d): %s", e.Provider, e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s error (status %d): %s", e.Provider, e.Kind, e.StatusCode, e.Message)
}

func providerErrorKind(err error) (ProviderErrorKind, bool) {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Kind, true
	}
	return "", false
}

func IsAuthorizationError(err error) bool {
	kind, ok := providerErrorKind(err)
	return ok && kind == ProviderErrorAuthorization
}

func IsAccessRevoked(err error) bool {
	kind, ok := providerErrorKind(err)
	return ok && kind == ProviderErrorAccessRevoked
}

func IsResourceGone(err error) bool {
	kind, ok := providerErrorKind(err)
	return ok && kind == ProviderErrorResourceGone
}

func IsRateLimited(err error) bool {
	kind, ok := providerErrorKind(err)
	return ok && kind == ProviderErrorRateLimited
}
