package syncing

import "errors"

var (
	ErrIntegrationNotFound = errors.New("integration not found")
	ErrAccountNotFound     = errors.New("ad account not found for integration")
	ErrProviderMismatch    = errors.New("integration does not belong to the requested provider")
	ErrIntegrationInactive = errors.New("integration is not active, reconnect the account")
	ErrSessionExpired      = errors.New("provider session expired, reconnect the account")
	ErrUnsupportedProvider = errors.New("provider not supported")
)
