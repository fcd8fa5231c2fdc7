package tokenvault

import (
	"errors"
	"fmt"

	"github.com/vfg2006/budget-monitor-api/internal/domain"
)

var (
	ErrIntegrationNotFound     = errors.New("integration not found")
	ErrReauthorizationRequired = errors.New("integration requires re-authorization")
	ErrUnsupportedProvider     = errors.New("no token renewer registered for provider")
	ErrMissingRefreshToken     = errors.New("integration has no refresh token")
)

// RenewalError indica que a renovação falhou e a integração foi marcada como expirada
type RenewalError struct {
	IntegrationID string
	Provider      domain.Provider
	Err           error
}

func (e *RenewalError) Error() string {
	return fmt.Sprintf("token renewal failed for %s integration %s: %v", e.Provider, e.IntegrationID, e.Err)
}

func (e *RenewalError) Unwrap() error {
	return e.Err
}

// NeedsReauthorization agrupa os erros que só um novo fluxo OAuth resolve
func NeedsReauthorization(err error) bool {
	if errors.Is(err, ErrReauthorizationRequired) {
		return true
	}
	var renewalErr *RenewalError
	return errors.As(err, &renewalErr)
}
