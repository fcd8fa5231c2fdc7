package integrating

import (
	"errors"
	"fmt"
)

// Erros específicos para o gerenciamento de integrações
var (
	// Erros de validação
	ErrIntegrationIDRequired = errors.New("integration ID is required")
	ErrCampaignIDRequired    = errors.New("campaign ID is required")

	ErrIntegrationNotFound = errors.New("integration not found")
	ErrCampaignNotFound    = errors.New("campaign not found")

	// Erros de token
	ErrReauthorizationRequired = errors.New("integration requires re-authorization")
	ErrTokenRefreshFailed      = errors.New("failed to refresh integration token")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
)

// IntegrationError é um erro com contexto adicional para integrações
type IntegrationError struct {
	Err           error  // Erro base
	Code          string // Código de erro para API
	IntegrationID string // ID da integração envolvida (quando aplicável)
	Details       string // Detalhes adicionais
}

// Error implementa a interface error
func (e *IntegrationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *IntegrationError) Unwrap() error {
	return e.Err
}

func (e *IntegrationError) ErrorCode() string {
	return e.Code
}

// NewIntegrationError cria um novo IntegrationError
func NewIntegrationError(err error, code string, details string) *IntegrationError {
	return &IntegrationError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewIntegrationErrorWithID cria um novo IntegrationError com ID da integração
func NewIntegrationErrorWithID(err error, code string, integrationID string, details string) *IntegrationError {
	return &IntegrationError{
		Err:           err,
		Code:          code,
		IntegrationID: integrationID,
		Details:       details,
	}
}
