package domain

import "time"

type Provider string

const (
	ProviderMeta   Provider = "meta"
	ProviderGoogle Provider = "google"
)

// ParseProvider valida o nome do provedor recebido pela API
func ParseProvider(value string) (Provider, bool) {
	switch Provider(value) {
	case ProviderMeta, ProviderGoogle:
		return Provider(value), true
	}
	return "", false
}

type IntegrationStatus string

const (
	IntegrationStatusActive       IntegrationStatus = "active"
	IntegrationStatusExpired      IntegrationStatus = "expired"
	IntegrationStatusError        IntegrationStatus = "error"
	IntegrationStatusDisconnected IntegrationStatus = "disconnected"
)

// Integration representa a conexão OAuth de um usuário com um provedor de anúncios.
// A linha no banco é a única fonte de verdade do token atual.
type Integration struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	Provider     Provider          `json:"provider"`
	AccessToken  string            `json:"-"`
	RefreshToken *string           `json:"-"`
	ExpiresAt    *time.Time        `json:"expires_at"`
	Status       IntegrationStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// NeedsReauthorization indica que só um novo fluxo OAuth pode reativar a integração
func (i *Integration) NeedsReauthorization() bool {
	return i.Status == IntegrationStatusExpired || i.Status == IntegrationStatusDisconnected
}

func (i *Integration) HasRefreshToken() bool {
	return i.RefreshToken != nil && *i.RefreshToken != ""
}

type IntegrationResponse struct {
	ID        string            `json:"id"`
	Provider  Provider          `json:"provider"`
	Status    IntegrationStatus `json:"status"`
	ExpiresAt *time.Time        `json:"expires_at"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (i *Integration) ToResponse() *IntegrationResponse {
	return &IntegrationResponse{
		ID:        i.ID,
		Provider:  i.Provider,
		Status:    i.Status,
		ExpiresAt: i.ExpiresAt,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
