package domain

import "time"

// AdAccount pertence a exatamente uma integração. Chave natural: (integration_id, account_id).
// Contas nunca são apagadas pela sincronização, apenas desativadas.
type AdAccount struct {
	ID            string    `json:"id"`
	IntegrationID string    `json:"integration_id"`
	AccountID     string    `json:"account_id"`
	Name          string    `json:"name"`
	Currency      string    `json:"currency"`
	Timezone      string    `json:"timezone"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
