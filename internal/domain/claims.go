package domain

import "github.com/golang-jwt/jwt/v5"

const (
	RoleServiceRole   = "service_role"
	RoleAuthenticated = "authenticated"
)

// Claims são as informações do chamador extraídas do JWT
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) IsServiceRole() bool {
	return c != nil && c.Role == RoleServiceRole
}

// UserID é o subject do token
func (c *Claims) UserID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}

// CanAccess diz se o chamador pode operar sobre um recurso do usuário informado
func (c *Claims) CanAccess(ownerID string) bool {
	if c.IsServiceRole() {
		return true
	}
	return c != nil && c.Subject != "" && c.Subject == ownerID
}
