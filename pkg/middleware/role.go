package middleware

import (
	"net/http"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/pkg/apiErrors"
)

// RoleMiddleware restringe o acesso aos papéis informados
func RoleMiddleware(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := ClaimsFromContext(r.Context())
			if !ok {
				logrus.Warn("auth: request without authenticated caller")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if !slices.Contains(allowedRoles, userClaims.Role) {
				logrus.WithFields(logrus.Fields{
					"user_id": userClaims.UserID(),
					"role":    userClaims.Role,
					"path":    r.URL.Path,
				}).Warn("auth: access denied for role")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ServiceRoleOnly libera a rota apenas para chamadas internas (cron, automações)
func ServiceRoleOnly() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleServiceRole)
}

func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleServiceRole, domain.RoleAuthenticated)
}
