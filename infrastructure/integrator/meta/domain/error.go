package metadomain

import "strings"

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// IsTokenExpired verifica se o erro é de token expirado ou inválido
func (e *ErrorResponse) IsTokenExpired() bool {
	// O código 190 representa "token expirado" nas respostas da API do Meta
	// Possíveis subcódigos relacionados a problemas de token: 460, 463, 467
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// IsResourceGone indica objeto removido ou inexistente (code 100, subcode 33)
func (e *ErrorResponse) IsResourceGone() bool {
	return e.Error.Code == 100 &&
		(e.Error.ErrorSubcode == 33 || strings.Contains(strings.ToLower(e.Error.Message), "does not exist"))
}

// IsPermissionDenied indica que o usuário perdeu acesso ao objeto
func (e *ErrorResponse) IsPermissionDenied() bool {
	switch e.Error.Code {
	case 10, 200, 294:
		return true
	}
	return false
}

// IsRateLimited cobre os limites de aplicação, usuário e conta de anúncios
func (e *ErrorResponse) IsRateLimited() bool {
	switch e.Error.Code {
	case 4, 17, 32, 613, 80004:
		return true
	}
	return false
}
