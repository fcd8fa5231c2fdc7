package googledomain

// ErrorResponse é o envelope de erro das APIs do Google Ads
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// OAuthErrorResponse é o formato de erro do endpoint de token OAuth2
type OAuthErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
