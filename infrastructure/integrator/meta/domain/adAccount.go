package metadomain

// AdAccount é a conta retornada por /me/adaccounts. ID vem com o prefixo "act_".
type AdAccount struct {
	ID            string `json:"id"`
	AccountID     string `json:"account_id"`
	Name          string `json:"name"`
	Currency      string `json:"currency"`
	TimezoneName  string `json:"timezone_name"`
	AccountStatus int    `json:"account_status"`
}

// Status 1 = ACTIVE na Marketing API
func (a *AdAccount) IsActive() bool {
	return a.AccountStatus == 1
}
