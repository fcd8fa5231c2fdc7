package googledomain

// Os campos int64 da API REST do Google Ads chegam como string no JSON

type Customer struct {
	ResourceName    string `json:"resourceName"`
	ID              string `json:"id"`
	DescriptiveName string `json:"descriptiveName"`
	CurrencyCode    string `json:"currencyCode"`
	TimeZone        string `json:"timeZone"`
	Status          string `json:"status"`
	Manager         bool   `json:"manager"`
}

type Campaign struct {
	ResourceName           string `json:"resourceName"`
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Status                 string `json:"status"`
	AdvertisingChannelType string `json:"advertisingChannelType"`
}

type CampaignBudget struct {
	ResourceName      string `json:"resourceName"`
	AmountMicros      string `json:"amountMicros"`
	TotalAmountMicros string `json:"totalAmountMicros"`
}

type AdGroup struct {
	ResourceName string `json:"resourceName"`
	ID           string `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	CpcBidMicros string `json:"cpcBidMicros"`
}

type Metrics struct {
	CostMicros  string  `json:"costMicros"`
	Impressions string  `json:"impressions"`
	Clicks      string  `json:"clicks"`
	Conversions float64 `json:"conversions"`
}

type Segments struct {
	Date string `json:"date"`
}

// SearchRow é uma linha de resultado de googleAds:search; só os recursos selecionados vêm preenchidos
type SearchRow struct {
	Customer       *Customer       `json:"customer,omitempty"`
	Campaign       *Campaign       `json:"campaign,omitempty"`
	CampaignBudget *CampaignBudget `json:"campaignBudget,omitempty"`
	AdGroup        *AdGroup        `json:"adGroup,omitempty"`
	Metrics        *Metrics        `json:"metrics,omitempty"`
	Segments       *Segments       `json:"segments,omitempty"`
}

type SearchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
}

type SearchResponse struct {
	Results       []SearchRow `json:"results"`
	NextPageToken string      `json:"nextPageToken"`
}

type ListAccessibleCustomersResponse struct {
	ResourceNames []string `json:"resourceNames"`
}
