package domain

import "time"

// Metric é uma linha de desempenho diário. Chave natural: (campaign_id, date, ad_id),
// com ad_id vazio para linhas no nível da campanha.
type Metric struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaign_id"`
	AdID        string    `json:"ad_id"`
	Date        time.Time `json:"date"`
	Spend       float64   `json:"spend"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Reach       int64     `json:"reach"`
	Conversions float64   `json:"conversions"`
}

type DateRange struct {
	Since time.Time
	Until time.Time
}

// LastDays monta o intervalo [now-days, now] em datas sem horário
func LastDays(now time.Time, days int) DateRange {
	if days < 1 {
		days = 1
	}
	until := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return DateRange{
		Since: until.AddDate(0, 0, -(days - 1)),
		Until: until,
	}
}
