package monitoring

type MonitorResult struct {
	CampaignsChecked int `json:"campaigns_checked"`
	CampaignsSkipped int `json:"campaigns_skipped"`
	CampaignsFailed  int `json:"campaigns_failed"`
	AlertsCreated    int `json:"alerts_created"`
	AlertsUpdated    int `json:"alerts_updated"`
}

func (r *MonitorResult) Details() map[string]any {
	return map[string]any{
		"campaigns_checked": r.CampaignsChecked,
		"campaigns_skipped": r.CampaignsSkipped,
		"campaigns_failed":  r.CampaignsFailed,
		"alerts_created":    r.AlertsCreated,
		"alerts_updated":    r.AlertsUpdated,
	}
}

// campaignCheck é o resultado da avaliação de uma campanha
type campaignCheck struct {
	skipped bool
	created int
	updated int
}
