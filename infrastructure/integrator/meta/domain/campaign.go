package metadomain

import (
	"strconv"

	"github.com/sirupsen/logrus"
)

type Campaign struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	Objective      string `json:"objective"`
	DailyBudget    string `json:"daily_budget"`
	LifetimeBudget string `json:"lifetime_budget"`
}

type AdSet struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	DailyBudget    string `json:"daily_budget"`
	LifetimeBudget string `json:"lifetime_budget"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next"`
}

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// CampaignInsight é uma linha diária de insights (time_increment=1)
type CampaignInsight struct {
	CampaignID  string   `json:"campaign_id"`
	Actions     []Action `json:"actions"`
	Clicks      string   `json:"clicks"`
	DateStart   string   `json:"date_start"`
	DateStop    string   `json:"date_stop"`
	Impressions string   `json:"impressions"`
	Objective   string   `json:"objective"`
	Reach       string   `json:"reach"`
	Spend       string   `json:"spend"`
}

// GetConversions soma as ações que correspondem ao objetivo da campanha
func (c *CampaignInsight) GetConversions() float64 {
	actionType, ok := MetaObjectiveToActionType[c.Objective]
	if !ok {
		logrus.WithField("objective", c.Objective).Debug("meta: objective not mapped to an action type")
		return 0
	}

	var total float64
	for _, action := range c.Actions {
		if action.ActionType != actionType {
			continue
		}

		value, err := strconv.ParseFloat(action.Value, 64)
		if err != nil {
			logrus.WithError(err).Error("Erro ao converter valor da ação")
			continue
		}
		total += value
	}

	return total
}

// Mapeamento de "objective" -> "action_type"
var MetaObjectiveToActionType = map[string]string{
	"LINK_CLICKS":           "link_click",
	"POST_ENGAGEMENT":       "post_engagement",
	"PAGE_LIKES":            "like",
	"VIDEO_VIEWS":           "video_view",
	"LEAD_GENERATION":       "lead",
	"CONVERSIONS":           "offsite_conversion",
	"APP_INSTALLS":          "app_install",
	"PRODUCT_CATALOG_SALES": "offsite_conversion.fb_pixel_purchase",
	"MESSAGES":              "onsite_conversion.messaging_first_reply",
	"OUTCOME_LEADS":         "lead",
	"OUTCOME_SALES":         "offsite_conversion.fb_pixel_purchase",
	"OUTCOME_TRAFFIC":       "link_click",
	"OUTCOME_ENGAGEMENT":    "onsite_conversion.messaging_conversation_started_7d",
}
