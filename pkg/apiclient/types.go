package apiclient

import (
	"bytes"
	"encoding/json"
)

// ID is a backend identifier. The API returns ids as numbers or strings depending on the
// table they come from; both decode to the same textual form.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// String returns the id text.
func (id ID) String() string { return string(id) }

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	GivenName string `json:"givenName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// ConfirmRequest is the body of POST /api/confirm.
type ConfirmRequest struct {
	Email            string `json:"email"`
	ConfirmationCode string `json:"confirmationCode"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MessageResponse is returned by register and confirm. The body may be empty.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// ChatRequest is the body of POST /api/chatbot.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the bot reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// CampaignSummary is one row of the campaign table.
type CampaignSummary struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	Clicks    int    `json:"clicks"`
}

// Stats is the dashboard overview returned by GET /api/phish/stats.
type Stats struct {
	TotalCampaigns int               `json:"total_campaigns"`
	TotalClicks    int               `json:"total_clicks"`
	UniqueVictims  int               `json:"unique_victims"`
	Campaigns      []CampaignSummary `json:"campaigns"`
}

// CampaignInfo identifies a campaign in the detail view. Since and Until bound the
// period covered by the stats and may be empty.
type CampaignInfo struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Since string `json:"since"`
	Until string `json:"until"`
}

// CampaignStats are the per-campaign counters.
type CampaignStats struct {
	TotalClicks int `json:"total_clicks"`
	UniqueUsers int `json:"unique_users"`
	UniqueIPs   int `json:"unique_ips"`
}

// TimelinePoint is the click count of one day.
type TimelinePoint struct {
	Date   string `json:"date"`
	Clicks int    `json:"clicks"`
}

// CampaignDetail is returned by GET /api/phish/stats?campaign_id=ID.
type CampaignDetail struct {
	Campaign CampaignInfo    `json:"campaign"`
	Stats    CampaignStats   `json:"stats"`
	Timeline []TimelinePoint `json:"timeline"`
}

// GenerateRequest is the body of POST /api/phish/generate. Empty optional fields are omitted.
type GenerateRequest struct {
	CampaignName string   `json:"campaign_name,omitempty"`
	Description  string   `json:"description,omitempty"`
	TargetURL    string   `json:"target_url,omitempty"`
	Emails       []string `json:"emails"`
}

// GeneratedLink is one tracking link.
type GeneratedLink struct {
	Email string `json:"email"`
	Link  string `json:"link"`
	Hash  string `json:"hash"`
}

// GenerateResponse lists the links created for a new campaign.
type GenerateResponse struct {
	CampaignID ID              `json:"campaign_id"`
	Links      []GeneratedLink `json:"links"`
	ExpiresAt  string          `json:"expires_at"`
}
