package store

import "time"

// TicketStatus is the lifecycle state of a ticket
type TicketStatus string

const (
	TicketStatusPending TicketStatus = "pending"
	// TicketStatusUnclassified marks tickets whose transcript could not be
	// classified. Summary then holds the raw transcript.
	TicketStatusUnclassified TicketStatus = "unclassified"
)

// Ticket types accepted from classification
const (
	TicketTypeFire       = "fire"
	TicketTypeEarthquake = "earthquake"
	TicketTypeFlood      = "flood"
	TicketTypeHurricane  = "hurricane"
	TicketTypeLandslide  = "landslide"
	TicketTypeDisease    = "disease"
)

// Ticket is an incident record derived from a call transcript
type Ticket struct {
	TicketID        string       `json:"ticket_id" firestore:"ticket_id"`
	Name            string       `json:"name" firestore:"name"`
	Priority        int          `json:"priority" firestore:"priority"`
	Summary         string       `json:"summary" firestore:"summary"`
	ServicesNeeded  []string     `json:"services_needed" firestore:"services_needed"`
	LifeThreatening bool         `json:"life_threatening" firestore:"life_threatening"`
	TicketType      string       `json:"ticket_type" firestore:"ticket_type"`
	SmokeVisibility bool         `json:"smoke_visibility" firestore:"smoke_visibility"`
	FireVisibility  bool         `json:"fire_visibility" firestore:"fire_visibility"`
	BreathingIssue  bool         `json:"breathing_issue" firestore:"breathing_issue"`
	Location        string       `json:"location" firestore:"location"`
	HelpForWhom     string       `json:"help_for_whom" firestore:"help_for_whom"`
	Datetime        string       `json:"datetime" firestore:"datetime"`
	Status          TicketStatus `json:"status" firestore:"status"`
	CallID          string       `json:"call_id,omitempty" firestore:"call_id,omitempty"`
	StreamSid       string       `json:"stream_sid,omitempty" firestore:"stream_sid,omitempty"`
}

// TweetRecord is one stored tweet classification
type TweetRecord struct {
	ID        string         `json:"id" firestore:"id"`
	TweetText string         `json:"tweet_text" firestore:"tweet_text"`
	MediaFile string         `json:"media_file,omitempty" firestore:"media_file,omitempty"`
	Result    map[string]any `json:"result" firestore:"result"`
	CreatedAt time.Time      `json:"created_at" firestore:"created_at"`
}
