package processor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"triage-server/internal/store"
)

// Canonical responder names
const (
	ServiceAmbulance   = "ambulance"
	ServiceFireBrigade = "fire brigade"
	ServicePolice      = "police"
)

var serviceAliases = map[string]string{
	"ambulance":       ServiceAmbulance,
	"ambulances":      ServiceAmbulance,
	"paramedic":       ServiceAmbulance,
	"paramedics":      ServiceAmbulance,
	"ems":             ServiceAmbulance,
	"medical":         ServiceAmbulance,
	"fire brigade":    ServiceFireBrigade,
	"fire department": ServiceFireBrigade,
	"fire service":    ServiceFireBrigade,
	"firefighters":    ServiceFireBrigade,
	"firefighter":     ServiceFireBrigade,
	"fire":            ServiceFireBrigade,
	"police":          ServicePolice,
	"police officer":  ServicePolice,
	"police officers": ServicePolice,
	"law enforcement": ServicePolice,
}

var ticketTypes = map[string]bool{
	store.TicketTypeFire:       true,
	store.TicketTypeEarthquake: true,
	store.TicketTypeFlood:      true,
	store.TicketTypeHurricane:  true,
	store.TicketTypeLandslide:  true,
	store.TicketTypeDisease:    true,
}

// applyFields copies model output onto ticket. Values of the wrong shape are
// coerced where the intent is clear and dropped otherwise.
func applyFields(ticket *store.Ticket, fields map[string]any) {
	ticket.Name = asString(fields["name"])
	ticket.Priority = asPriority(fields["priority"])
	ticket.Summary = asString(fields["summary"])
	ticket.ServicesNeeded = normalizeServices(fields["services_needed"])
	ticket.LifeThreatening = asBool(fields["life_threatening"])
	ticket.TicketType = normalizeTicketType(fields["ticket_type"])
	ticket.SmokeVisibility = asBool(fields["smoke_visibility"])
	ticket.FireVisibility = asBool(fields["fire_visibility"])
	ticket.BreathingIssue = asBool(fields["breathing_issue"])
	ticket.Location = asString(fields["location"])
	ticket.HelpForWhom = normalizeHelpForWhom(fields["help_for_whom"])
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// asPriority accepts 1 through 5 as a number or numeric string. Anything
// else is 0, meaning unknown.
func asPriority(v any) int {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	p := int(math.Round(f))
	if p < 1 || p > 5 {
		return 0
	}
	return p
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "1":
			return true
		}
	}
	return false
}

// normalizeServices maps responder names onto the canonical set, keeping the
// model's order and dropping duplicates and unknown names.
func normalizeServices(v any) []string {
	var raw []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			raw = append(raw, asString(item))
		}
	case string:
		raw = strings.Split(t, ",")
	}

	services := []string{}
	seen := make(map[string]bool)
	for _, name := range raw {
		canonical, ok := serviceAliases[strings.ToLower(strings.TrimSpace(name))]
		if !ok || seen[canonical] {
			continue
		}
		seen[canonical] = true
		services = append(services, canonical)
	}
	return services
}

func normalizeTicketType(v any) string {
	t := strings.ToLower(asString(v))
	if ticketTypes[t] {
		return t
	}
	return ""
}

func normalizeHelpForWhom(v any) string {
	switch s := strings.ToLower(asString(v)); s {
	case "":
		return ""
	case "self", "myself", "me", "caller":
		return "self"
	default:
		return "other"
	}
}
