package entity

// AlertEvent is the subset of a CAP-style feed event consumed by the
// pipeline. Events are transient; only the identifier is persisted (as a
// seen-event record) once the event has been evaluated.
type AlertEvent struct {
	Identifier string      `json:"identifier"`
	Info       []AlertInfo `json:"info"`
}

// AlertInfo is one info block of an alert event. Only the first info block
// of an event is consulted.
type AlertInfo struct {
	Headline    string      `json:"headline"`
	Description string      `json:"description"`
	Instruction string      `json:"instruction,omitempty"`
	Effective   string      `json:"effective,omitempty"`
	Expires     string      `json:"expires,omitempty"`
	Area        []AlertArea `json:"area"`
}

// AlertArea is one affected region of an alert, with zero or more polygon
// boundaries. Each polygon string is a whitespace-separated list of
// "lat,lon" pairs forming a closed ring.
type AlertArea struct {
	AreaDesc string   `json:"areaDesc"`
	Polygon  []string `json:"polygon"`
}
