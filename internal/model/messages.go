package model

const (
	MsgTypeLogin    = "login"
	MsgTypeLocation = "location"
	MsgTypeRadio    = "radio"
	MsgTypeUnits    = "units"
)

// ClientMessage is what a connected unit sends over the websocket.
type ClientMessage struct {
	Typ   string         `json:"type"`
	Data  map[string]any `json:"data,omitempty"`
	Radio *RadioMessage  `json:"radio,omitempty"`
}

// WebMessage is what the hub pushes to connected sessions.
type WebMessage struct {
	Typ   string        `json:"type"`
	Units []*WebUnit    `json:"units,omitempty"`
	Radio *RadioMessage `json:"radio,omitempty"`
}

func UnitsMessage(units []*WebUnit) *WebMessage {
	return &WebMessage{Typ: MsgTypeUnits, Units: units}
}

func RadioWebMessage(msg *RadioMessage) *WebMessage {
	return &WebMessage{Typ: MsgTypeRadio, Radio: msg}
}
