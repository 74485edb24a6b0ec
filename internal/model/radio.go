package model

import "time"

// VoicePlaceholder is stored in the message column of durable log rows for
// voice transmissions, the raw payload goes to audio_data.
const VoicePlaceholder = "[voice transmission]"

// RadioMessage is one transmission as it travels over the websocket. Voice
// payloads are opaque to the relay and may be large.
type RadioMessage struct {
	Sender    string   `json:"sender"`
	Message   string   `json:"message,omitempty"`
	IsVoice   bool     `json:"is_voice"`
	AudioData string   `json:"audio_data,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
}

// RadioLog is the append-only durable record of a transmission. The relay
// only ever writes it, history reads go through the plain HTTP api.
type RadioLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	Sender    string `gorm:"not null;default:''"`
	Message   string `gorm:"not null;default:''"`
	IsVoice   bool   `gorm:"not null;default:false"`
	AudioData string
	Lat       *float64
	Lng       *float64
}

type RadioLogDTO struct {
	ID        uint      `json:"id"`
	Time      time.Time `json:"time"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	IsVoice   bool      `json:"is_voice"`
	AudioData string    `json:"audio_data,omitempty"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
}

func (m *RadioMessage) ToLog() *RadioLog {
	if m == nil {
		return nil
	}

	rec := &RadioLog{
		Sender:  m.Sender,
		Message: m.Message,
		IsVoice: m.IsVoice,
		Lat:     m.Lat,
		Lng:     m.Lng,
	}

	if m.IsVoice {
		rec.Message = VoicePlaceholder
		rec.AudioData = m.AudioData
	}

	return rec
}

func (r *RadioLog) DTO() *RadioLogDTO {
	if r == nil {
		return nil
	}

	return &RadioLogDTO{
		ID:        r.ID,
		Time:      r.CreatedAt,
		Sender:    r.Sender,
		Message:   r.Message,
		IsVoice:   r.IsVoice,
		AudioData: r.AudioData,
		Lat:       r.Lat,
		Lng:       r.Lng,
	}
}
