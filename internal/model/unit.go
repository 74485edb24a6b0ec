package model

import (
	"fmt"
	"sync"
	"time"
)

// Unit is the live state of one connected field unit. It is keyed by the
// transport connection id, not by anything the unit chooses itself.
type Unit struct {
	mx           sync.RWMutex
	connectionID string
	name         string
	status       string
	team         string
	role         string
	lat          *float64
	lng          *float64
	extra        map[string]any
	joinTime     time.Time
	lastUpdate   time.Time
}

type WebUnit struct {
	ConnectionID string         `json:"connection_id"`
	Name         string         `json:"name,omitempty"`
	Status       string         `json:"status,omitempty"`
	Team         string         `json:"team,omitempty"`
	Role         string         `json:"role,omitempty"`
	Lat          *float64       `json:"lat,omitempty"`
	Lng          *float64       `json:"lng,omitempty"`
	Extra        map[string]any `json:"extra,omitempty"`
	JoinTime     time.Time      `json:"join_time"`
	LastUpdate   time.Time      `json:"last_update"`
}

func NewUnit(connectionID string, fields map[string]any) *Unit {
	u := &Unit{
		connectionID: connectionID,
		joinTime:     time.Now(),
		lastUpdate:   time.Now(),
	}

	u.Patch(fields)

	return u
}

func (u *Unit) String() string {
	u.mx.RLock()
	defer u.mx.RUnlock()

	return fmt.Sprintf("%s: %s (%s)", u.connectionID, u.name, u.status)
}

func (u *Unit) GetConnectionID() string {
	u.mx.RLock()
	defer u.mx.RUnlock()

	return u.connectionID
}

func (u *Unit) GetName() string {
	u.mx.RLock()
	defer u.mx.RUnlock()

	return u.name
}

func (u *Unit) GetStatus() string {
	u.mx.RLock()
	defer u.mx.RUnlock()

	return u.status
}

func (u *Unit) GetCoords() (float64, float64, bool) {
	u.mx.RLock()
	defer u.mx.RUnlock()

	if u.lat == nil || u.lng == nil {
		return 0, 0, false
	}

	return *u.lat, *u.lng, true
}

func (u *Unit) GetLastUpdate() time.Time {
	u.mx.RLock()
	defer u.mx.RUnlock()

	return u.lastUpdate
}

// Patch shallow-merges the supplied fields into the unit. Keys that are
// present overwrite, keys that are absent keep their current value.
func (u *Unit) Patch(fields map[string]any) {
	u.mx.Lock()
	defer u.mx.Unlock()

	for k, v := range fields {
		switch k {
		case "name":
			u.name = asString(v)
		case "status":
			u.status = asString(v)
		case "team":
			u.team = asString(v)
		case "role":
			u.role = asString(v)
		case "lat":
			if f, ok := asFloat(v); ok {
				u.lat = &f
			}
		case "lng":
			if f, ok := asFloat(v); ok {
				u.lng = &f
			}
		default:
			if u.extra == nil {
				u.extra = make(map[string]any)
			}

			u.extra[k] = v
		}
	}

	u.lastUpdate = time.Now()
}

func (u *Unit) ToWeb() *WebUnit {
	u.mx.RLock()
	defer u.mx.RUnlock()

	w := &WebUnit{
		ConnectionID: u.connectionID,
		Name:         u.name,
		Status:       u.status,
		Team:         u.team,
		Role:         u.role,
		Lat:          u.lat,
		Lng:          u.lng,
		JoinTime:     u.joinTime,
		LastUpdate:   u.lastUpdate,
	}

	if len(u.extra) > 0 {
		w.Extra = make(map[string]any, len(u.extra))
		for k, v := range u.extra {
			w.Extra[k] = v
		}
	}

	return w
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", v)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
