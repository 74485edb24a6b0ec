package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchMerge(t *testing.T) {
	u := NewUnit("c1", map[string]any{"name": "Unit1", "status": "patrol"})

	u.Patch(map[string]any{"lat": 1.0, "lng": 2.0})

	assert.Equal(t, "Unit1", u.GetName())
	assert.Equal(t, "patrol", u.GetStatus())

	lat, lng, ok := u.GetCoords()
	require.True(t, ok)
	assert.InDelta(t, 1.0, lat, 0.0001)
	assert.InDelta(t, 2.0, lng, 0.0001)

	u.Patch(map[string]any{"status": "responding"})

	assert.Equal(t, "responding", u.GetStatus())
	assert.Equal(t, "Unit1", u.GetName())

	_, _, ok = u.GetCoords()
	assert.True(t, ok)
}

func TestPatchExtraFields(t *testing.T) {
	u := NewUnit("c1", map[string]any{"name": "Unit1", "team": "alpha", "role": "medic", "badge": "E-42"})

	w := u.ToWeb()

	assert.Equal(t, "alpha", w.Team)
	assert.Equal(t, "medic", w.Role)
	require.Contains(t, w.Extra, "badge")
	assert.Equal(t, "E-42", w.Extra["badge"])
}

func TestCoordsOptionalUntilFirstUpdate(t *testing.T) {
	u := NewUnit("c1", map[string]any{"name": "Unit1"})

	_, _, ok := u.GetCoords()
	assert.False(t, ok)

	w := u.ToWeb()
	assert.Nil(t, w.Lat)
	assert.Nil(t, w.Lng)
}

func TestPatchNumericTypes(t *testing.T) {
	u := NewUnit("c1", map[string]any{"lat": 10, "lng": float32(20)})

	lat, lng, ok := u.GetCoords()
	require.True(t, ok)
	assert.InDelta(t, 10.0, lat, 0.0001)
	assert.InDelta(t, 20.0, lng, 0.0001)
}

func TestPatchIgnoresBadValues(t *testing.T) {
	u := NewUnit("c1", map[string]any{"name": 42, "lat": "not-a-number"})

	assert.Equal(t, "42", u.GetName())

	_, _, ok := u.GetCoords()
	assert.False(t, ok)
}

func TestWebUnitJSON(t *testing.T) {
	u := NewUnit("c1", map[string]any{"name": "Unit1", "lat": 1.5})

	b, err := json.Marshal(u.ToWeb())
	require.NoError(t, err)

	m := make(map[string]any)
	require.NoError(t, json.Unmarshal(b, &m))

	assert.Equal(t, "c1", m["connection_id"])
	assert.Equal(t, "Unit1", m["name"])
	assert.InDelta(t, 1.5, m["lat"], 0.0001)
	assert.NotContains(t, m, "lng")
	assert.NotContains(t, m, "status")
}

func TestRadioToLog(t *testing.T) {
	lat := 1.0

	text := &RadioMessage{Sender: "Unit1", Message: "10-4", Lat: &lat}
	rec := text.ToLog()
	require.NotNil(t, rec)
	assert.Equal(t, "10-4", rec.Message)
	assert.False(t, rec.IsVoice)
	assert.Empty(t, rec.AudioData)
	require.NotNil(t, rec.Lat)

	voice := &RadioMessage{Sender: "Unit1", Message: "ignored", IsVoice: true, AudioData: "blob"}
	rec = voice.ToLog()
	require.NotNil(t, rec)
	assert.Equal(t, VoicePlaceholder, rec.Message)
	assert.True(t, rec.IsVoice)
	assert.Equal(t, "blob", rec.AudioData)
}
