package database

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/evidentia/opshub/internal/model"
)

func getTestManager(t *testing.T) *Manager {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	mm := New(db)
	require.NoError(t, mm.Migrate())

	return mm
}

func TestWriteRadio(t *testing.T) {
	mm := getTestManager(t)

	lat := 1.0
	lng := 2.0

	require.NoError(t, mm.WriteRadio(&model.RadioLog{Sender: "Unit1", Message: "10-4", Lat: &lat, Lng: &lng}))
	require.NoError(t, mm.WriteRadio(&model.RadioLog{Sender: "Unit2", Message: model.VoicePlaceholder, IsVoice: true, AudioData: "blob"}))

	res := mm.RadioQuery().Order("id").Get()
	require.Len(t, res, 2)

	assert.Equal(t, "Unit1", res[0].Sender)
	assert.Equal(t, "10-4", res[0].Message)
	assert.False(t, res[0].IsVoice)
	require.NotNil(t, res[0].Lat)
	assert.InDelta(t, 1.0, *res[0].Lat, 0.0001)

	assert.True(t, res[1].IsVoice)
	assert.Equal(t, model.VoicePlaceholder, res[1].Message)
	assert.Equal(t, "blob", res[1].AudioData)
}

func TestRadioQueryFilters(t *testing.T) {
	mm := getTestManager(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, mm.WriteRadio(&model.RadioLog{Sender: "Unit1", Message: "text"}))
	}

	require.NoError(t, mm.WriteRadio(&model.RadioLog{Sender: "Unit2", Message: model.VoicePlaceholder, IsVoice: true}))

	assert.EqualValues(t, 4, mm.RadioQuery().Count())
	assert.EqualValues(t, 3, mm.RadioQuery().Sender("Unit1").Count())
	assert.EqualValues(t, 1, mm.RadioQuery().Voice(true).Count())
	assert.EqualValues(t, 3, mm.RadioQuery().Voice(false).Count())

	res := mm.RadioQuery().Sender("Unit1").Limit(2).Get()
	assert.Len(t, res, 2)

	one := mm.RadioQuery().Voice(true).One()
	require.NotNil(t, one)
	assert.Equal(t, "Unit2", one.Sender)

	assert.Nil(t, mm.RadioQuery().Sender("nobody").One())
}

func TestNilManager(t *testing.T) {
	var mm *Manager

	assert.NoError(t, mm.WriteRadio(&model.RadioLog{Sender: "Unit1"}))
	assert.Error(t, mm.Migrate())
}
