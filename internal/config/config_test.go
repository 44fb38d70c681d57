package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vision_config.json")
	inst := Load(path)

	assert.Equal(t, Defaults(), inst.Values())

	// A fresh record must exist on disk afterwards.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var record map[string]any
	require.NoError(t, json.Unmarshal(data, &record))
	assert.EqualValues(t, 800, record["screen_width"])
	assert.Equal(t, "snellen", record["current_test"])
}

func TestLoadCorruptFileFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vision_config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	inst := Load(path)
	assert.Equal(t, Defaults(), inst.Values())
}

func TestLoadPartialFileMergesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vision_config.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"viewing_distance_cm": 600, "language": "hindi"}`), 0o644))

	vals := Load(path).Values()
	assert.Equal(t, 600, vals.ViewingDistanceCm)
	assert.Equal(t, "hindi", vals.Language)
	// Missing keys default.
	assert.Equal(t, 800, vals.ScreenWidth)
	assert.Equal(t, "snellen", vals.CurrentTest)
}

func TestUnknownKeysSurviveUpdate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vision_config.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"viewing_distance_cm": 450, "operator_note": "ward 3 kiosk"}`), 0o644))

	inst := Load(path)
	vals := inst.Values()
	vals.Brightness = 60
	inst.Update(vals)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var record map[string]any
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "ward 3 kiosk", record["operator_note"])
	assert.EqualValues(t, 60, record["brightness"])
	assert.EqualValues(t, 450, record["viewing_distance_cm"])
}

func TestGeometryOrientationSwap(t *testing.T) {
	t.Parallel()

	vals := Defaults()
	w, h := vals.Geometry()
	assert.Equal(t, 800, w)
	assert.Equal(t, 480, h)

	vals.Orientation = "portrait"
	w, h = vals.Geometry()
	assert.Equal(t, 480, w)
	assert.Equal(t, 800, h)
}

func TestTransportEnabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setting string
		query   string
		want    bool
	}{
		{name: "default web", setting: "web", query: "web", want: true},
		{name: "default web excludes ir", setting: "web", query: "ir", want: false},
		{name: "all", setting: "all", query: "bluetooth", want: true},
		{name: "none", setting: "none", query: "web", want: false},
		{name: "empty", setting: "", query: "web", want: false},
		{name: "list", setting: "web,ir", query: "ir", want: true},
		{name: "list with spaces", setting: "web, bluetooth", query: "bluetooth", want: true},
		{name: "list excludes", setting: "web,ir", query: "bluetooth", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vals := Defaults()
			vals.RemoteControl = tt.setting
			assert.Equal(t, tt.want, vals.TransportEnabled(tt.query))
		})
	}
}
