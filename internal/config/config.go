// Package config persists the device settings as a flat JSON record
// (vision_config.json). A missing or corrupt file is never fatal: defaults
// are substituted and the record rewritten. Keys the program does not know
// about are preserved across rewrites.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// DefaultFile is the config filename next to the binary.
const DefaultFile = "vision_config.json"

// Values is the persisted settings record.
type Values struct {
	ScreenWidth       int    `json:"screen_width"`
	ScreenHeight      int    `json:"screen_height"`
	ScreenDPI         int    `json:"screen_dpi"`
	ViewingDistanceCm int    `json:"viewing_distance_cm"`
	CurrentTest       string `json:"current_test"`
	Brightness        int    `json:"brightness"`
	Contrast          int    `json:"contrast"`
	Language          string `json:"language"`
	Orientation       string `json:"orientation"`
	RemoteControl     string `json:"remote_control"`
	IRPin             int    `json:"ir_pin"`
	BluetoothPort     int    `json:"bluetooth_port"`
}

// Defaults returns the factory settings.
func Defaults() Values {
	return Values{
		ScreenWidth:       800,
		ScreenHeight:      480,
		ScreenDPI:         96,
		ViewingDistanceCm: 300,
		CurrentTest:       "snellen",
		Brightness:        100,
		Contrast:          50,
		Language:          "english",
		Orientation:       "landscape",
		RemoteControl:     "web",
		IRPin:             23,
		BluetoothPort:     1,
	}
}

// Instance is a loaded config file. It keeps the raw record around so
// unknown keys survive a save.
type Instance struct {
	mu    sync.Mutex
	path  string
	vals  Values
	extra map[string]json.RawMessage
}

// Load reads the config record at path. Missing or corrupt files yield
// the defaults and the record is rewritten immediately, so a fresh device
// boots with a valid file on disk.
func Load(path string) *Instance {
	inst := &Instance{
		path:  path,
		vals:  Defaults(),
		extra: map[string]json.RawMessage{},
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("config unreadable, using defaults")
		}
		inst.rewrite()
		return inst
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config corrupt, using defaults")
		inst.rewrite()
		return inst
	}

	// Known keys overlay the defaults; everything else is carried along.
	if err := json.Unmarshal(data, &inst.vals); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config values malformed, using defaults")
		inst.vals = Defaults()
	}
	known := knownKeys()
	for k, v := range raw {
		if !known[k] {
			inst.extra[k] = v
		}
	}
	return inst
}

// Values returns a copy of the current settings.
func (i *Instance) Values() Values {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.vals
}

// Update replaces the settings and writes the record to disk. Write
// failures are logged, not propagated: losing a settings write must not
// take the display down.
func (i *Instance) Update(vals Values) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.vals = vals
	i.writeLocked()
}

func (i *Instance) rewrite() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.writeLocked()
}

func (i *Instance) writeLocked() {
	record := map[string]json.RawMessage{}
	for k, v := range i.extra {
		record[k] = v
	}

	vals, err := json.Marshal(i.vals)
	if err != nil {
		log.Error().Err(err).Msg("marshal config values")
		return
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(vals, &known); err != nil {
		log.Error().Err(err).Msg("remarshal config values")
		return
	}
	for k, v := range known {
		record[k] = v
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("marshal config record")
		return
	}
	if err := os.WriteFile(i.path, append(data, '\n'), 0o644); err != nil { //nolint:gosec // settings file, not a secret
		log.Error().Err(err).Str("path", i.path).Msg("write config")
	}
}

func knownKeys() map[string]bool {
	data, err := json.Marshal(Defaults())
	if err != nil {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	keys := make(map[string]bool, len(m))
	for k := range m {
		keys[k] = true
	}
	return keys
}

// Geometry returns the effective display dimensions after applying the
// orientation setting: portrait swaps width and height.
func (v Values) Geometry() (width, height int) {
	if v.Orientation == "portrait" {
		return v.ScreenHeight, v.ScreenWidth
	}
	return v.ScreenWidth, v.ScreenHeight
}

// TransportEnabled reports whether the remote_control setting enables the
// named transport. The value is a comma-separated list of transport names
// ("web", "bluetooth", "ir"), or "all", or "none".
func (v Values) TransportEnabled(name string) bool {
	switch v.RemoteControl {
	case "", "none":
		return false
	case "all":
		return true
	}
	for _, tok := range strings.Split(v.RemoteControl, ",") {
		if strings.TrimSpace(tok) == name {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer for log output.
func (v Values) String() string {
	return fmt.Sprintf("%dx%d %s test=%s dist=%dcm lang=%s",
		v.ScreenWidth, v.ScreenHeight, v.Orientation, v.CurrentTest, v.ViewingDistanceCm, v.Language)
}
