package main

import (
	"fmt"
	"sync"
)

type controlKey struct {
	group string
	item  string
}

// playerControls is the control set every deck exposes.
var playerControls = []string{
	"play",
	"play_indicator",
	"playposition",
	"duration",
	"volume",
	"pregain",
	"bpm",
	"rate",
	"tempo_ratio",
	"keylock",
	"repeat",
	"loop_enabled",
	"track_loaded",
}

// clampRanges limits what Set will store for a given item, mirroring the
// ranges the audio engine enforces. Items not listed are stored as-is.
var clampRanges = map[string][2]float64{
	"volume":       {0, 1},
	"playposition": {0, 1},
	"pregain":      {0, 4},
	"balance":      {-1, 1},
	"headMix":      {-1, 1},
	"headVolume":   {0, 1},
}

// defaultControlValues overrides the zero default for freshly created
// controls.
var defaultControlValues = map[string]float64{
	"volume":      1,
	"pregain":     1,
	"tempo_ratio": 1,
	"headVolume":  1,
	"headMix":     -1,
}

// EngineState is the in-process stand-in for the audio engine's control store
// and loaded-track table. It implements ControlRegistry and TrackSource and
// is safe for concurrent use.
type EngineState struct {
	mu       sync.RWMutex
	controls map[controlKey]float64
	groups   []string // groups with a loaded track, insertion order
	tracks   map[string]*Track
}

// NewEngineState creates an engine with the standard deck control set for
// channels [Channel1]..[ChannelN] plus the [Master] mix controls. No tracks
// are loaded initially.
func NewEngineState(channels int) *EngineState {
	e := &EngineState{
		controls: make(map[controlKey]float64),
		tracks:   make(map[string]*Track),
	}
	for i := 1; i <= channels; i++ {
		group := fmt.Sprintf("[Channel%d]", i)
		for _, item := range playerControls {
			e.AddControl(group, item, defaultControlValues[item])
		}
	}
	for _, item := range []string{"volume", "balance", "headVolume", "headMix"} {
		e.AddControl("[Master]", item, defaultControlValues[item])
	}
	return e
}

// AddControl registers a control. Adding an existing key overwrites its value.
func (e *EngineState) AddControl(group, item string, value float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.controls[controlKey{group, item}] = clamp(item, value)
}

// Get implements ControlRegistry.
func (e *EngineState) Get(group, item string) (float64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.controls[controlKey{group, item}]
	return v, ok
}

// Set implements ControlRegistry. Unknown keys are rejected; controls are
// defined by the engine, not created through the API.
func (e *EngineState) Set(group, item string, value float64) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := controlKey{group, item}
	if _, ok := e.controls[key]; !ok {
		return 0, false
	}
	stored := clamp(item, value)
	e.controls[key] = stored
	return stored, true
}

// LoadTrack loads a track into a player group and updates the controls that
// mirror track state (track_loaded, duration, bpm).
func (e *EngineState) LoadTrack(group string, track Track) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, loaded := e.tracks[group]; !loaded {
		e.groups = append(e.groups, group)
	}
	e.tracks[group] = &track
	e.setIfPresent(group, "track_loaded", 1)
	e.setIfPresent(group, "duration", track.Duration)
	e.setIfPresent(group, "bpm", track.BPM)
}

// EjectTrack removes the loaded track from a group, if any.
func (e *EngineState) EjectTrack(group string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, loaded := e.tracks[group]; !loaded {
		return
	}
	delete(e.tracks, group)
	for i, g := range e.groups {
		if g == group {
			e.groups = append(e.groups[:i], e.groups[i+1:]...)
			break
		}
	}
	e.setIfPresent(group, "track_loaded", 0)
	e.setIfPresent(group, "duration", 0)
	e.setIfPresent(group, "bpm", 0)
}

// LoadedGroups implements TrackSource.
func (e *EngineState) LoadedGroups() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.groups...)
}

// LoadedTrack implements TrackSource. The returned track is a copy; callers
// cannot mutate engine state through it.
func (e *EngineState) LoadedTrack(group string) *Track {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t, ok := e.tracks[group]
	if !ok {
		return nil
	}
	copied := *t
	return &copied
}

// setIfPresent updates a control only when the engine defines it.
// Caller holds e.mu.
func (e *EngineState) setIfPresent(group, item string, value float64) {
	key := controlKey{group, item}
	if _, ok := e.controls[key]; ok {
		e.controls[key] = clamp(item, value)
	}
}

func clamp(item string, value float64) float64 {
	r, ok := clampRanges[item]
	if !ok {
		return value
	}
	if value < r[0] {
		return r[0]
	}
	if value > r[1] {
		return r[1]
	}
	return value
}
