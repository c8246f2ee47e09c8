package main

// ControlRegistry is the REST layer's view of the engine's control store.
// Controls are addressed by a (group, item) pair, e.g. ("[Channel1]", "play").
// A missing key is a normal outcome reported through the bool, never an error
// or a panic. Implementations must be safe for concurrent use: the engine's
// own threads read and write the same controls.
type ControlRegistry interface {
	// Get returns the current value of a control, or false if the key is
	// unknown.
	Get(group, item string) (float64, bool)
	// Set stores a value and returns the value actually stored, which may
	// differ from the requested one if the engine clamps it. False means
	// the key is unknown and nothing was stored.
	Set(group, item string, value float64) (float64, bool)
}

// TrackSource exposes the engine's loaded-track table.
type TrackSource interface {
	// LoadedGroups lists the player groups that currently have a track
	// loaded, in the engine's enumeration order.
	LoadedGroups() []string
	// LoadedTrack returns the track loaded into a group, or nil.
	LoadedTrack(group string) *Track
}
