package playback

// StateChange is emitted when the phase changes.
type StateChange struct {
	Previous Phase
	Current  Phase
}

// TrackChange is emitted when a different track becomes current, including
// when the player bar is closed (Current is nil).
//
// It is NOT emitted when the same track is requested again, so a resume from
// Paused does not re-announce the track.
type TrackChange struct {
	Previous *Track
	Current  *Track
}

// ModeChange is emitted when the display mode flips.
type ModeChange struct {
	Mode DisplayMode
}
