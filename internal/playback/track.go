package playback

// Track is a playable item. Identity is ID; StreamURL stays empty until the
// track has been resolved.
type Track struct {
	ID           string
	Title        string
	Artist       string
	ThumbnailURL string
	StreamURL    string
}

// WithStream returns a copy of t carrying a resolved stream URL.
func (t Track) WithStream(url string) Track {
	t.StreamURL = url
	return t
}

// Resolved reports whether the track carries a stream URL.
func (t Track) Resolved() bool {
	return t.StreamURL != ""
}
