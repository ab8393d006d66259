// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpSearch     Op = "search"
	OpShelfLoad  Op = "load playlist"
	OpArtistLoad Op = "load artist"
	OpImageFetch Op = "fetch thumbnail"

	// Playback operations
	OpResolve       Op = "resolve audio"
	OpPlaybackStart Op = "start playback"

	// Recognition operations
	OpCapture   Op = "record audio"
	OpRecognize Op = "recognize song"

	// Desktop integration
	OpNotify Op = "send notification"
	OpMPRIS  Op = "start media controls"

	// Initialization
	OpLoadConfig  Op = "load configuration"
	OpOpenLogFile Op = "open log file"
	OpInitialize  Op = "initialize application"
)

// Fixed labels shown in place of content.
const (
	SearchFailed      = "Failed to fetch results"
	NoResults         = "No results found"
	NoPlaylist        = "No Playlist Found"
	NotRecognized     = "Song not recognized"
	RecognitionFailed = "Failed to recognize song"
	PlayFailed        = "Failed to play song"
	TrackLoadFailed   = "Error loading track"
	PlaybackStopped   = "Playback stopped"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
