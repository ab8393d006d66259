package app

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/llehouerou/hifi/internal/apperr"
	"github.com/llehouerou/hifi/internal/errmsg"
	"github.com/llehouerou/hifi/internal/history"
	"github.com/llehouerou/hifi/internal/lastfm"
	"github.com/llehouerou/hifi/internal/recognize"
	"github.com/llehouerou/hifi/internal/task"
	"github.com/llehouerou/hifi/internal/thumbnail"
	"github.com/llehouerou/hifi/internal/ui/list"
	"github.com/llehouerou/hifi/internal/ui/shelf"
	"github.com/llehouerou/hifi/internal/ui/styles"
)

// discoverPage is a query input above one result shelf.
type discoverPage struct {
	input   textinput.Model
	results shelf.Model
}

func newDiscoverPage(limit int, art thumbnail.Fetcher) discoverPage {
	ti := textinput.New()
	ti.Placeholder = "Search songs or artists"
	ti.Prompt = "/ "
	ti.PromptStyle = styles.T().S().Accent
	ti.PlaceholderStyle = styles.T().S().Subtle
	ti.CharLimit = 120
	return discoverPage{
		input: ti,
		results: shelf.New(discoverShelfID, shelf.Params{
			Fetch:      limit,
			EmptyLabel: errmsg.NoResults,
			FailLabel:  errmsg.SearchFailed,
			Art:        art,
		}),
	}
}

// discoverTitle is the results heading for a query.
func discoverTitle(query string) string {
	return "Results for '" + query + "'"
}

type recognizeStatus int

const (
	recognizeIdle recognizeStatus = iota
	recognizeListening
	recognizeRecognized
	recognizeNotFound
	recognizeFailed
)

// Label is the status line shown on the Recognize page.
func (s recognizeStatus) Label() string {
	switch s {
	case recognizeIdle:
		return "Click to recognize music"
	case recognizeListening:
		return "Listening..."
	case recognizeRecognized:
		return "Song recognized!"
	case recognizeNotFound:
		return errmsg.NotRecognized
	case recognizeFailed:
		return errmsg.RecognitionFailed
	}
	return ""
}

type recognizePage struct {
	status recognizeStatus
	result recognize.Result
	handle *task.Handle
}

type artistStatus int

const (
	artistEmpty artistStatus = iota
	artistLoading
	artistReady
	artistFailed
	artistUnavailable // no Last.fm key
)

type artistSection int

const (
	sectionVideos artistSection = iota
	sectionTop
	sectionSimilar
	sectionCount
)

// artistPage shows videos for an artist and, with Last.fm, their top
// tracks and similar artists.
type artistPage struct {
	name     string
	followed string // artist last taken from the player
	status   artistStatus
	err      *apperr.Error
	handle   *task.Handle

	videos  shelf.Model
	top     list.Model[lastfm.TopTrack]
	similar list.Model[lastfm.SimilarArtist]
	focus   artistSection
	focused bool
}

func newArtistPage(art thumbnail.Fetcher) artistPage {
	return artistPage{
		videos: shelf.New(artistShelfID, shelf.Params{
			Fetch: 10,
			Show:  5,
			Art:   art,
		}),
		top:     list.New[lastfm.TopTrack](),
		similar: list.New[lastfm.SimilarArtist](),
	}
}

// begin resets the page for a new artist.
func (p *artistPage) begin(name string) {
	p.name = name
	p.status = artistLoading
	p.err = nil
	p.handle = nil
	p.top.SetItems(nil)
	p.similar.SetItems(nil)
	p.focusSection(sectionVideos)
}

func (p *artistPage) apply(info lastfm.ArtistInfo) {
	p.handle = nil
	p.status = artistReady
	p.top.SetItems(info.TopTracks)
	p.similar.SetItems(info.Similar)
}

func (p *artistPage) fail(err *apperr.Error) {
	p.handle = nil
	p.status = artistFailed
	p.err = err
}

func (p *artistPage) setFocused(focused bool) {
	p.focused = focused
	p.focusSection(p.focus)
}

func (p *artistPage) focusSection(s artistSection) {
	p.focus = s
	p.videos.SetFocused(p.focused && s == sectionVideos)
	p.top.SetFocused(p.focused && s == sectionTop)
	p.similar.SetFocused(p.focused && s == sectionSimilar)
}

func (p *artistPage) sectionLen(s artistSection) int {
	switch s {
	case sectionVideos:
		return len(p.videos.Visible())
	case sectionTop:
		return p.top.Len()
	case sectionSimilar:
		return p.similar.Len()
	}
	return 0
}

// step moves focus to the nearest section in direction dir that has rows.
func (p *artistPage) step(dir int) bool {
	for s := p.focus + artistSection(dir); s >= 0 && s < sectionCount; s += artistSection(dir) {
		if p.sectionLen(s) == 0 {
			continue
		}
		p.focusSection(s)
		switch {
		case s == sectionTop && dir > 0:
			p.top.SelectFirst()
		case s == sectionTop:
			p.top.SelectLast()
		case s == sectionSimilar && dir > 0:
			p.similar.SelectFirst()
		case s == sectionSimilar:
			p.similar.SelectLast()
		case dir > 0:
			p.videos.SelectFirst()
		default:
			p.videos.SelectLast()
		}
		return true
	}
	return false
}

type historyKind int

const (
	historyRecent historyKind = iota
	historyMost
)

type historyPage struct {
	kind historyKind
	list list.Model[history.Entry]
}

func newHistoryPage(kind historyKind) historyPage {
	return historyPage{kind: kind, list: list.New[history.Entry]()}
}

func (p *historyPage) refresh(h *history.History) {
	if p.kind == historyMost {
		p.list.SetItems(h.Most(0))
		return
	}
	p.list.SetItems(h.Recent(0))
}

// thumbState is the thumbnail of the current track.
type thumbState struct {
	trackID string
	data    []byte
	handle  *task.Handle
}
