// Package search is the orchestrator between the search box, the movie
// catalog and the trend store.
//
// It is a pure state machine: Reduce takes the current State and one Event
// and returns the next State plus the Effects the runtime must perform. It
// never does I/O itself, which keeps the fetch lifecycle testable without a
// terminal, a network or a database.
//
// # Lifecycle
//
//	Idle ──fetch──> Loading ──results──> Success
//	                   │ ──no results──> Empty
//	                   └───failure─────> Failed
//
// Every fetch begins from whatever phase the previous one ended in.
//
// # Staleness
//
// Two counters guard against out-of-order completions. InputSeq grows on
// every keystroke; a DebounceElapsed whose Seq is not the latest is dropped.
// RequestSeq grows on every catalog fetch; a MoviesLoaded whose Seq is not
// the latest is dropped, so a slow response never overwrites a newer one.
package search

import (
	"time"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/store"
)

// User-visible messages.
const (
	MsgNoMovies      = "No movies found."
	MsgFetchFailed   = "Failed to fetch movies. Please try again later."
	MsgMissingAPIKey = "Missing API key. Set TMDB_API_KEY (or MARQUEE_CATALOG_API_KEY) in .env.local"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultDebounce      = time.Second
	DefaultTrendingLimit = 5
)

// Phase is where the current fetch stands.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseEmpty   Phase = "empty"
	PhaseFailed  Phase = "failed"
)

// Options are fixed for the life of a State.
type Options struct {
	Debounce        time.Duration
	TrendingLimit   int
	RefreshTrending bool // reload the trending strip after each recorded occurrence
}

// State is everything the presentation layer reads.
type State struct {
	Query     string // raw text in the search box
	Debounced string // last value that settled long enough to be fetched

	Movies   []catalog.Movie
	Loading  bool
	Err      string // user-visible; empty when there is nothing to report
	Trending []store.TrendDocument

	Phase         Phase
	HasCredential bool

	InputSeq   uint64
	RequestSeq uint64

	Options Options
}

// New returns the initial state. hasCredential is checked once here rather
// than on every fetch.
func New(hasCredential bool, opts Options) State {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.TrendingLimit <= 0 {
		opts.TrendingLimit = DefaultTrendingLimit
	}
	return State{
		Phase:         PhaseIdle,
		HasCredential: hasCredential,
		Movies:        []catalog.Movie{},
		Trending:      []store.TrendDocument{},
		Options:       opts,
	}
}

// ShowSpinner, ShowError and ShowResults are mutually exclusive; at most one
// is true for any State.
func (s State) ShowSpinner() bool {
	return s.Loading
}

func (s State) ShowError() bool {
	return !s.Loading && s.Err != ""
}

func (s State) ShowResults() bool {
	return !s.Loading && s.Err == "" && len(s.Movies) > 0
}
