package search

import (
	"time"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/store"
)

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// Started is sent once when the view mounts.
type Started struct{}

// InputChanged carries the raw search box text after an edit.
type InputChanged struct {
	Query string
}

// DebounceElapsed fires when the delay scheduled for input Seq has passed.
type DebounceElapsed struct {
	Seq uint64
}

// MoviesLoaded is the outcome of FetchMovies with the same Seq.
type MoviesLoaded struct {
	Seq    uint64
	Query  string
	Movies []catalog.Movie
	Err    error
}

// TrendingLoaded is the outcome of LoadTrending.
type TrendingLoaded struct {
	Docs []store.TrendDocument
	Err  error
}

// OccurrenceRecorded is the outcome of RecordOccurrence.
type OccurrenceRecorded struct {
	Query string
	Err   error
}

func (Started) isEvent()            {}
func (InputChanged) isEvent()       {}
func (DebounceElapsed) isEvent()    {}
func (MoviesLoaded) isEvent()       {}
func (TrendingLoaded) isEvent()     {}
func (OccurrenceRecorded) isEvent() {}

// Effect is work Reduce asks the runtime to do. Each completes by feeding the
// matching event back into Reduce.
type Effect interface {
	isEffect()
}

// ScheduleDebounce asks for DebounceElapsed{Seq} after Delay.
type ScheduleDebounce struct {
	Seq   uint64
	Delay time.Duration
}

// FetchMovies asks the catalog for Query; answer with MoviesLoaded{Seq}.
type FetchMovies struct {
	Seq   uint64
	Query string
}

// RecordOccurrence bumps the trend counter for Query; answer with
// OccurrenceRecorded.
type RecordOccurrence struct {
	Query string
	Movie catalog.Movie
}

// LoadTrending reads the top Limit trend documents; answer with
// TrendingLoaded.
type LoadTrending struct {
	Limit int
}

// LogFailure reports an error that must not reach the user.
type LogFailure struct {
	Op    string
	Query string
	Err   error
}

func (ScheduleDebounce) isEffect() {}
func (FetchMovies) isEffect()      {}
func (RecordOccurrence) isEffect() {}
func (LoadTrending) isEffect()     {}
func (LogFailure) isEffect()       {}
