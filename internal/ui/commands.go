package ui

import (
	"context"
	"errors"
	"time"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/search"
	"github.com/abelbrown/marquee/internal/store"
	tea "github.com/charmbracelet/bubbletea"
)

// TrendStore is the part of store.Store the UI writes and reads.
type TrendStore interface {
	RecordOccurrence(ctx context.Context, query string, movie catalog.Movie) error
	TopTrending(ctx context.Context, limit int) ([]store.TrendDocument, error)
}

// storeTimeout bounds each trend store call.
const storeTimeout = 5 * time.Second

var errNoTrendStore = errors.New("trend store not configured")

// NewCommands wires Commands to a catalog and a trend store. trends may be
// nil; trend effects then report errNoTrendStore, which is logged only.
func NewCommands(ctx context.Context, searcher catalog.Searcher, trends TrendStore) Commands {
	return Commands{
		FetchMovies: func(seq uint64, query string) tea.Cmd {
			return func() tea.Msg {
				movies, err := searcher.Search(ctx, query)
				return search.MoviesLoaded{Seq: seq, Query: query, Movies: movies, Err: err}
			}
		},
		RecordOccurrence: func(query string, movie catalog.Movie) tea.Cmd {
			return func() tea.Msg {
				if trends == nil {
					return search.OccurrenceRecorded{Query: query, Err: errNoTrendStore}
				}
				callCtx, cancel := context.WithTimeout(ctx, storeTimeout)
				defer cancel()
				err := trends.RecordOccurrence(callCtx, query, movie)
				return search.OccurrenceRecorded{Query: query, Err: err}
			}
		},
		LoadTrending: func(limit int) tea.Cmd {
			return func() tea.Msg {
				if trends == nil {
					return search.TrendingLoaded{Err: errNoTrendStore}
				}
				callCtx, cancel := context.WithTimeout(ctx, storeTimeout)
				defer cancel()
				docs, err := trends.TopTrending(callCtx, limit)
				return search.TrendingLoaded{Docs: docs, Err: err}
			}
		},
	}
}
