package search

import (
	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/store"
)

// Reduce applies ev to s. It never mutates slices held by s; replaced lists
// are swapped wholesale.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case Started:
		effects := []Effect{LoadTrending{Limit: s.Options.TrendingLimit}}
		s, fetch := beginFetch(s)
		return s, append(effects, fetch...)

	case InputChanged:
		s.Query = ev.Query
		s.InputSeq++
		return s, []Effect{ScheduleDebounce{Seq: s.InputSeq, Delay: s.Options.Debounce}}

	case DebounceElapsed:
		if ev.Seq != s.InputSeq {
			return s, nil
		}
		if s.Query == s.Debounced {
			return s, nil
		}
		s.Debounced = s.Query
		return beginFetch(s)

	case MoviesLoaded:
		if ev.Seq != s.RequestSeq || !s.Loading {
			return s, nil
		}
		return finishFetch(s, ev)

	case TrendingLoaded:
		if ev.Err != nil {
			return s, []Effect{LogFailure{Op: "load trending", Err: ev.Err}}
		}
		if ev.Docs == nil {
			s.Trending = []store.TrendDocument{}
		} else {
			s.Trending = ev.Docs
		}
		return s, nil

	case OccurrenceRecorded:
		if ev.Err != nil {
			return s, []Effect{LogFailure{Op: "record occurrence", Query: ev.Query, Err: ev.Err}}
		}
		if s.Options.RefreshTrending {
			return s, []Effect{LoadTrending{Limit: s.Options.TrendingLimit}}
		}
		return s, nil
	}
	return s, nil
}

// beginFetch starts a catalog request for s.Debounced.
func beginFetch(s State) (State, []Effect) {
	s.Err = ""
	s.Loading = true
	s.Phase = PhaseLoading

	if !s.HasCredential {
		s.Loading = false
		s.Phase = PhaseFailed
		s.Err = MsgMissingAPIKey
		return s, nil
	}

	s.RequestSeq++
	return s, []Effect{FetchMovies{Seq: s.RequestSeq, Query: s.Debounced}}
}

func finishFetch(s State, ev MoviesLoaded) (State, []Effect) {
	s.Loading = false

	if ev.Err != nil {
		s.Phase = PhaseFailed
		s.Err = MsgFetchFailed
		s.Movies = []catalog.Movie{}
		return s, []Effect{LogFailure{Op: "fetch movies", Query: ev.Query, Err: ev.Err}}
	}

	if len(ev.Movies) == 0 {
		s.Phase = PhaseEmpty
		s.Err = MsgNoMovies
		s.Movies = []catalog.Movie{}
		return s, nil
	}

	s.Phase = PhaseSuccess
	s.Movies = ev.Movies
	if ev.Query == "" {
		return s, nil
	}
	return s, []Effect{RecordOccurrence{Query: ev.Query, Movie: ev.Movies[0]}}
}
