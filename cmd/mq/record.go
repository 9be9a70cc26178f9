package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/logging"
)

func runRecord() {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	noLookup := fs.Bool("no-lookup", false, "Skip the catalog lookup and record without a movie snapshot")
	fs.Parse(os.Args[1:])

	query := strings.Join(fs.Args(), " ")
	if query == "" {
		fmt.Fprintln(os.Stderr, "usage: mq record [--no-lookup] <query>")
		os.Exit(1)
	}

	ctx, cancel, cfg := setup()
	defer cancel()

	// The snapshot comes from the first catalog match, as in the browser.
	var movie catalog.Movie
	if !*noLookup {
		movies, err := requireCatalog(cfg).Search(ctx, query)
		if err != nil {
			log.Fatalf("search %q: %v", query, err)
		}
		if len(movies) == 0 {
			fmt.Fprintf(os.Stderr, "no movies match %q; nothing recorded\n", query)
			os.Exit(1)
		}
		movie = movies[0]
	}

	st := openStore(ctx, cfg)
	defer st.Close()

	if err := st.RecordOccurrence(ctx, query, movie); err != nil {
		log.Fatalf("record %q: %v", query, err)
	}
	logging.Info("occurrence recorded", "query", query, "movie_id", movie.ID)

	docs, err := st.TopTrending(ctx, cfg.Search.TrendingLimit)
	if err != nil {
		log.Fatalf("top trending: %v", err)
	}
	fmt.Printf("recorded %q\n", query)
	for i, d := range docs {
		fmt.Printf("  %d. %s (%d)\n", i+1, d.SearchTerm, d.Count)
	}
}
