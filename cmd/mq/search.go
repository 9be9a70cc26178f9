package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/abelbrown/marquee/internal/search"
)

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	limit := fs.Int("n", 20, "Maximum number of results to print")
	fs.Parse(os.Args[1:])

	// No query means the default discover listing.
	query := strings.Join(fs.Args(), " ")

	ctx, cancel, cfg := setup()
	defer cancel()

	client := requireCatalog(cfg)
	movies, err := client.Search(ctx, query)
	if err != nil {
		log.Fatalf("search %q: %v", query, err)
	}
	if len(movies) == 0 {
		fmt.Println(search.MsgNoMovies)
		return
	}

	if *limit > 0 && len(movies) > *limit {
		movies = movies[:*limit]
	}
	for i, m := range movies {
		fmt.Printf("%3d. %-40s ★ %-4s %-3s %s\n", i+1, truncate(m.Title, 40), m.Rating(), m.Language(), m.Year())
		if poster := m.PosterURL(); poster != "" {
			fmt.Printf("     %s\n", poster)
		}
	}
}
