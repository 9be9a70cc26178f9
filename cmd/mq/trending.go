package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abelbrown/marquee/internal/search"
)

func runTrending() {
	fs := flag.NewFlagSet("trending", flag.ExitOnError)
	limit := fs.Int("n", search.DefaultTrendingLimit, "Number of queries to list")
	fs.Parse(os.Args[1:])

	ctx, cancel, cfg := setup()
	defer cancel()

	st := openStore(ctx, cfg)
	defer st.Close()

	docs, err := st.TopTrending(ctx, *limit)
	if err != nil {
		log.Fatalf("top trending: %v", err)
	}
	if len(docs) == 0 {
		fmt.Println("No searches recorded yet.")
		return
	}

	fmt.Printf("%-4s %-6s %-30s %-30s %s\n", "RANK", "COUNT", "QUERY", "TITLE", "UPDATED")
	for i, d := range docs {
		fmt.Printf("%-4d %-6d %-30s %-30s %s\n",
			i+1, d.Count, truncate(d.SearchTerm, 30), truncate(d.Title, 30),
			d.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}
