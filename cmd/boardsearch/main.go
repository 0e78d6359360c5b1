// Command boardsearch is a terminal front end for the board search. Each
// line read from stdin is typed into a search box and submitted with Enter.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"pet-board/pkg/board"
	"pet-board/pkg/boardclient"
	"pet-board/pkg/config"
	"pet-board/pkg/logger"
	"pet-board/pkg/searchbox"
)

func main() {
	var (
		baseURL  = flag.String("url", "", "board service URL (default: BOARD_SERVICE_URL)")
		category = flag.String("category", "", "board category name or id, empty for all")
		size     = flag.Int("size", board.DefaultPageSize, "results per page")
	)
	flag.Parse()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	if *baseURL == "" {
		*baseURL = cfg.BoardServiceURL
	}

	cat, err := board.ParseCategory(*category)
	if err != nil {
		log.Error("Invalid category %q: %v", *category, err)
		os.Exit(2)
	}

	ctrl := searchbox.NewController(context.Background(), boardclient.New(*baseURL), searchbox.OnEnterOnly())
	defer ctrl.Box().Close()
	ctrl.SetCategory(cat)
	ctrl.SetPageSize(*size)

	if err := run(ctrl, os.Stdin, os.Stdout); err != nil {
		log.Error("Failed to read input: %v", err)
		os.Exit(1)
	}
}

func run(ctrl *searchbox.Controller, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, searchbox.Placeholder)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		box := ctrl.Box()
		box.Input(scanner.Text())
		box.KeyUp(searchbox.KeyEnter)
		printResult(out, ctrl)
	}
	return scanner.Err()
}

func printResult(out io.Writer, ctrl *searchbox.Controller) {
	if err := ctrl.Err(); err != nil {
		fmt.Fprintf(out, "search failed: %v\n", err)
		return
	}

	result := ctrl.Result()
	if result == nil {
		return
	}

	fmt.Fprintf(out, "%q: %d posts (page %d of %d)\n", ctrl.Term(), result.TotalElements, result.Page+1, result.TotalPages)
	for _, post := range result.Posts {
		title := post.Title()
		if title == "" {
			title = post.BoardContent
		}
		fmt.Fprintf(out, "  #%d [%s] %s (%s, %d views)\n", post.ID, post.Category(), title, post.Nickname, post.BoardViewCount)
	}
}
