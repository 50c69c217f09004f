package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/url-summarizer/internal/summaries"
)

func main() {
	app := summaries.NewApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
