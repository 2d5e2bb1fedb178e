package main

import "github.com/pfrederiksen/mcc-scraper/internal/cli"

func main() {
	cli.Execute()
}
