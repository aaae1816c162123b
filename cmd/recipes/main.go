package main

import "github.com/windoze95/recipe-search/internal/cli"

func main() {
	cli.Execute()
}
