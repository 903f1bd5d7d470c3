package main

import "github.com/pfrederiksen/fbref-comps/internal/cli"

func main() {
	cli.Execute()
}
