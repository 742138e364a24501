package main

import "github.com/pfrederiksen/ccao-calendar/internal/cli"

func main() {
	cli.Execute()
}
