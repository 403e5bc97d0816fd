package main

import "github.com/berth-dev/vibe/internal/cli"

func main() {
	cli.Execute()
}
