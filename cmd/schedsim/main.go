package main

import "schedsim/internal/cli"

func main() {
	// Flags override schedsim.yml, which overrides the defaults
	cli.Execute()
}
