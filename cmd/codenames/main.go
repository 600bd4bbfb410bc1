package main

import "github.com/mcoot/codenames/internal/cli"

func main() {
	cli.Execute()
}
