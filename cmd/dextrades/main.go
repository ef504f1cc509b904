package main

import "dex-trades/internal/cli"

func main() {
	cli.Execute()
}
