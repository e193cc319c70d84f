package main

import "github.com/jasperwreed/toolfind/internal/cli"

func main() {
	cli.Execute()
}
