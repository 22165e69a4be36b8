package main

import "github.com/ip6tools/ip6tools/internal/cli"

func main() {
	cli.Execute()
}
