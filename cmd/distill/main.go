package main

import "distill/internal/cli"

func main() {
	cli.Execute()
}
