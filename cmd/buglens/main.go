package main

import "github.com/buglens/buglens/internal/cli"

func main() {
	cli.Execute()
}
