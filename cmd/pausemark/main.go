package main

import "github.com/tessro/pausemark/internal/cli"

func main() {
	cli.Execute()
}
