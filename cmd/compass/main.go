package main

import "github.com/compass/financial-planner/internal/cli"

func main() {
	cli.Execute()
}
