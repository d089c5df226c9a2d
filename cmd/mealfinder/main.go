package main

import "github.com/pageza/mealfinder/internal/cli"

func main() {
	cli.Execute()
}
