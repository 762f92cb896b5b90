package main

import (
	"os"

	"github.com/webfolio/webfolio/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
