package main

import (
	"fmt"
	"os"

	"github.com/sahilchouksey/institucion-api/app"
)

func main() {
	if err := app.SetupAndRunServer(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
