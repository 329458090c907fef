package main

import (
	"log/slog"
	"os"

	"clipnest/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		slog.Error("failed to start clipnest", "err", err)
		os.Exit(1)
	}

	application.Run()
}
