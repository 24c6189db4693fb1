package main

import (
	"flag"
	"log"

	"github.com/futig/cpf-explainer/internal/builder"
)

func main() {
	env := flag.String("env", "local", "environment name, loads .env.<env> when present")
	flag.Parse()

	app, err := builder.Build(*env)
	if err != nil {
		log.Fatal("Failed to build application:", err)
	}

	if err := app.Run(); err != nil {
		log.Fatal("Application error:", err)
	}
}
