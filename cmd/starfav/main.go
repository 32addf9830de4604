package main

import (
	"log"

	"github.com/MrSnakeDoc/starfav/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ starfav failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ starfav failed: %v", err)
	}
}
