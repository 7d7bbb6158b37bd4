// Command server runs the chandas analysis HTTP API.
//
// Configuration comes from config.yaml and environment variables; see
// internal/config. The corpus database and the fallback model are both
// optional.
//
// Exit codes: 0 = clean shutdown, 1 = startup or runtime error.
package main

import (
	"context"
	"log"

	"github.com/chandaslab/chandas-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
