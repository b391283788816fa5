// Command bot runs the Telegram address-book bot.
//
// Configuration comes from environment variables and an optional YAML file
// pointed at by CONFIG_PATH; see internal/config for the full surface.
package main

import (
	"context"
	"log"

	"github.com/lorenzotiziani/BotPizzaStyle/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("bot: %v", err)
	}
}
