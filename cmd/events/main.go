// Tails the assistant activity stream. Useful when debugging webhook
// processing without the dashboard websocket attached.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"meeting-assistant-be/internal/config"
	"meeting-assistant-be/pkg/events"
	pkgNats "meeting-assistant-be/pkg/nats"
)

func main() {
	cfg := config.Load()

	sub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("[FATAL] Unable to connect to NATS: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe("assistant.>", "event-tail", func(ctx context.Context, event events.Event) error {
		payload, err := json.Marshal(event.Payload())
		if err != nil {
			return err
		}
		log.Printf("%s %s", event.EventType(), payload)
		return nil
	})
	if err != nil {
		log.Fatalf("[FATAL] Subscribe failed: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}
