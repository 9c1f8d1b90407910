package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"campus-assistant-be/internal/config"
	"campus-assistant-be/pkg/events"
	"campus-assistant-be/pkg/nats"

	"github.com/fatih/color"
)

// Listens for escalation events on NATS and prints them. Intended for
// department staff terminals or as a template for real alert delivery.
func main() {
	cfg := config.Load()

	subscriber, err := nats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer subscriber.Close()

	subject := "events." + events.EscalationRaisedType
	err = subscriber.Subscribe(subject, "escalation-listener", func(ctx context.Context, event events.Event) error {
		data := event.Payload()

		color.Red("⚠ ESCALATION  session=%v priority=%v", data["session_id"], data["priority"])
		color.Yellow("  department=%v reasons=%v", data["recommended_department"], data["reasons"])
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	color.Cyan("Listening for escalations on %s (Ctrl+C to stop)...", subject)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}
