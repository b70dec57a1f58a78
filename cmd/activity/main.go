package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ai-hukum-web/internal/config"
	"ai-hukum-web/pkg/events"
	"ai-hukum-web/pkg/nats"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()

	url := flag.String("url", cfg.App.NatsURL, "NATS server URL")
	subject := flag.String("subject", "activity.>", "subject filter")
	durable := flag.String("durable", "", "durable consumer name (empty tails new events only)")
	flag.Parse()

	if *url == "" {
		color.Red("NATS_URL is not set and -url was not given")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sub, err := nats.NewSubscriber(*url, cfg.Activity.Topic)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	defer sub.Close()

	color.Cyan("Tailing %s on stream %s", *subject, cfg.Activity.Topic)
	if err := sub.Subscribe(ctx, *subject, *durable, printEvent); err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}

	<-ctx.Done()
	color.Cyan("\nStopped")
}

func printEvent(_ context.Context, e events.Event) error {
	ts := e.Timestamp().Format("15:04:05")

	var label string
	switch e.EventType() {
	case events.TypeUploadFailed, events.TypeRequestFailed:
		label = color.RedString(e.EventType())
	case events.TypeAnalyzeDiscarded:
		label = color.YellowString(e.EventType())
	default:
		label = color.GreenString(e.EventType())
	}

	payload, err := json.Marshal(e.Payload())
	if err != nil {
		payload = []byte(fmt.Sprintf("%v", e.Payload()))
	}
	fmt.Printf("%s %s %s\n", ts, label, payload)
	return nil
}
