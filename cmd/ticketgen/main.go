// Command ticketgen derives a ticket from a saved call transcript and stores
// it, the same way the server does when a call ends.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"triage-server/internal/bootstrap"
	"triage-server/internal/clients/googleai"
	"triage-server/internal/config"
	"triage-server/internal/observability"
	"triage-server/internal/prompts"
	ticketProcessor "triage-server/internal/tickets/processor"
	voiceCallProcessor "triage-server/internal/voicecall/processor"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s <transcript file>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := observability.NewLogger()
	defer logger.Sync()
	ctx := context.Background()

	ticketID, err := run(ctx, cfg, logger, flag.Arg(0))
	if err != nil {
		logger.Fatal(ctx, "failed to derive ticket", err)
	}
	fmt.Println(ticketID)
}

func run(ctx context.Context, cfg *config.Config, logger *observability.Logger, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open transcript: %w", err)
	}
	defer f.Close()

	entries, err := voiceCallProcessor.ParseTranscript(f)
	if err != nil {
		return "", err
	}

	catalog, err := prompts.Load(cfg.PromptFile)
	if err != nil {
		return "", fmt.Errorf("failed to load prompts: %w", err)
	}

	docs, err := bootstrap.OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		return "", err
	}
	defer docs.Close()

	googleAI, err := googleai.NewClient(ctx, cfg.Models.GoogleAIAPIKey, googleai.Models{
		Live:           cfg.Models.LiveModel,
		Classification: cfg.Models.ClassificationModel,
		Tweet:          cfg.Models.TweetModel,
	}, logger)
	if err != nil {
		return "", err
	}
	classifier, err := bootstrap.NewClassifier(cfg.Models, googleAI, logger)
	if err != nil {
		return "", err
	}

	ticket, err := ticketProcessor.New(docs, classifier, catalog, logger).DeriveTicket(ctx, voiceCallProcessor.CallRecord{
		CallID:         strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Entries:        entries,
		TranscriptPath: path,
	})
	if err != nil {
		return "", err
	}
	return ticket.TicketID, nil
}
