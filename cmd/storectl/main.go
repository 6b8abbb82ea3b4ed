// Command storectl inspects and deletes file-search stores.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/documedix/documedix/internal/config"
	"github.com/documedix/documedix/internal/core/domain"
	"github.com/documedix/documedix/internal/infrastructure/genai"
	"github.com/documedix/documedix/internal/observability/logging"
)

func main() {
	store := flag.String("store", "", "store resource name or display name; defaults to the configured store")
	yes := flag.Bool("yes", false, "skip the delete confirmation prompt")
	force := flag.Bool("force", false, "delete the store even when it still contains documents")
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
	}
	command := flag.Arg(0)

	cfg := config.Load()
	if cfg.GeminiAPIKey == "" {
		log.Fatalf("GEMINI_API_KEY is not set")
	}
	logging.New("storectl", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := genai.New(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel,
		genai.WithPollInterval(cfg.PollInterval),
	)

	target := *store
	if target == "" {
		target = cfg.StoreDisplayName
	}

	var err error
	switch command {
	case "list":
		err = listStores(ctx, client)
	case "info":
		err = storeInfo(ctx, client, target)
	case "delete":
		err = deleteStore(ctx, client, target, *yes, *force)
	default:
		usage()
	}
	if err != nil {
		log.Fatalf("%s: %v", command, err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: storectl [-store NAME] [-yes] [-force] <list|info|delete>")
	os.Exit(2)
}

func listStores(ctx context.Context, client *genai.Client) error {
	stores, err := client.List(ctx)
	if err != nil {
		return err
	}
	if len(stores) == 0 {
		fmt.Println("no file search stores")
		return nil
	}
	for _, info := range stores {
		fmt.Printf("%s\t%s\tactive=%d pending=%d failed=%d size=%dB\n",
			info.Name, info.DisplayName,
			info.ActiveDocuments, info.PendingDocuments, info.FailedDocuments,
			info.SizeBytes,
		)
	}
	return nil
}

func resolveStore(ctx context.Context, client *genai.Client, target string) (domain.StoreInfo, error) {
	if strings.HasPrefix(target, "fileSearchStores/") {
		return client.Get(ctx, target)
	}
	return client.FindByDisplayName(ctx, target)
}

func storeInfo(ctx context.Context, client *genai.Client, target string) error {
	info, err := resolveStore(ctx, client, target)
	if err != nil {
		return err
	}

	fmt.Printf("name:          %s\n", info.Name)
	fmt.Printf("display name:  %s\n", info.DisplayName)
	fmt.Printf("documents:     active=%d pending=%d failed=%d\n",
		info.ActiveDocuments, info.PendingDocuments, info.FailedDocuments)
	fmt.Printf("size:          %d bytes\n", info.SizeBytes)
	fmt.Printf("created:       %s\n", info.CreateTime)
	fmt.Printf("updated:       %s\n", info.UpdateTime)

	documents, err := client.ListDocuments(ctx, info.Name)
	if err != nil {
		return err
	}
	fmt.Printf("contents (%d):\n", len(documents))
	for _, doc := range documents {
		fmt.Printf("  %s\t%dB\n", doc.DisplayName, doc.SizeBytes)
	}
	return nil
}

func deleteStore(ctx context.Context, client *genai.Client, target string, yes, force bool) error {
	info, err := resolveStore(ctx, client, target)
	if err != nil {
		return err
	}

	if !yes {
		fmt.Printf("delete store %s (%q, %d active documents)? [y/N] ",
			info.Name, info.DisplayName, info.ActiveDocuments)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("aborted")
			return nil
		}
	}

	if err := client.Delete(ctx, info.Name, force); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", info.Name)
	return nil
}
