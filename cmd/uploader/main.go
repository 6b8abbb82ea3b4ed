package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/documedix/documedix/internal/bootstrap"
	"github.com/documedix/documedix/internal/config"
	"github.com/documedix/documedix/internal/core/usecase"
)

func main() {
	dir := flag.String("dir", "", "root directory of the precedent tree to upload")
	master := flag.Bool("master", false, "upload shared reference data instead of a precedent tree")
	flag.Parse()

	if *dir == "" {
		log.Fatalf("usage: uploader -dir <path> [-master]")
	}

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, "uploader", cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	var summary usecase.UploadSummary
	if *master {
		summary, err = app.Uploader.UploadMaster(ctx, *dir)
	} else {
		summary, err = app.Uploader.UploadTree(ctx, *dir)
	}
	if err != nil {
		log.Fatalf("upload failed: %v", err)
	}

	app.Logger.Info("upload_finished",
		"dir", *dir,
		"master", *master,
		"uploaded", summary.Uploaded,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	if summary.Failed > 0 {
		os.Exit(1)
	}
}
