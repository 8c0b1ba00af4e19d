package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"media-repurposer-go/internal/api"
	"media-repurposer-go/internal/config"
	"media-repurposer-go/internal/logger"
	"media-repurposer-go/internal/platform"
	_ "media-repurposer-go/internal/platform/generic"
	_ "media-repurposer-go/internal/platform/tiktok"
	"media-repurposer-go/internal/resolver"
	"media-repurposer-go/internal/store"
)

func main() {
	configPath := flag.String("config", ".", "path to config file")
	apiMode := flag.Bool("api", false, "start api server")
	apiAddr := flag.String("addr", ":8080", "api server address")
	rawURL := flag.String("url", "", "resolve a single post URL and print the bundle")
	cookie := flag.String("cookie", "", "optional session cookie forwarded to the aggregator")
	flag.Parse()

	if err := config.LoadConfig(*configPath); err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.InitFromConfig()

	if err := store.Init(context.Background()); err != nil {
		logger.Error("store init failed", "err", err)
		os.Exit(1)
	}

	if *apiMode {
		srv := api.NewServer()
		logger.Info("starting api server", "addr", *apiAddr)
		if err := http.ListenAndServe(*apiAddr, srv.Handler()); err != nil {
			logger.Error("api server failed", "err", err)
			os.Exit(1)
		}
		return
	}

	if *rawURL == "" {
		fmt.Println("Usage: media-repurposer -url <post url> | media-repurposer -api")
		flag.PrintDefaults()
		os.Exit(2)
	}

	res, tag, err := platform.ResolverFor(*rawURL)
	if err != nil {
		logger.Error("resolver init failed", "err", err)
		os.Exit(1)
	}

	logger.Info("resolving", "platform", string(tag), "url", *rawURL)
	raw, err := res.Resolve(context.Background(), *rawURL, resolver.Options{Cookie: *cookie})
	if err != nil {
		logger.Error("resolution failed", "platform", string(tag), "error_kind", string(resolver.KindOf(err)), "err", err)
		os.Exit(1)
	}

	bundle := resolver.Build(*rawURL, string(tag), raw)
	if err := store.SaveRecord(context.Background(), store.Record{
		Platform:   string(tag),
		InputURL:   *rawURL,
		CleanURL:   bundle.CleanURL,
		PrimaryURL: bundle.PrimarySource,
		Shape:      string(bundle.Shape),
		MediaCount: bundle.MediaCount,
		HasAudio:   bundle.HasAudio,
	}); err != nil {
		logger.Warn("history record failed", "err", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bundle); err != nil {
		logger.Error("encode bundle failed", "err", err)
		os.Exit(1)
	}
	logger.Info("resolution finished", "platform", string(tag), "media_count", bundle.MediaCount, "shape", string(bundle.Shape))
}
