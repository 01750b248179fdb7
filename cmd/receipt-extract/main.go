package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/vivatalent/receipt-extract/internal/extract"
	"github.com/vivatalent/receipt-extract/internal/ocr"
	"github.com/vivatalent/receipt-extract/internal/receipt"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("receipt-extract")
	var (
		port          = fs.IntLong("port", 8080, "HTTP server port")
		uploadsPath   = fs.StringLong("uploads", "./uploads", "Uploads directory path")
		statsPath     = fs.StringLong("stats-db", "receipt-stats.db", "Stats counters database file path")
		engineType    = fs.StringLong("engine", "azure", "Recognition engine: 'azure', 'gemini' or 'ollama'")
		azureEndpoint = fs.StringLong("azure-endpoint", "", "Azure Computer Vision endpoint (or set AZURE_CV_ENDPOINT env var)")
		azureKey      = fs.StringLong("azure-key", "", "Azure Computer Vision API key (or set AZURE_CV_KEY env var)")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ollamaURL     = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel   = fs.StringLong("ollama-model", "llava", "Ollama vision model name (e.g. llava, qwen2-vl)")
		companySuffix = fs.StringLong("company-suffix", "", "Company-suffix marker identifying the supplier name line (default SDN BHD)")
		authUser      = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass      = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion   = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPT_EXTRACT"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Initialize stats counters
	slog.Info("Initializing stats store...")
	stats, err := receipt.NewBoltStats(*statsPath)
	if err != nil {
		slog.Error("Failed to initialize stats store", "error", err)
		os.Exit(1)
	}
	defer stats.Close()

	// Initialize recognition engine based on type
	var recognizer ocr.Recognizer
	switch *engineType {
	case "azure":
		endpoint := *azureEndpoint
		if endpoint == "" {
			endpoint = os.Getenv("AZURE_CV_ENDPOINT")
		}
		apiKey := *azureKey
		if apiKey == "" {
			apiKey = os.Getenv("AZURE_CV_KEY")
		}
		slog.Info("Initializing Azure engine...", "endpoint", endpoint)
		recognizer, err = ocr.NewAzure(endpoint, apiKey)
		if err != nil {
			slog.Error("Failed to initialize Azure engine", "error", err)
			os.Exit(1)
		}
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini engine...", "model", *geminiModel)
		recognizer, err = ocr.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini engine", "error", err)
			os.Exit(1)
		}
	case "ollama":
		slog.Info("Initializing Ollama engine...", "url", *ollamaURL, "model", *ollamaModel)
		recognizer, err = ocr.NewOllama(*ollamaURL, *ollamaModel)
		if err != nil {
			slog.Error("Failed to initialize Ollama engine", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid engine type", "type", *engineType, "valid", "azure, gemini or ollama")
		os.Exit(1)
	}
	defer recognizer.Close()

	// Initialize uploads storage
	slog.Info("Initializing storage...")
	store, err := receipt.NewLocalStorage(*uploadsPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	// Initialize the extraction pipeline and service
	extractor := extract.NewExtractor(extract.NewSource(recognizer), *companySuffix)
	service := receipt.NewService(extractor, store, stats)

	// Initialize server
	basicAuth := receipt.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := receipt.NewServer(service, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
