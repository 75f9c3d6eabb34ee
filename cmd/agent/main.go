package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"data_agent/internal/config"
	"data_agent/internal/llm"
	"data_agent/internal/publisher"
	"data_agent/internal/service"
	"data_agent/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dataFile := flag.String("file", "", "path to a JSON array of records to ingest")
	question := flag.String("question", "", "natural-language question to answer")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	if *dataFile == "" && *question == "" {
		logger.Error("nothing to do: pass -file and/or -question")
		os.Exit(1)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *dataFile != "" {
		if err := runIngest(ctx, cfg, db, *dataFile, logger); err != nil {
			os.Exit(1)
		}
	}

	if *question != "" {
		if err := runAsk(ctx, cfg, db, *question, logger); err != nil {
			os.Exit(1)
		}
	}
}

func runIngest(ctx context.Context, cfg *config.Config, db *sqlx.DB, path string, logger *slog.Logger) error {
	// Publishing is optional: no broker URL means no event stream.
	var pub service.Publisher
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			return err
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	ingest := service.NewIngestService(
		postgres.NewPostStore(db),
		postgres.NewCommentStore(db),
		postgres.NewTransactionManager(db),
		pub,
		logger,
	)

	f, err := os.Open(path)
	if err != nil {
		logger.Error("failed to open data file", "path", path, "error", err)
		return err
	}
	defer f.Close()

	stats, err := ingest.IngestReader(ctx, f)
	if err != nil {
		logger.Error("ingest finished with errors", "error", err)
		if stats == nil {
			return err
		}
	}
	return nil
}

func runAsk(ctx context.Context, cfg *config.Config, db *sqlx.DB, question string, logger *slog.Logger) error {
	completer, err := llm.NewClient(llm.Config{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		Timeout: cfg.OpenAI.Timeout,
	})
	if err != nil {
		logger.Error("failed to create completion client", "error", err)
		return err
	}

	ask := service.NewAskService(completer, postgres.NewQueryStore(db), logger)

	answer, err := ask.Ask(ctx, question)
	if err != nil {
		logger.Error("failed to answer question", "error", err)
		return err
	}

	rows, err := json.MarshalIndent(answer.Rows, "", "  ")
	if err != nil {
		logger.Error("failed to render rows", "error", err)
		return err
	}

	fmt.Println("Generated SQL Query:")
	fmt.Println(answer.SQL)
	fmt.Println("\nQuery Results:")
	fmt.Println(string(rows))
	fmt.Println("\nExplanation:")
	fmt.Println(answer.Explanation)
	return nil
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
