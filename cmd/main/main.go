package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	openaiclient "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	qdrantclient "github.com/qdrant/go-client/qdrant"
	redisclient "github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	weaviateclient "github.com/weaviate/weaviate-go-client/v5/weaviate"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"smartdoc"
	"smartdoc/adapter/document"
	"smartdoc/adapter/filestorage"
	"smartdoc/adapter/googlegenai"
	"smartdoc/adapter/openai"
	"smartdoc/adapter/pdf"
	"smartdoc/adapter/qdrant"
	"smartdoc/adapter/redis"
	"smartdoc/adapter/rest"
	"smartdoc/adapter/store"
	"smartdoc/adapter/text"
	"smartdoc/adapter/weaviate"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	// Connect to the database and run migrations
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=rwc&cache=shared", viper.GetString("db.path")))
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	if err := smartdoc.Migrate(db, viper.GetString("db.migrations.path")); err != nil {
		return err
	}

	// The sentence tokenizer splits extracted text into passages
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return fmt.Errorf("sentence tokenizer: %w", err)
	}

	// The genai client gets the API key from the environment variable `GEMINI_API_KEY`.
	genaiClient, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fmt.Errorf("genai client: %w", err)
	}
	openaiClient := openaiclient.NewClient(
		option.WithAPIKey(viper.GetString("openai.api_key")),
	)

	embedder, err := newEmbedder(genaiClient, openaiClient, logger)
	if err != nil {
		return err
	}
	generative, err := newGenerative(genaiClient, openaiClient, logger)
	if err != nil {
		return err
	}
	retriever, err := newRetriever(ctx, logger)
	if err != nil {
		return err
	}

	files, err := filestorage.New(
		filestorage.WithDir(viper.GetString("filestorage.dir")),
		filestorage.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("filestorage adapter: %w", err)
	}

	pdfExtractor, err := newPDFExtractor(genaiClient, tokenizer, logger)
	if err != nil {
		return err
	}

	service := smartdoc.New(
		embedder,
		retriever,
		generative,
		store.New(db),
		files,
		smartdoc.WithExtractor("application/pdf", pdfExtractor),
		smartdoc.WithExtractor("text/plain", text.New(tokenizer, text.WithLogger(logger))),
		smartdoc.WithMaxChunkSize(viper.GetInt("chunk.max_size")),
	)

	stopProcessing := service.ProcessDocuments(ctx)

	mux := http.NewServeMux()
	rest.New(service).RegisterHandlers(mux)

	address := fmt.Sprintf("%s:%s", viper.GetString("server.host"), viper.GetString("server.port"))
	httpServer := &http.Server{
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      65 * time.Second,
		IdleTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		Addr:              address,
		Handler:           mux,
	}

	log.Println("listening on", address)

	go func() {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
		log.Println("Stopped serving new connections.")
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP shutdown error: %w", err)
	}

	cancel()
	stopProcessing()

	log.Println("Graceful shutdown complete.")
	return nil
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", "9020")
	viper.SetDefault("db.path", "db.sqlite")
	viper.SetDefault("db.migrations.path", "db/migrations")
	viper.SetDefault("filestorage.dir", os.TempDir())
	viper.SetDefault("chunk.max_size", smartdoc.DefaultMaxChunkSize)
	viper.SetDefault("vector.dim", 768)
	viper.SetDefault("extract.adapter", "pdf")
	viper.SetDefault("embed.adapter", "google-genai")
	viper.SetDefault("retrieve.adapter", "weaviate")
	viper.SetDefault("generate.adapter", "google-genai")
	viper.SetDefault("weaviate.host", "localhost:9035")
	viper.SetDefault("weaviate.scheme", "http")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("qdrant.host", "localhost")
	viper.SetDefault("qdrant.port", 6334)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal("read config: ", err)
		}
	}
}

func newEmbedder(genaiClient *genai.Client, openaiClient openaiclient.Client, logger *zap.Logger) (smartdoc.Embedder, error) {
	switch adapter := viper.GetString("embed.adapter"); adapter {
	case "google-genai":
		return googlegenai.New(genaiClient, googlegenai.WithLogger(logger)), nil
	case "openai":
		return openai.New(openaiClient, openai.WithLogger(logger)), nil
	default:
		return nil, fmt.Errorf("unknown embed adapter: %s", adapter)
	}
}

func newGenerative(genaiClient *genai.Client, openaiClient openaiclient.Client, logger *zap.Logger) (smartdoc.Generative, error) {
	switch adapter := viper.GetString("generate.adapter"); adapter {
	case "google-genai":
		return googlegenai.New(genaiClient, googlegenai.WithLogger(logger)), nil
	case "openai":
		return openai.New(openaiClient, openai.WithLogger(logger)), nil
	default:
		return nil, fmt.Errorf("unknown generate adapter: %s", adapter)
	}
}

func newRetriever(ctx context.Context, logger *zap.Logger) (smartdoc.Retriever, error) {
	vectorDim := viper.GetInt("vector.dim")

	switch adapter := viper.GetString("retrieve.adapter"); adapter {
	case "weaviate":
		client, err := weaviateclient.NewClient(weaviateclient.Config{
			Host:   viper.GetString("weaviate.host"),
			Scheme: viper.GetString("weaviate.scheme"),
		})
		if err != nil {
			return nil, fmt.Errorf("weaviate client: %w", err)
		}
		return weaviate.New(ctx, client,
			weaviate.WithVectorDim(vectorDim),
			weaviate.WithLogger(logger),
		)
	case "redis":
		client := redisclient.NewClient(&redisclient.Options{
			Addr:     viper.GetString("redis.addr"),
			DB:       0,
			Protocol: 2,
		})
		return redis.New(ctx, client,
			redis.WithVectorDim(vectorDim),
			redis.WithLogger(logger),
		)
	case "qdrant":
		client, err := qdrantclient.NewClient(&qdrantclient.Config{
			Host: viper.GetString("qdrant.host"),
			Port: viper.GetInt("qdrant.port"),
		})
		if err != nil {
			return nil, fmt.Errorf("qdrant client: %w", err)
		}
		return qdrant.New(ctx, client,
			qdrant.WithVectorDim(vectorDim),
			qdrant.WithLogger(logger),
		)
	default:
		return nil, fmt.Errorf("unknown retrieve adapter: %s", adapter)
	}
}

func newPDFExtractor(genaiClient *genai.Client, tokenizer sentences.SentenceTokenizer, logger *zap.Logger) (smartdoc.Extractor, error) {
	switch adapter := viper.GetString("extract.adapter"); adapter {
	case "pdf":
		return pdf.New(tokenizer, pdf.WithLogger(logger)), nil
	case "document":
		return document.New(genaiClient, tokenizer, document.WithLogger(logger)), nil
	default:
		return nil, fmt.Errorf("unknown extract adapter: %s", adapter)
	}
}
