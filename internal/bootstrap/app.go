// Package bootstrap builds the application dependency graph: config,
// database, object store, queue, LLM client, services, handlers, router.
// Every entrypoint (api, worker, lambda) goes through Build.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/extraction"
	"screening-backend/internal/llm"
	openai "screening-backend/internal/llm/openai"
	"screening-backend/internal/queue"
	"screening-backend/internal/resumes"
	"screening-backend/internal/screening"
	"screening-backend/internal/services/health"
	"screening-backend/internal/shared/config"
	"screening-backend/internal/shared/server"
	"screening-backend/internal/shared/storage/db"
	"screening-backend/internal/shared/storage/object"
	localstore "screening-backend/internal/shared/storage/object/local"
	s3store "screening-backend/internal/shared/storage/object/s3"
	"screening-backend/internal/signalcache"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Queue            queue.Client
	ResumesRepo      resumes.Repo
	RunsRepo         screening.Repo
	SignalCache      signalcache.Repo
	ResumesService   *resumes.Service
	Extraction       *extraction.Service
	ScreeningService *screening.Service
	RunProcessor     RunProcessor
	ResumesHandler   *resumes.Handler
	ScreeningHandler *screening.Handler
}

// RunProcessor allows callers to override run processing for tests.
type RunProcessor interface {
	Process(ctx context.Context, runID string) error
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		Health:           health.NewService(),
		ResumesHandler:   app.ResumesHandler,
		ScreeningHandler: app.ScreeningHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.SQSQueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var resumesRepo resumes.Repo
	var runsRepo screening.Repo
	var cache signalcache.Repo

	if app.DB != nil {
		resumesRepo = &resumes.PGRepo{DB: app.DB}
		runsRepo = &screening.PGRepo{DB: app.DB}
		cache = &signalcache.PGRepo{DB: app.DB}
	} else {
		resumesRepo = resumes.NewMemoryRepo()
		runsRepo = screening.NewMemoryRepo()
		cache = signalcache.NewMemoryRepo()
	}

	provider, err := llm.ParseProvider(app.Config.LLMProvider)
	if err != nil {
		return err
	}
	llmClient := llm.Client(llm.PlaceholderClient{})
	if provider == llm.ProviderOpenAI {
		openaiClient, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel)
		if err != nil {
			return err
		}
		llmClient = openaiClient
	}

	extractionSvc := extraction.NewService(llmClient)

	resumesSvc := &resumes.Service{
		Store: app.Store,
		Repo:  resumesRepo,
	}

	screeningSvc := &screening.Service{
		Repo:      runsRepo,
		Resumes:   resumesSvc,
		Extractor: extractionSvc,
		Cache:     cache,
		Jobs:      app.Queue,
		Provider:  string(provider),
		Model:     app.Config.LLMModel,
	}

	app.ResumesRepo = resumesRepo
	app.RunsRepo = runsRepo
	app.SignalCache = cache
	app.ResumesService = resumesSvc
	app.Extraction = extractionSvc
	app.ScreeningService = screeningSvc
	app.RunProcessor = screeningSvc
	app.ResumesHandler = resumes.NewHandler(resumesSvc)
	app.ScreeningHandler = screening.NewHandler(screeningSvc)

	return nil
}
