package router

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/pgmq"
	"app/internal/provider"
	"app/internal/pubsub"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (http.Handler, *sql.DB, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("App environment loaded")

	db, err := OpenDB(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	// Production pulls provider keys from Secret Manager, development
	// uses whatever is in the environment.
	if cfg.UseSecretManager {
		secrets, err := service.NewSecretManagerService(ctx, cfg, logger)
		if err != nil {
			logger.Fatal().Msgf("Failed to create Secret Manager client: %v", err)
			return nil, nil, err
		}
		defer secrets.Close()
		if err := secrets.ResolveProviderKeys(ctx, cfg); err != nil {
			logger.Fatal().Msgf("Failed to resolve provider keys: %v", err)
			return nil, nil, err
		}
	}

	// External providers
	gemini := provider.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel)
	catalog, err := provider.NewYouTubeCatalog(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		logger.Fatal().Msgf("Failed to create YouTube client: %v", err)
		return nil, nil, err
	}
	transcripts := provider.NewTranscriptClient(cfg.TranscriptServiceURL)
	search := provider.NewTavilySearch(cfg.TavilyAPIKey)

	var artifacts service.ArtifactStore = service.NopArtifactStore{}
	if cfg.S3Bucket != "" {
		artifacts, err = service.NewS3ArtifactStore(ctx, cfg, logger)
		if err != nil {
			logger.Fatal().Msgf("Failed to create artifact store: %v", err)
			return nil, nil, err
		}
	}

	var publisher pubsub.Publisher = pubsub.NopPublisher{}
	if cfg.GCPProjectID != "" {
		publisher, err = pubsub.NewPublisher(ctx, cfg)
		if err != nil {
			logger.Fatal().Msgf("Failed to create Pub/Sub publisher: %v", err)
			return nil, nil, err
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	// Repositories, services, handlers
	userRepo := repository.NewUserRepo(db)
	courseRepo := repository.NewCourseRepo(db)
	progressRepo := repository.NewProgressRepo(db)
	dlqRepo := repository.NewDLQRepository(db)
	queue := pgmq.New(db)

	generationSvc := service.NewGenerationService(gemini, artifacts, cfg, logger)
	enrichmentSvc := service.NewEnrichmentService(catalog, transcripts, generationSvc, cfg, logger)
	docsSvc := service.NewDocumentationService(search, cfg, logger)
	courseSvc := service.NewCourseService(courseRepo, userRepo, progressRepo, generationSvc, enrichmentSvc, docsSvc, queue, publisher, cfg, logger)
	userSvc := service.NewUserService(userRepo, cfg, logger)
	progressSvc := service.NewProgressService(progressRepo, courseRepo, logger)
	dlqSvc := service.NewDLQService(dlqRepo)

	authHandler := handler.NewAuthHandler(userSvc, validate, cfg.Environment != "development")
	courseHandler := handler.NewCourseHandler(courseSvc, progressSvc, validate)
	dlqHandler := handler.NewDLQHandler(dlqSvc)

	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)

	mux := http.NewServeMux()

	apiV1Mux := http.NewServeMux()
	authHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	courseHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	dlqHandler.RegisterRoutes(apiV1Mux)

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Mux))

	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"pong"}`))
	})

	mux.HandleFunc("/swagger/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger/swagger.json")
	})
	mux.Handle("/swagger/", http.StripPrefix("/swagger/", http.FileServer(http.Dir("./docs/swagger/swagger-ui"))))

	allowedOrigins := []string{"*"}
	if cfg.AllowedOrigins != "" {
		allowedOrigins = strings.Split(cfg.AllowedOrigins, ",")
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(c.Handler(mux)), db, nil
}

// OpenDB opens the connection pool shared by the API and the worker.
func OpenDB(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	dsn := cfg.DBConnectionString
	// Local development disables SSL unless the DSN says otherwise. In
	// production the connection string carries its own SSL settings.
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := " "
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			if strings.Contains(dsn, "?") {
				separator = "&"
			} else {
				separator = "?"
			}
		}
		dsn += separator + "sslmode=disable"
	}
	// Transaction poolers like pgbouncer break server-side prepared
	// statements, so force the simple query protocol outside development.
	if cfg.Environment != "development" && !strings.Contains(dsn, "prefer_simple_protocol") {
		separator := "&"
		if !strings.Contains(dsn, "?") {
			separator = "?"
		}
		dsn += separator + "prefer_simple_protocol=true"
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Fatal().Msgf("Failed to open DB connection: %v", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		logger.Fatal().Msgf("Failed to ping DB: %v", err)
		return nil, err
	}
	logger.Info().Msg("Database connection successful")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}
