package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/handler"

	"github.com/dscnitrourkela/project-nutella/config"
	"github.com/dscnitrourkela/project-nutella/internal/auth"
	"github.com/dscnitrourkela/project-nutella/internal/graph"
	"github.com/dscnitrourkela/project-nutella/internal/middleware"
	"github.com/dscnitrourkela/project-nutella/internal/repository"
	"github.com/dscnitrourkela/project-nutella/pkg/cache"
	"github.com/dscnitrourkela/project-nutella/pkg/database"
	"github.com/dscnitrourkela/project-nutella/pkg/identity"
	"github.com/dscnitrourkela/project-nutella/pkg/messaging"
)

func main() {
	cfg := config.Load()
	log.Println("Configuration loaded")

	mongoClient, err := database.NewMongoClient(&cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")
	defer mongoClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := mongoClient.EnsureIndexes(ctx); err != nil {
		log.Printf("Warning: Failed to create MongoDB indexes: %v", err)
	} else {
		log.Println("MongoDB indexes ensured")
	}
	cancel()

	sessionStore, redisClient := buildSessionStore(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	rabbitClient, err := messaging.NewRabbitMQClient(&cfg.RabbitMQ)
	if err != nil {
		log.Printf("Warning: Failed to connect to RabbitMQ: %v", err)
		rabbitClient = nil
	} else {
		log.Println("Connected to RabbitMQ")
		defer rabbitClient.Close()
	}

	verifier := buildVerifier(cfg)
	managerOpts := []auth.Option{}
	if cfg.Auth.DevKey != "" {
		if cfg.Server.Production {
			log.Fatal("DEV_KEY must not be set in a production configuration")
		}
		log.Println("Warning: development bypass key is enabled")
		managerOpts = append(managerOpts, auth.WithDevKey(cfg.Auth.DevKey, cfg.Auth.DevKeyExp))
	}
	authManager := auth.NewManager(verifier, managerOpts...)

	var publisher graph.Publisher
	if rabbitClient != nil {
		publisher = rabbitClient
	}

	resolver := graph.NewResolver(
		repository.NewUserRepository(mongoClient),
		repository.NewQuizRepository(mongoClient),
		repository.NewQuestionRepository(mongoClient),
		authManager,
		publisher,
	)

	schema, err := graph.NewSchema(resolver)
	if err != nil {
		log.Fatalf("Failed to build schema: %v", err)
	}

	graphqlHandler := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   !cfg.Server.Production,
		GraphiQL: cfg.Server.GraphiQL && !cfg.Server.Production,
	})

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "project-nutella",
		})
	})

	sessionMiddleware := middleware.Session(&cfg.Session, sessionStore, authManager)
	router.POST("/graphql", sessionMiddleware, gin.WrapH(graphqlHandler))
	router.GET("/graphql", sessionMiddleware, gin.WrapH(graphqlHandler))

	server := &http.Server{
		Addr:    ":" + cfg.Server.HTTPPort,
		Handler: router,
	}

	log.Printf("Server starting on port %s...", cfg.Server.HTTPPort)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func buildSessionStore(cfg *config.Config) (auth.Store, *cache.RedisClient) {
	switch cfg.Session.Store {
	case config.SessionStoreMemory:
		if cfg.Server.Production {
			log.Fatal("the memory session store must not be used in a production configuration")
		}
		log.Println("Warning: using the in-process session store")
		return auth.NewMemoryStore(cfg.Session.TTL), nil
	case config.SessionStoreRedis:
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis")
		return auth.NewRedisStore(redisClient, cfg.Session.TTL), redisClient
	default:
		log.Fatalf("Unknown session store: %q", cfg.Session.Store)
		return nil, nil
	}
}

func buildVerifier(cfg *config.Config) identity.Verifier {
	switch cfg.Auth.Strategy {
	case config.StrategyStub:
		if cfg.Server.Production {
			log.Fatal("stub verification must not be used in a production configuration")
		}
		log.Println("Warning: using stub token verification")
		return identity.NewStubVerifier("", time.Hour)
	case config.StrategyJWT:
		return identity.NewJWTVerifier(cfg.Auth.JWTSecret)
	default:
		log.Fatalf("Unknown auth strategy: %q", cfg.Auth.Strategy)
		return nil
	}
}
