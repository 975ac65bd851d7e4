package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/zkerkeb-class/pokedex-api-enteaunain/internal/auth"
	"github.com/zkerkeb-class/pokedex-api-enteaunain/internal/middleware"
	"github.com/zkerkeb-class/pokedex-api-enteaunain/internal/pokedex"
)

// RestServer serves the pokedex HTTP API.
type RestServer struct {
	router        *gin.Engine
	userRepo      auth.UserRepository
	pokemonRepo   pokedex.PokemonRepository
	tokens        *auth.TokenService
	port          string
	allowedOrigin string
}

// Config carries the collaborators of the REST server.
type Config struct {
	Port          int
	AllowedOrigin string
	UserRepo      auth.UserRepository
	PokemonRepo   pokedex.PokemonRepository
	Tokens        *auth.TokenService

	// DisableObservability skips the logging/otel/prometheus middleware.
	// Used by handler tests, which register the router repeatedly.
	DisableObservability bool
}

// NewRestServer builds the router with its middleware chain and routes.
func NewRestServer(config Config) *RestServer {
	if config.Port == 0 {
		config.Port = 3000
	}
	if config.AllowedOrigin == "" {
		config.AllowedOrigin = "*"
	}

	gin.SetMode(gin.ReleaseMode)

	router := gin.New() // no default logger/recovery
	router.Use(gin.Recovery())

	if !config.DisableObservability {
		loggerMw := middleware.NewRequestLogger()
		router.Use(loggerMw.Handler())

		router.Use(otelgin.Middleware("pokedex_api"))

		promMw := middleware.NewPrometheusMiddleware("pokedex_api")
		router.Use(promMw.Handler())
		promMw.RegisterMetricsEndpoint(router)
	}

	server := &RestServer{
		router:        router,
		userRepo:      config.UserRepo,
		pokemonRepo:   config.PokemonRepo,
		tokens:        config.Tokens,
		port:          fmt.Sprintf(":%d", config.Port),
		allowedOrigin: config.AllowedOrigin,
	}

	server.setupRoutes()

	return server
}

func (rs *RestServer) setupRoutes() {
	// CORS middleware
	rs.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", rs.allowedOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Catalog: reads are public, mutations are admin-only.
	pokemons := rs.router.Group("/pokemons")
	{
		pokemons.GET("", rs.handleListPokemons)
		pokemons.GET("/types", rs.handleGetTypes)
		pokemons.GET("/:id", rs.handleGetPokemon)

		admin := pokemons.Group("")
		admin.Use(rs.authMiddleware(), rs.adminMiddleware())
		{
			admin.POST("", rs.handleCreatePokemon)
			admin.PUT("/:id", rs.handleUpdatePokemon)
			admin.DELETE("/:id", rs.handleDeletePokemon)
		}
	}

	// Accounts: register/login are public, the rest needs a valid token.
	authGroup := rs.router.Group("/auth")
	{
		authGroup.POST("/register", rs.handleRegister)
		authGroup.POST("/login", rs.handleLogin)

		protected := authGroup.Group("")
		protected.Use(rs.authMiddleware())
		{
			protected.GET("/profile", rs.handleProfile)
			protected.PUT("/setScore", rs.handleSetScore)
			protected.GET("/getScore", rs.handleGetScore)
		}
	}

	// Health check
	rs.router.GET("/health", rs.handleHealth)
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// Router exposes the underlying gin engine for tests.
func (rs *RestServer) Router() *gin.Engine {
	return rs.router
}

// Start runs the HTTP server on the configured port.
func (rs *RestServer) Start() error {
	return rs.router.Run(rs.port)
}
