package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"filmdesk/internal/config"
	"filmdesk/internal/handlers"
	"filmdesk/internal/llm"
	"filmdesk/internal/mail"
	"filmdesk/internal/metrics"
	"filmdesk/internal/middlewares"
	"filmdesk/internal/routes"
	"filmdesk/internal/services"
	"filmdesk/internal/session"
)

// Stores are the persistence dependencies of the API.
type Stores struct {
	Users         services.UserStore
	Projects      services.ProjectStore
	Schedule      services.ScheduleStore
	Expenses      services.ExpenseStore
	Assets        services.AssetStore
	Scenes        services.SceneStore
	Conversations services.ConversationStore
}

// Deps is everything NewRouter wires together. LLM, Predictor, Mailer,
// Revoker and Metrics are optional.
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Stores    Stores
	LLM       llm.Client
	Predictor services.Predictor
	Mailer    mail.Sender
	Revoker   session.Revoker
	Metrics   *metrics.Metrics
}

// NewRouter builds the gin engine with every service and handler.
func NewRouter(d Deps) *gin.Engine {
	cfg, logger := d.Config, d.Logger

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger(logger.Named("http")))
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	var observer services.PredictionObserver
	client := d.LLM
	if d.Metrics != nil {
		router.Use(middlewares.Metrics(d.Metrics))
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
		observer = d.Metrics
		if client != nil {
			client = llm.WithRecorder(client, d.Metrics)
		}
	}

	sessions := session.NewManager(cfg.SecretKey, cfg.IsProduction(), d.Revoker)
	authenticate := middlewares.Authenticate(sessions, logger.Named("auth"))

	s := d.Stores
	var mailer mail.Sender
	if cfg.Mail.ConfirmationActive() {
		mailer = d.Mailer
	}
	authService := services.NewAuthService(s.Users, mailer, services.AuthConfig{
		RequireConfirmation: mailer != nil,
		ConfirmationSecret:  []byte(cfg.SecretKey),
		PublicBaseURL:       cfg.PublicBaseURL,
	}, logger)

	h := routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService, sessions, logger.Named("auth")),
		User:    handlers.NewUserHandler(services.NewUserService(s.Users)),
		Project: handlers.NewProjectHandler(services.NewProjectService(s.Projects)),
		Analysis: handlers.NewAnalysisHandler(
			services.NewAnalysisService(s.Projects, client, logger),
			services.NewBudgetService(s.Projects, d.Predictor, observer, logger),
		),
		Copilot:  handlers.NewCopilotHandler(services.NewCopilotService(s.Projects, s.Conversations, s.Expenses, client, logger)),
		Schedule: handlers.NewScheduleHandler(services.NewScheduleService(s.Projects, s.Schedule)),
		Expense:  handlers.NewExpenseHandler(services.NewExpenseService(s.Projects, s.Expenses)),
		Asset:    handlers.NewAssetHandler(services.NewAssetService(s.Projects, s.Assets)),
		Scene:    handlers.NewSceneHandler(services.NewSceneService(s.Projects, s.Scenes)),
	}
	if cfg.Google.Enabled() {
		h.GoogleAuth = handlers.NewGoogleAuthHandler(
			services.NewGoogleAuthService(s.Users), cfg.Google.OAuthConfig(), sessions, cfg.IsProduction())
	}

	routes.RegisterRoutes(router, h, authenticate)
	return router
}

func corsConfig(origins string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if strings.TrimSpace(origins) == "*" || strings.TrimSpace(origins) == "" {
		c.AllowOriginFunc = func(string) bool { return true }
		return c
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			c.AllowOrigins = append(c.AllowOrigins, o)
		}
	}
	return c
}
