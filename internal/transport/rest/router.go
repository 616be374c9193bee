package rest

import (
	"mediaplanner/internal/catalog"
	"mediaplanner/internal/config"
	"mediaplanner/internal/platform/logger"
	"mediaplanner/internal/service"
	"mediaplanner/internal/transport/rest/handler"
	"mediaplanner/internal/transport/rest/middleware"
	"mediaplanner/internal/transport/ws"
	"net/http"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	Catalog         *catalog.Catalog
	CORS            config.CORSConfig
	Log             *logger.Logger
	AuthService     *service.AuthService
	PlannerService  *service.PlannerService
	ProgressService *service.ProgressService
	ChatService     *service.ChatService
	AIService       *service.AIService
	CsvService      *service.CsvService
	BriefService    *service.BriefService
	WSHub           *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService, c.Log)
	chatHandler := handler.NewChatHandler(c.ChatService, c.Log)
	plannerHandler := handler.NewPlannerHandler(c.PlannerService, c.Catalog, c.Log)
	progressHandler := handler.NewProgressHandler(c.ProgressService, c.Log)
	csvHandler := handler.NewCsvHandler(c.CsvService, c.Log)
	aiHandler := handler.NewAIHandler(c.AIService, c.Log)
	briefHandler := handler.NewBriefHandler(c.BriefService, c.Log)
	wsHandler := ws.NewHandler(c.WSHub, c.ProgressService, c.Log)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS first so preflight requests never reach the handlers
	r.Use(middleware.CORS(c.CORS.AllowedOrigins, c.CORS.AllowedMethods, c.CORS.AllowedHeaders))
	r.Use(middleware.Logging(c.Log))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/chat", chatHandler.Ask).Methods("POST", "OPTIONS")
	v1.HandleFunc("/planner", plannerHandler.GetStep).Methods("GET", "OPTIONS")
	v1.HandleFunc("/planner", plannerHandler.Recommend).Methods("POST", "OPTIONS")
	v1.HandleFunc("/planner/steps/{stepId}", plannerHandler.GetStep).Methods("GET", "OPTIONS")
	v1.HandleFunc("/planner/sessions/{id}", plannerHandler.GetSession).Methods("GET", "OPTIONS")
	v1.HandleFunc("/planner/progress", progressHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/planner/progress/{id}", progressHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/planner/progress/{id}/answers", progressHandler.Answer).Methods("POST", "OPTIONS")
	v1.HandleFunc("/reference-data", plannerHandler.ReferenceData).Methods("GET", "OPTIONS")
	v1.HandleFunc("/map-csv", csvHandler.Map).Methods("POST", "OPTIONS")
	v1.HandleFunc("/gemini", aiHandler.Generate).Methods("POST", "OPTIONS")
	v1.HandleFunc("/summarize", aiHandler.Summarize).Methods("POST", "OPTIONS")
	v1.HandleFunc("/briefs", briefHandler.Create).Methods("POST", "OPTIONS")

	// WebSocket wizard
	v1.HandleFunc("/ws/planner", wsHandler.PlannerWS).Methods("GET", "OPTIONS")

	// Admin routes (require admin auth)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/briefs", briefHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/briefs/{id}", briefHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/admin/sessions", plannerHandler.ListSessions).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/admin/stats", plannerHandler.Stats).Methods("GET", "OPTIONS")

	return r
}
