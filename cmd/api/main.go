package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"proforma/internal/database"
	"proforma/internal/handler"
	"proforma/internal/repository"
	"proforma/internal/service"
	"proforma/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	store, err := newStore(dataDir)
	if err != nil {
		log.Fatalf("Storage initialization failed: %v", err)
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	undoWindow := service.DefaultUndoWindow
	if ms := os.Getenv("UNDO_WINDOW_MS"); ms != "" {
		if parsed, err := strconv.Atoi(ms); err == nil && parsed > 0 {
			undoWindow = time.Duration(parsed) * time.Millisecond
		}
	}

	// Set up stores (Repository -> Service -> Handler). A failed load is a
	// warning, not a crash: the session continues on in-memory state.
	settingsService, err := service.NewSettingsService(store, wsHub)
	if err != nil {
		log.Printf("WARNING: %v", err)
	}
	invoiceService, err := service.NewInvoiceService(store, service.NewValidator(), settingsService, wsHub)
	if err != nil {
		log.Printf("WARNING: %v", err)
	}
	templateService, err := service.NewTemplateService(store)
	if err != nil {
		log.Printf("WARNING: %v", err)
	}
	undoManager := service.NewUndoManager(invoiceService, undoWindow, wsHub)

	// Initialize Handlers
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, settingsService, undoManager, undoWindow)
	templateHandler := handler.NewTemplateHandler(templateService)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173,http://127.0.0.1:5173"
	}
	corsConfig.AllowOrigins = strings.Split(origins, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// Register API Routes
	invoiceHandler.RegisterRoutes(router.Group(""))
	templateHandler.RegisterRoutes(router.Group(""))
	settingsHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// newStore picks the persistence driver. Both drivers serialize the same
// JSON blob shapes, so switching between them needs no data migration.
func newStore(dataDir string) (repository.Store, error) {
	driver := os.Getenv("STORAGE_DRIVER")
	switch driver {
	case "", "file":
		log.Printf("Using JSON file storage in %s", dataDir)
		return repository.NewFileStore(dataDir)
	case "sqlite":
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, err
		}
		path := dataDir + "/proforma.db"
		db, err := database.NewConnection(path)
		if err != nil {
			return nil, err
		}
		log.Printf("Using SQLite storage at %s", path)
		return repository.NewSQLiteStore(db)
	default:
		log.Printf("Unknown STORAGE_DRIVER %q, falling back to in-memory store", driver)
		return repository.NewMemoryStore(), nil
	}
}
