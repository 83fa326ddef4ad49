// @title           AskMyNotes API
// @version         1.0
// @description     Retrieval-augmented question answering over uploaded study notes.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/askmynotes/notes-api/internal/config"
	"github.com/askmynotes/notes-api/internal/data/store"
	jobmodel "github.com/askmynotes/notes-api/internal/domain/jobModel"
	"github.com/askmynotes/notes-api/internal/handlers"
	"github.com/askmynotes/notes-api/internal/job"
	"github.com/askmynotes/notes-api/internal/middleware"
	"github.com/askmynotes/notes-api/internal/rag"
	"github.com/askmynotes/notes-api/internal/rag/embedding/googleEmbedding"
	"github.com/askmynotes/notes-api/internal/rag/ingest"
	"github.com/askmynotes/notes-api/internal/rag/llm/groq"
	"github.com/askmynotes/notes-api/internal/rag/ocr/geminiOCR"
	"github.com/askmynotes/notes-api/internal/rag/vectorDB/fileIndex"
	"github.com/askmynotes/notes-api/internal/server"
	"github.com/askmynotes/notes-api/internal/worker"
	"github.com/askmynotes/notes-api/pkg/logger_i"
)

var (
	listenAddr        string
	configPath        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&configPath, "config", "", "optional yaml config path")
	flag.StringVar(&listenAddr, "listen-addr", "", "server listen address")
	flag.Parse()

	settings, err := config.Load(configPath)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		return
	}
	if listenAddr == "" {
		listenAddr = settings.ListenAddr
	}
	if settings.RedisAddr != "" {
		os.Setenv("REDIS_ADDR", settings.RedisAddr)
	}

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service with job and chat stores
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")

	jobStore := store.GetRedisJobStore(serviceContext)
	chatStore := store.GetRedisChatStore(serviceContext)
	if jobStore == nil || chatStore == nil {
		logger.Error("Redis stores are offline")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.ChatStore = store.InitInMemoryChatStore()
	} else {
		serviceConfig.JobStore = jobStore
		serviceConfig.ChatStore = chatStore
	}
	service := job.InitJobService(serviceConfig)

	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, settings.GeminiAPIKey)
	ocrService := geminiOCR.GetGeminiOCRClient(serviceContext, config.GeminiOCRModel, settings.GeminiAPIKey)
	llmProvider := groq.GetGroqClient(config.GroqBaseURL, settings.GroqAPIKey, config.GroqModelName)

	if embeddingService == nil || ocrService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "EmbeddingService", embeddingService != nil, "OCRService", ocrService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	indexStore, err := fileIndex.NewStore(settings.IndexDir, embeddingService)
	if err != nil {
		logger.Error("Failed to open index directory", "error", err)
		return
	}

	ragService := rag.NewService(indexStore, llmProvider, embeddingService, ingest.NewExtractor(ocrService))

	handlers.InitHandlers(service, ragService, settings.UploadDir)
	middleware.InitAuth(settings.AuthToken)

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
