package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//ingestion
	ChunkSizeWords       = 400
	ChunkOverlapSentence = 50
	ScannedPageMinChars  = 40 //below this a page is treated as scanned
	PageExtractTimeout   = 10 * time.Second
	PreviewLength        = 300

	//retrieval
	DefaultTopK          = 5
	TeacherTopK          = 3
	MinScoreThreshold    = 0.55
	ConfidenceHighCutoff = 0.72
	ConfidenceMedCutoff  = 0.60
	ContextChunkCount    = 3
	EvidenceSnippetRunes = 200
	FallbackAnswerRunes  = 500

	//conversational rewriting
	ShortQuestionTokenLimit = 8
	HistoryPromptTurns      = 4
	StoredHistoryTailTurns  = 8

	MaxWorkerCount    int64 = 10
	MinWorkerCount    int64 = 1
	IdleWorkerTimeout       = 1 * time.Minute
	//IdleWorkerTimeout = 1 * time.Second //fo tests

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":8000"

	//job requests buffer limit
	BufferLimit = 100
	JobTimeout  = 60 * time.Second

	//embeddings
	GoogleEmbeddingModel = "gemini-embedding-001"
	EmbeddingCallTimeout = 15 * time.Second
	EmbeddingRetryDelay  = 5 * time.Second

	//ocr
	GeminiOCRModel = "gemini-2.5-flash-lite"

	//llm
	GroqBaseURL             = "https://api.groq.com/openai/v1"
	GroqModelName           = "llama-3.3-70b-versatile"
	GroundedTemperature     = 0.3
	GroundedMaxTokens       = 512
	TeacherTemperature      = 0.5
	TeacherMaxTokens        = 600
	NotFoundAnswer          = "Not found in your notes."
	RetryAnswer             = "Could not generate answer. Please try again."
	TeacherUnavailableReply = "I'm having trouble connecting to my knowledge base. Can you try asking that again?"
	TeacherNoNotesReply     = "It looks like you haven't uploaded any notes for this subject yet. Please upload some files first so I can teach you from them!"

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	//redis has 16 DB we can use
	RedisJobStore  = 0
	RedisChatStore = 1

	//redis timeouts
	RedisJobStoreTTL  = 24 * time.Hour
	RedisChatStoreTTL = 24 * time.Hour

	//filesystem layout
	UploadDir = "uploads"
	IndexDir  = "index"
)

// Subjects is the closed set of recognized subject namespaces. Uploads and
// questions against anything else are rejected at the handler.
var Subjects = []string{"subject1", "subject2", "subject3"}

// IsValidSubject reports whether the identifier is one of the fixed namespaces.
func IsValidSubject(subject string) bool {
	for _, s := range Subjects {
		if s == subject {
			return true
		}
	}
	return false
}

// CORSAllowedOrigins mirrors the origins the study frontend is served from.
var CORSAllowedOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}
