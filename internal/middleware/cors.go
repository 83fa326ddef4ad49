package middleware

import (
	"net/http"

	"github.com/askmynotes/notes-api/internal/config"
)

// setCorsHeaders reflects the Origin header back when it is one of the
// frontend origins. Non-browser clients send no Origin and skip this.
func setCorsHeaders(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" || !originAllowed(origin) {
		return
	}
	headers := w.Header()
	headers.Set("Access-Control-Allow-Origin", origin)
	headers.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	headers.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Trace-Id")
	headers.Set("Vary", "Origin")
}

// CorsPreflight answers OPTIONS requests for every route.
func CorsPreflight(w http.ResponseWriter, r *http.Request) {
	setCorsHeaders(w, r)
	w.WriteHeader(http.StatusNoContent)
}

func originAllowed(origin string) bool {
	for _, allowed := range config.CORSAllowedOrigins {
		if allowed == origin {
			return true
		}
	}
	return false
}
