package customHttpClient

import (
	"net/http"

	"github.com/askmynotes/notes-api/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// PooledClient returns a client reusing connections across generation calls.
func PooledClient() *http.Client {
	return &http.Client{Transport: customTransport}
}
