package handler

import (
	"net/http"
	"os"
	"sync"

	"github.com/drewfoos/rift-stats/internal/config"
	"github.com/drewfoos/rift-stats/internal/logging"
	"github.com/drewfoos/rift-stats/internal/server"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

var (
	once    sync.Once
	handler http.HandlerFunc
	initErr error
)

// Handler is the serverless entrypoint for net/http based platforms.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		var cfg *config.Config
		cfg, initErr = config.Load()
		if initErr != nil {
			return
		}
		log := logging.New(cfg, os.Stdout)
		handler = adaptor.FiberApp(server.Build(cfg, log))
	})

	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}
	handler(w, r)
}
