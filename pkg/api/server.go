package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/tmorrisey/pairs/pkg/api/handlers"
	"github.com/tmorrisey/pairs/pkg/log"
	"github.com/tmorrisey/pairs/pkg/repositories"
	"github.com/tmorrisey/pairs/pkg/sessions"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port           int
	TLS            *TLSConfig
	SessionManager *sessions.Manager
	Repository     repositories.Repository
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	router := mux.NewRouter()
	router.HandleFunc("/sessions", handlers.HandleCreateSession(opts.SessionManager)).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{sessionID}", handlers.HandleGetSession(opts.SessionManager)).Methods(http.MethodGet)
	router.HandleFunc("/sessions/{sessionID}", handlers.HandleDeleteSession(opts.SessionManager)).Methods(http.MethodDelete)
	router.HandleFunc("/sessions/{sessionID}/events", handlers.HandlePostEvent(opts.SessionManager)).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{sessionID}/ws", handlers.HandleSessionSocket(opts.SessionManager)).Methods(http.MethodGet)
	if opts.Repository != nil {
		router.HandleFunc("/leaderboard", handlers.HandleLeaderboard(opts.Repository)).Methods(http.MethodGet)
		router.HandleFunc("/leaderboard/{boardSize}", handlers.HandleBestResults(opts.Repository)).Methods(http.MethodGet)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
