package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"thumbnailbot/application"

	log "github.com/sirupsen/logrus"
)

// DebugCommand represents a debug command sent via HTTP
type DebugCommand struct {
	Action string            `json:"action"`
	Params map[string]string `json:"params"`
}

// DebugResponse represents the response from a debug command
type DebugResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// debugBackend is what the debug API drives
type debugBackend interface {
	ConnectedGuilds(ctx context.Context) []GuildInfo
	SyncGuildRoster(ctx context.Context, guildID int64) (*application.SyncSummary, error)
}

// NewDebugHandler builds the routes of the internal debug API
func NewDebugHandler(backend debugBackend) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/debug/guilds", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		respondWithJSON(w, http.StatusOK, DebugResponse{
			Success: true,
			Data:    backend.ConnectedGuilds(r.Context()),
		})
	})

	mux.HandleFunc("/debug/command", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var cmd DebugCommand
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			respondWithError(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		switch cmd.Action {
		case "sync":
			guildID, err := strconv.ParseInt(cmd.Params["guild_id"], 10, 64)
			if err != nil {
				respondWithError(w, "Missing or invalid guild_id", http.StatusBadRequest)
				return
			}

			summary, err := backend.SyncGuildRoster(r.Context(), guildID)
			if err != nil {
				respondWithError(w, fmt.Sprintf("Failed to sync roster: %v", err), http.StatusInternalServerError)
				return
			}

			respondWithJSON(w, http.StatusOK, DebugResponse{
				Success: true,
				Message: "Roster synced",
				Data:    summary,
			})

		default:
			respondWithError(w, fmt.Sprintf("Unknown action: %s", cmd.Action), http.StatusBadRequest)
		}
	})

	return mux
}

// StartDebugAPI serves the debug API on localhost in the background
func (b *Bot) StartDebugAPI(port int) *http.Server {
	server := &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", port),
		Handler:      NewDebugHandler(b),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute, // roster sync pages through every member
	}

	go func() {
		log.Infof("Debug API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Debug API server error: %v", err)
		}
	}()

	return server
}

func respondWithJSON(w http.ResponseWriter, status int, response DebugResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Errorf("Failed to encode debug response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, message string, statusCode int) {
	respondWithJSON(w, statusCode, DebugResponse{
		Success: false,
		Error:   message,
	})
}
