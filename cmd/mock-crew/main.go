// Command mock-crew runs a deterministic crew service stand-in for
// local development and end-to-end testing of the gateway. It answers
// every kickoff with a canned reply derived from the query.
//
// Configuration:
//
//	MOCK_CREW_PORT - Listen port (default: 9090)
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

func main() {
	port := os.Getenv("MOCK_CREW_PORT")
	if port == "" {
		port = "9090"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /kickoff", handleKickoff)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	srv := &http.Server{Addr: ":" + port, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("mock crew starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("mock crew failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("mock crew shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

type kickoffRequest struct {
	Query string `json:"query"`
}

type kickoffResponse struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// handleKickoff produces a predictable result so gateway behavior can be
// asserted end to end. A query containing "fail" triggers an error
// response for exercising the gateway's failure path.
func handleKickoff(w http.ResponseWriter, r *http.Request) {
	var req kickoffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(kickoffResponse{Error: "invalid request body"})
		return
	}

	slog.Info("kickoff", "query", req.Query)

	if strings.Contains(strings.ToLower(req.Query), "fail") {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(kickoffResponse{Error: "simulated pipeline failure"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(kickoffResponse{
		Result: "Retrieved context suggests: " + req.Query,
	})
}
