// Package api provides the HTTP API for running and querying
// negotiations. GET endpoints are public (read-only observation);
// POST endpoints require a bearer token.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/bazaar/internal/agent"
	"github.com/talgya/bazaar/internal/persistence"
	"github.com/talgya/bazaar/internal/product"
	"github.com/talgya/bazaar/internal/session"
)

// Server serves negotiation runs and stored outcomes over HTTP.
type Server struct {
	DB       *persistence.DB
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
	Seed     int64

	started time.Time
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	s.started = time.Now()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/sessions", s.handleSessions)
	mux.HandleFunc("/api/v1/negotiate", s.adminOnly(s.handleNegotiate))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// adminOnly gates POST endpoints behind the bearer token.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled", http.StatusForbidden)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stored := 0
	if s.DB != nil {
		if n, err := s.DB.Count(); err == nil {
			stored = n
		}
	}
	writeJSON(w, map[string]any{
		"status":          "ok",
		"uptime_seconds":  int(time.Since(s.started).Seconds()),
		"sessions_stored": stored,
	})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "persistence disabled", http.StatusServiceUnavailable)
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	rows, err := s.DB.Recent(limit)
	if err != nil {
		slog.Error("query sessions failed", "error", err)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, rows)
}

type negotiateRequest struct {
	Product     product.Product `json:"product"`
	BuyerBudget int             `json:"buyer_budget"`
	SellerFloor int             `json:"seller_floor"`
	Seed        *int64          `json:"seed,omitempty"`
}

// handleNegotiate runs one buyer-vs-seller negotiation from request
// parameters, stores the outcome when persistence is enabled, and
// returns it.
func (s *Server) handleNegotiate(w http.ResponseWriter, r *http.Request) {
	var req negotiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if req.Product.MarketPrice <= 0 || req.BuyerBudget <= 0 || req.SellerFloor <= 0 {
		http.Error(w, "market_price, buyer_budget and seller_floor must be positive", http.StatusBadRequest)
		return
	}

	seed := s.Seed
	if req.Seed != nil {
		seed = *req.Seed
	}
	buyer := agent.NewBuyer("Strategist", agent.RandomPhrases(seed))
	seller := agent.NewSeller("Persuader", agent.RandomPhrases(seed+1))

	sess := session.New(req.Product, req.BuyerBudget, req.SellerFloor, buyer, seller)
	outcome := sess.Run()

	if s.DB != nil {
		if err := s.DB.Save(outcome); err != nil {
			slog.Error("save session failed", "error", err)
		}
	}
	writeJSON(w, outcome)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}
