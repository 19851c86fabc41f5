package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

type waiverReq struct {
	RuleID     string `json:"rule_id"`
	File       string `json:"file,omitempty"`
	Symbol     string `json:"symbol,omitempty"`
	PatternSub string `json:"pattern_sub,omitempty"`
	Reason     string `json:"reason"`
	ExpiresAt  string `json:"expires_at"` // RFC3339
}

func (s *Server) handleListWaivers(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") != "false"
	items, err := s.DB.ListWaivers(activeOnly)
	if err != nil {
		s.err(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "active_only": activeOnly})
}

func (s *Server) handleCreateWaiver(w http.ResponseWriter, r *http.Request) {
	var in waiverReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.err(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.RuleID == "" || in.Reason == "" {
		s.err(w, http.StatusBadRequest, "rule_id and reason are required")
		return
	}
	exp, err := time.Parse(time.RFC3339, in.ExpiresAt)
	if err != nil {
		s.err(w, http.StatusBadRequest, "expires_at must be RFC3339")
		return
	}
	u, _ := userFromCtx(r.Context())
	id, err := s.DB.CreateWaiver(in.RuleID, in.File, in.Symbol, in.PatternSub, in.Reason, u.Username, exp)
	if err != nil {
		s.err(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleRevokeWaiver(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.err(w, http.StatusBadRequest, "bad waiver id")
		return
	}
	if err := s.DB.RevokeWaiver(id); err != nil {
		s.err(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
