package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/bilal-bim/devbrain-ai/internal/library"
	"github.com/bilal-bim/devbrain-ai/internal/models"
)

func (s *Server) handleLibraryFeatures(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"features": library.Features(r.URL.Query().Get("category")),
		"packs":    library.PackIDs(),
	})
}

func (s *Server) handleLibraryPack(w http.ResponseWriter, r *http.Request) {
	pack, err := library.Pack(r.PathValue("packId"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"pack":    pack,
	})
}

func (s *Server) handleAddToProject(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		FeatureID string `json:"featureId"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeErrorString(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if payload.SessionID == "" || payload.FeatureID == "" {
		writeErrorString(w, http.StatusBadRequest, "sessionId and featureId are required")
		return
	}

	project, err := library.AddToProject(r.Context(), s.generator, payload.SessionID, payload.FeatureID)
	if errors.Is(err, library.ErrUnknownFeature) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"project":  project.Summary(),
		"features": project.Context.Features,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message string          `json:"message"`
		Context json.RawMessage `json:"context"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeErrorString(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		writeErrorString(w, http.StatusBadRequest, "Message is required")
		return
	}

	reply, err := s.advisor.Chat(r.Context(), payload.Message, contextText(payload.Context))
	if err != nil {
		log.Printf("❌ Chat failed: %v", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"response": reply,
	})
}

// contextText accepts either a JSON string or any JSON value as chat context
func contextText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return string(raw)
}

const healthCheckTimeout = 2 * time.Second

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, storeStatus := "ok", "ok"
	if s.storeCheck != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := s.storeCheck(ctx); err != nil {
			log.Printf("❌ Store health check failed: %v", err)
			status, storeStatus = "degraded", "unavailable"
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      status,
		"service":     "devbrain-ai",
		"version":     Version,
		"provider":    s.advisor.ProviderName(),
		"store":       s.storeName,
		"storeStatus": storeStatus,
		"stages":      models.Stages,
		"exports":     models.ExportFormats,
		"integrations": map[string]bool{
			"slack":  s.notifier != nil,
			"linear": s.linear != nil,
		},
	})
}
