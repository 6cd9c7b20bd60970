// internal/api/handler/assistant.go
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"mobivoice/internal/api/types"
	"mobivoice/internal/domain"
	"mobivoice/internal/nlp"
	"mobivoice/internal/repository"
	"mobivoice/internal/service"
	"mobivoice/internal/speech"
)

// DefaultTimeout bounds request handling, including the fallback responder's
// network call.
const DefaultTimeout = 15 * time.Second

// userIDHeader selects the target account; absent means the seeded account.
const userIDHeader = "X-User-ID"

// audioIDPattern accepts the opaque tokens generated for audio artifacts and
// nothing else, so the audio route cannot be used to walk the filesystem.
var audioIDPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// AssistantHandler handles HTTP requests for the command surface.
type AssistantHandler struct {
	service     service.AssistantService
	store       repository.SnapshotStore
	transcriber speech.Transcriber
	synthesizer speech.Synthesizer
	recognizer  nlp.Recognizer
	audioDir    string
	logger      *slog.Logger
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(
	svc service.AssistantService,
	store repository.SnapshotStore,
	transcriber speech.Transcriber,
	synthesizer speech.Synthesizer,
	recognizer nlp.Recognizer,
	audioDir string,
	logger *slog.Logger,
) *AssistantHandler {
	return &AssistantHandler{
		service:     svc,
		store:       store,
		transcriber: transcriber,
		synthesizer: synthesizer,
		recognizer:  recognizer,
		audioDir:    audioDir,
		logger:      logger.With("component", "api"),
	}
}

// Helper function to send JSON responses.
func (h *AssistantHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func (h *AssistantHandler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, types.ErrorResponse{Error: message})
}

// ProcessRequest represents the request body for a text command.
type ProcessRequest struct {
	Text string `json:"text"`
}

// Process handles a text command.
// POST /process
func (h *AssistantHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, `the "text" field is required`)
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		h.respondWithError(w, http.StatusBadRequest, "text cannot be empty")
		return
	}

	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		userID = domain.DefaultUserID
	}

	result := h.service.Process(r.Context(), userID, text)

	// Synthesis is best-effort: its failure never blocks the textual reply.
	var audioID *string
	if h.synthesizer.Available() {
		id, err := h.synthesizer.Synthesize(r.Context(), result.Reply)
		if err != nil {
			h.logger.Warn("speech synthesis failed", "error", err)
		} else if id != "" {
			audioID = &id
		}
	}

	h.respondWithJSON(w, http.StatusOK, types.ProcessResponse{
		Text:      text,
		Response:  result.Reply,
		AudioID:   audioID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Audio serves a synthesized audio artifact.
// GET /audio/{audioID}
func (h *AssistantHandler) Audio(w http.ResponseWriter, r *http.Request) {
	audioID := chi.URLParam(r, "audioID")
	if !audioIDPattern.MatchString(audioID) {
		h.respondWithError(w, http.StatusBadRequest, "invalid audio id")
		return
	}

	path := filepath.Join(h.audioDir, "response_"+audioID+".mp3")
	if _, err := os.Stat(path); err != nil {
		h.respondWithError(w, http.StatusNotFound, "audio file not found")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, path)
}

// Balance returns the balance summary of the resolved account.
// GET /balance
func (h *AssistantHandler) Balance(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		userID = domain.DefaultUserID
	}

	acc := h.service.Balances(userID)
	h.respondWithJSON(w, http.StatusOK, types.BalanceResponse{
		PrincipalBalance: acc.PrincipalBalance,
		AirtimeCredit:    acc.AirtimeCredit,
		DataAllowanceMB:  acc.DataAllowanceMB,
		LoyaltyBonus:     acc.LoyaltyBonus,
	})
}

// Health reports service status with one availability flag per optional
// subsystem. A missing subsystem never fails the probe; the service keeps
// serving whatever capabilities remain.
// GET /health
func (h *AssistantHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	persistence := h.store.Ping(ctx) == nil
	h.respondWithJSON(w, http.StatusOK, types.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services: map[string]bool{
			"speech":      h.transcriber.Available(),
			"nlp":         h.recognizer != nil && h.recognizer.Available(),
			"persistence": persistence,
		},
	})
}
