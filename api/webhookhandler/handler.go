package webhookhandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/castproof/cast-attestation-webhook/api"
	"github.com/castproof/cast-attestation-webhook/attester"
	"github.com/castproof/cast-attestation-webhook/metrics"
)

// maxBodyBytes bounds the webhook body. Cast text is limited to a few hundred bytes.
const maxBodyBytes = 64 << 10

// Routes served by the handler. Both shapes are in use by deployed webhooks.
var Routes = []string{"/api/mint", "/mint"}

// AttestationService is the part of attester.Service the handler depends on.
type AttestationService interface {
	Authenticate(token string) error
	Submit(ctx context.Context, req *attester.Request) (*attester.Result, error)
}

// Handler receives cast webhooks and turns them into attestations.
type Handler struct {
	service       AttestationService
	metrics       *metrics.Recorder
	submitTimeout time.Duration
	log           *slog.Logger
}

// NewHandler creates the webhook handler. recorder may be nil.
//
// submitTimeout bounds each submission, including the wait for the receipt.
// It should be shorter than the server's WriteTimeout so the caller still
// gets an answer. Zero leaves the request context as the only bound.
func NewHandler(service AttestationService, recorder *metrics.Recorder, submitTimeout time.Duration, log *slog.Logger) *Handler {
	return &Handler{
		service:       service,
		metrics:       recorder,
		submitTimeout: submitTimeout,
		log:           log,
	}
}

// RegisterRoutes registers HandleMint on every route in Routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	for _, route := range Routes {
		r.HandleFunc(route, h.HandleMint)
	}
}

// HandleMint dispatches on the request method.
//
//   - POST: submit an attestation for the cast in the JSON body
//   - GET: liveness probe, returns api.LivenessMessage
//   - anything else: 400 Bad Request
//
// Status codes for POST:
//   - 200 OK: attestation submitted, body is api.MintResponse
//   - 400 Bad Request: malformed body, unknown or missing fields, invalid values
//   - 401 Unauthorized: token does not match the shared secret
//   - 500 Internal Server Error: service misconfigured or submission failed
func (h *Handler) HandleMint(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleSubmit(w, r)
	case http.MethodGet:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(api.LivenessMessage))
	default:
		http.Error(w, "Invalid request", http.StatusBadRequest)
	}
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	log := h.log.With("requestID", uuid.NewString())

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var body api.WebhookRequest
	if err := decoder.Decode(&body); err != nil {
		log.Warn("Invalid webhook body", "err", err)
		h.metrics.ObserveWebhook(metrics.ResultInvalid)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		log.Warn("Trailing data after webhook body")
		h.metrics.ObserveWebhook(metrics.ResultInvalid)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Authenticate(body.TokenValue()); err != nil {
		log.Warn("Rejected webhook with invalid token")
		h.metrics.ObserveWebhook(metrics.ResultUnauthorized)
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	if err := body.CheckFields(); err != nil {
		log.Warn("Incomplete webhook body", "err", err)
		h.metrics.ObserveWebhook(metrics.ResultInvalid)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// net/http does not cancel the request context when WriteTimeout fires.
	ctx := r.Context()
	if h.submitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.submitTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := h.service.Submit(ctx, body.ToRequest())
	h.metrics.ObserveSubmit(time.Since(start))
	if err != nil {
		h.writeSubmitError(w, log, err)
		return
	}

	response := api.MintResponse{TxHash: result.TxHash.Hex()}
	if result.UID != (common.Hash{}) {
		response.UID = result.UID.Hex()
	}

	h.metrics.ObserveWebhook(metrics.ResultSubmitted)
	log.Info("EAS proof minted", "txHash", response.TxHash, "fid", result.Attestation.FarcasterID)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("Failed to encode response", "err", err)
	}
}

func (h *Handler) writeSubmitError(w http.ResponseWriter, log *slog.Logger, err error) {
	var validationErr *attester.ValidationError
	var submissionErr *attester.SubmissionError

	switch {
	case errors.Is(err, attester.ErrUnauthorized):
		h.metrics.ObserveWebhook(metrics.ResultUnauthorized)
		http.Error(w, "Invalid token", http.StatusUnauthorized)
	case errors.As(err, &validationErr):
		log.Warn("Invalid webhook field", "err", err)
		h.metrics.ObserveWebhook(metrics.ResultInvalid)
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
	case errors.Is(err, attester.ErrConfiguration):
		log.Error("Attestation service misconfigured", "err", err)
		h.metrics.ObserveWebhook(metrics.ResultMisconfigured)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	case errors.As(err, &submissionErr):
		log.Error("Attestation submission failed", "err", err)
		h.metrics.ObserveWebhook(metrics.ResultFailed)
		http.Error(w, "Failed to submit attestation", http.StatusInternalServerError)
	default:
		log.Error("Unexpected error", "err", err)
		h.metrics.ObserveWebhook(metrics.ResultFailed)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
