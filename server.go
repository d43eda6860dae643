package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go-passport-validator/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const ErrorInternal = "error:internal"
const ERR_MARSHAL = "failed to marshal response message"
const ERR_JWT_CREATION = "failed to create attestation jwt"
const ERR_NONCE_REMOVAL = "failed to remove nonce from storage"
const ERR_NONCE_RETRIEVAL = "failed to get nonce from storage"
const ERR_INVALID_NONCE_SESSION = "invalid session or nonce"
const ERR_OCR_FAILED = "ocr recognition failed"

type ServerConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	UseTls         bool   `json:"use_tls,omitempty"`
	TlsPrivKeyPath string `json:"tls_priv_key_path,omitempty"`
	TlsCertPath    string `json:"tls_cert_path,omitempty"`
}

type ServerState struct {
	nonceStorage NonceStorage
	validator    DocumentValidator
	jwtCreator   JwtCreator
	ocrClient    OcrClient // nil when no remote OCR service is configured
	metrics      *Metrics
}

type Server struct {
	server *http.Server
	config ServerConfig
}

func (s *Server) ListenAndServe() error {
	if s.config.UseTls {
		slog.Info("Starting server with TLS", "host", s.config.Host, "port", s.config.Port, "cert", s.config.TlsCertPath, "key", s.config.TlsPrivKeyPath)
		return s.server.ListenAndServeTLS(s.config.TlsCertPath, s.config.TlsPrivKeyPath)
	} else {
		slog.Info("Starting server without TLS", "host", s.config.Host, "port", s.config.Port)
		return s.server.ListenAndServe()
	}
}

func (s *Server) Stop() error {
	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	if err != nil {
		slog.Error("Error during server shutdown", "error", err)
	} else {
		slog.Info("Server shut down successfully")
	}
	return err
}

func NewServer(state *ServerState, config ServerConfig, registry *prometheus.Registry) (*Server, error) {
	slog.Info("Creating new server", "host", config.Host, "port", config.Port, "tls", config.UseTls)
	router := mux.NewRouter()

	router.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("Health check request received")
		err := json.NewEncoder(w).Encode(map[string]bool{"ok": true})
		if err != nil {
			slog.Error("failed to write body to http response", "error", err)
		}
	})

	router.HandleFunc("/api/start-validation", func(w http.ResponseWriter, r *http.Request) {
		handleStartValidation(state, w, r)
	})
	router.HandleFunc("/api/validate-passport", func(w http.ResponseWriter, r *http.Request) {
		handleValidatePassport(state, w, r)
	})
	router.HandleFunc("/api/parse-mrz", func(w http.ResponseWriter, r *http.Request) {
		handleParseMrz(state, w, r)
	})
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	slog.Debug("Registered all API routes")

	addr := fmt.Sprintf("%v:%v", config.Host, config.Port)
	srv := &http.Server{
		Handler: router,
		Addr:    addr,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	slog.Info("Server created successfully", "address", addr)
	return &Server{
		server: srv,
		config: config,
	}, nil
}

func handleStartValidation(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	slog.Info("Received request to start document validation")

	slog.Debug("Generating session ID")
	sessionId := GenerateSessionId()
	if sessionId == "" {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, "failed to generate session ID", fmt.Errorf("failed to generate session ID"))
		return
	}
	slog.Debug("Session ID generated", "session_id", sessionId)

	// Generate an 8 byte nonce
	slog.Debug("Generating nonce", "session_id", sessionId)
	nonce, err := GenerateNonce(8)
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, "failed to generate nonce", err)
		return
	}

	// The nonce lives until the attestation is handed over
	slog.Debug("Storing nonce in storage", "session_id", sessionId)
	err = state.nonceStorage.StoreNonce(sessionId, nonce)
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, "failed to store nonce", err)
		return
	}
	slog.Debug("Nonce stored successfully", "session_id", sessionId)

	response := models.StartValidationResponse{
		SessionId: sessionId,
		Nonce:     nonce,
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
		return
	}

	slog.Info("Document validation started successfully", "session_id", sessionId)
}

func handleValidatePassport(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	requestId := uuid.NewString()
	slog.Info("Received request to validate a passport", "request_id", requestId)

	request, err := decodeValidationRequest(r)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid request", "failed to decode validation request", err)
		return
	}

	slog.Debug("Validating session", "session_id", request.SessionId, "request_id", requestId)
	if err := validateSession(state.nonceStorage, request.SessionId, request.Nonce); err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid request", ERR_INVALID_NONCE_SESSION, err)
		return
	}

	mrzText := request.MrzText
	ocrConfidence := request.OcrConfidence
	if mrzText == "" && request.ImageData != "" {
		mrzText, ocrConfidence, err = recognizeFromImage(state, request.ImageData)
		if err != nil {
			respondWithErr(w, http.StatusBadGateway, "ocr failed", ERR_OCR_FAILED, err)
			return
		}
		slog.Debug("OCR recognized MRZ from image", "session_id", request.SessionId, "ocr_confidence", ocrConfidence)
	}

	result := state.validator.Validate(mrzText, ocrConfidence, request.Printed)
	state.metrics.ValidationsTotal.WithLabelValues(string(result.Status)).Inc()
	if result.Identity == nil {
		state.metrics.ParseFailures.Inc()
	}
	slog.Debug("Validation completed", "session_id", request.SessionId, "status", result.Status, "confidence", result.Confidence)

	slog.Debug("Creating attestation JWT", "session_id", request.SessionId)
	attestation, err := state.jwtCreator.CreateAttestation(request.SessionId, result)
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, ERR_JWT_CREATION, ERR_JWT_CREATION, err)
		return
	}
	state.metrics.AttestationsIssued.Inc()

	response := models.ValidationResponse{
		Result:      result,
		Attestation: attestation,
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
		return
	}

	slog.Info("Passport validation completed successfully", "session_id", request.SessionId, "status", result.Status)
	removeSessionNonce(w, state.nonceStorage, request.SessionId)
}

func handleParseMrz(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	slog.Info("Received request to parse MRZ text")

	var request models.ParseMrzRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid request", "failed to decode parse request", err)
		return
	}

	identity, err := state.validator.ParseMrz(request.MrzText)
	if err != nil {
		state.metrics.ParseFailures.Inc()
		respondWithErr(w, http.StatusUnprocessableEntity, "unparseable mrz", "failed to parse MRZ text", err)
		return
	}

	response := models.ParseMrzResponse{Identity: identity}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
		return
	}

	slog.Info("MRZ parsed successfully", "document_number", identity.DocumentNumber)
}

// recognizeFromImage runs the remote OCR service on a base64 MRZ crop.
func recognizeFromImage(state *ServerState, imageBase64 string) (string, float64, error) {
	if state.ocrClient == nil {
		slog.Warn("OCR client not configured")
		return "", 0, fmt.Errorf("ocr client not configured")
	}

	state.metrics.OcrRequests.Inc()
	result, err := state.ocrClient.RecognizeMrz(imageBase64)
	if err != nil {
		slog.Error("OCR call failed", "error", err)
		return "", 0, fmt.Errorf("%s: %w", ERR_OCR_FAILED, err)
	}
	return result.Text, result.Confidence, nil
}

// -----------------------------------------------------------------------------------

// validateSession validates session and nonce
func validateSession(storage NonceStorage, sessionId, nonce string) error {
	slog.Debug("Validating session and nonce", "session_id", sessionId)
	storedNonce, err := storage.RetrieveNonce(sessionId)
	if err != nil {
		slog.Warn("Failed to retrieve nonce from storage", "session_id", sessionId, "error", err)
		return fmt.Errorf("%s: %w", ERR_NONCE_RETRIEVAL, err)
	}

	if storedNonce == "" || storedNonce != nonce {
		slog.Warn("Invalid nonce or session", "session_id", sessionId, "nonce_empty", storedNonce == "", "nonce_match", storedNonce == nonce)
		return fmt.Errorf("%s", ERR_INVALID_NONCE_SESSION)
	}

	slog.Debug("Session validation successful", "session_id", sessionId)
	return nil
}

// removeSessionNonce removes the nonce and logs error if failed
func removeSessionNonce(w http.ResponseWriter, storage NonceStorage, sessionId string) {
	slog.Debug("Removing session nonce", "session_id", sessionId)
	if err := storage.RemoveNonce(sessionId); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_NONCE_REMOVAL, err)
	} else {
		slog.Debug("Session nonce removed successfully", "session_id", sessionId)
	}
}

// decodeValidationRequest decodes the request body
func decodeValidationRequest(r *http.Request) (models.ValidationRequest, error) {
	slog.Debug("Decoding validation request body")
	var request models.ValidationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		slog.Warn("Failed to decode validation request", "error", err)
		return request, fmt.Errorf("decode request body: %w", err)
	}
	slog.Debug("Validation request decoded successfully", "session_id", request.SessionId)
	return request, nil
}

func GenerateSessionId() string {
	sessionId := make([]byte, 16)
	if _, err := rand.Read(sessionId); err != nil {
		slog.Error("failed to generate session ID", "error", err)
		return ""
	}
	hexId := fmt.Sprintf("%x", sessionId)
	slog.Debug("Session ID generated successfully", "session_id", hexId)
	return hexId
}

// GenerateNonce Generates a random nonce
func GenerateNonce(i int) (string, error) {
	nonce := make([]byte, i)
	if _, err := rand.Read(nonce); err != nil {
		slog.Error("failed to generate nonce", "error", err)
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	hexString := hex.EncodeToString(nonce)
	slog.Debug("Nonce generated successfully", "length", i)
	return hexString, nil
}

func respondWithErr(w http.ResponseWriter, code int, responseBody string, logMsg string, e error) {
	slog.Error(logMsg, "error", e, "status_code", code, "response_body", responseBody)
	w.WriteHeader(code)
	if _, err := w.Write([]byte(responseBody)); err != nil {
		slog.Error("failed to write body to http response", "error", err)
	}
}

// helpers ------------

func closeRequestBody(r *http.Request) {
	if err := r.Body.Close(); err != nil {
		slog.Error("failed to close request body", "error", err)
	}
}

func requirePOST(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		slog.Debug("Non-POST request rejected", "method", r.Method, "path", r.URL.Path)
		respondWithErr(w, http.StatusMethodNotAllowed, "method not allowed", "invalid method", nil)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	slog.Debug("Writing JSON response", "status_code", status)
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to marshal JSON payload", "error", err)
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(payload)
	if err != nil {
		slog.Error("failed to write body to http response", "error", err)
	} else {
		slog.Debug("JSON response written successfully", "status_code", status, "payload_size", len(payload))
	}
	return nil
}
