package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"go-passport-validator/models"
	"go-passport-validator/passport"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

var testConfig = ServerConfig{
	Host:           "localhost",
	Port:           8081,
	UseTls:         false,
	TlsCertPath:    "",
	TlsPrivKeyPath: "",
}

// MRZ sample with all five check digits consistent; expires January 2030.
const testMrzValid = "P<UTOERIKSSON<<ANNA<MARIA<<<<<<<<<<<<<<<<<<<\n" +
	"L898902C36UTO7408122F3001156ZE184226B<<<<<12"

func startTestServer(t *testing.T, storage NonceStorage) *Server {
	t.Helper()

	registry := prometheus.NewRegistry()
	testState := &ServerState{
		nonceStorage: storage,
		validator:    passport.NewValidator(),
		jwtCreator:   fakeJwtCreator{jwt: "test-jwt"},
		ocrClient:    nil,
		metrics:      NewMetrics(registry),
	}

	srv, err := NewServer(testState, testConfig, registry)
	require.NoError(t, err)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("server error: %v", err)
		}
	}()

	waitUntilHealthy(t, "http://localhost:8081/api/health")
	t.Cleanup(func() {
		if err := srv.Stop(); err != nil {
			t.Logf("error shutting down server: %v", err)
		}
	})
	return srv
}

func waitUntilHealthy(t *testing.T, url string) {
	t.Helper()
	const maxAttempts = 50
	for i := 0; i < maxAttempts; i++ {
		if resp, err := http.Get(url); err == nil {
			_ = resp.Body.Close()
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("server did not start in time")
}

func postJSON[T any](t *testing.T, url string, payload any) (*http.Response, []byte, *T) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(b)
	}
	resp, err := http.Post(url, "application/json", body)
	require.NoError(t, err)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var v T
	_ = json.Unmarshal(respBody, &v)

	return resp, respBody, &v
}

func mustStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	require.Equalf(t, want, resp.StatusCode, "body: %s", body)
}

// start-validation bootstrap
func startValidation(t *testing.T) (sessionID, nonce string) {
	t.Helper()
	resp, body, sr := postJSON[models.StartValidationResponse](t, "http://localhost:8081/api/start-validation", nil)
	mustStatus(t, resp, http.StatusOK, body)
	require.NotEmpty(t, sr.SessionId)
	require.NotEmpty(t, sr.Nonce)
	return sr.SessionId, sr.Nonce
}

func newValidationReq(sessionId, nonce string) models.ValidationRequest {
	return models.ValidationRequest{
		SessionId:     sessionId,
		Nonce:         nonce,
		MrzText:       testMrzValid,
		OcrConfidence: 0.98,
		Printed: passport.PrintedIdentity{
			FullName:       "Anna Maria Eriksson",
			DateOfBirth:    "1974-08-12",
			DocumentNumber: "L898902C3",
			Nationality:    "UTO",
		},
	}
}

// test doubles

type fakeJwtCreator struct{ jwt string }

func (f fakeJwtCreator) CreateAttestation(_ string, _ passport.ValidationResult) (string, error) {
	return f.jwt, nil
}
