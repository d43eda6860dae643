package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// OcrResult is what the remote OCR service returns for an MRZ crop: the raw
// recognized text, the engine's own confidence in [0,1] and an optional
// language tag.
type OcrResult struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language,omitempty"`
}

// OcrClient abstracts the remote OCR collaborator. The engine itself never
// sees pixels; this client is only consulted when a validation request
// carries an image instead of MRZ text.
type OcrClient interface {
	RecognizeMrz(imageBase64 string) (*OcrResult, error)
	HealthCheck() error
}

// RemoteOcrClient talks to an OCR service over HTTP.
type RemoteOcrClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRemoteOcrClient(baseURL string) *RemoteOcrClient {
	return &RemoteOcrClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *RemoteOcrClient) RecognizeMrz(imageBase64 string) (*OcrResult, error) {
	url := fmt.Sprintf("%s/api/recognize", c.baseURL)

	requestBody := map[string]any{
		"image": imageBase64,
		"mode":  "mrz",
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recognize request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create recognize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute recognize request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ocr request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result OcrResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode recognize response: %w", err)
	}

	slog.Info("OCR completed", "confidence", result.Confidence, "language", result.Language)
	return &result, nil
}

func (c *RemoteOcrClient) HealthCheck() error {
	url := fmt.Sprintf("%s/api/healthz", c.baseURL)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute health check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("health check failed with status %d: %s", resp.StatusCode, string(body))
	}

	slog.Info("OCR service health check passed")
	return nil
}
