package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"map-editor/internal/editor/export"
)

// ============================================================
// Map backend client
// ============================================================

var ErrNoBackend = errors.New("maps url is empty")

// StatusError возвращается, когда бэкенд ответил кодом не из 2xx.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("maps status %d", e.Code)
	}
	return fmt.Sprintf("maps status %d: %s", e.Code, e.Message)
}

// Client отправляет готовые документы карт в бэкенд.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Submit отправляет документ в POST /map. Состояние редактора не трогает:
// вызывающий сам решает, что показать пользователю.
func (c *Client) Submit(ctx context.Context, doc export.FeatureCollection) error {
	if c.baseURL == "" {
		return ErrNoBackend
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode map: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/map", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[SUBMIT] Error: %v", err)
		return fmt.Errorf("reach maps service: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		var body struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &body)
		msg := body.Error
		if msg == "" {
			msg = body.Message
		}
		log.Printf("[SUBMIT] Rejected with status %d: %s", resp.StatusCode, msg)
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}

	log.Printf("[SUBMIT] Map for %q accepted (%d features)", doc.Properties.MustString("address", ""), len(doc.Features))
	return nil
}
