package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// SheetSink mirrors created and amended documents to the legacy spreadsheet
// bridge. The mirror is fire-and-forget: a dead bridge must never fail or
// slow down the request that triggered the sync, so errors are only logged.
type SheetSink struct {
	URL string
}

type sheetSyncPayload struct {
	Kind     string      `json:"kind"`
	Document interface{} `json:"document"`
	SentAt   time.Time   `json:"sentAt"`
}

// SyncAsync posts the document to the bridge in the background. A no-op when
// no bridge URL is configured.
func (s *SheetSink) SyncAsync(kind string, document interface{}) {
	if s == nil || s.URL == "" {
		return
	}
	go func() {
		if err := s.send(kind, document); err != nil {
			zap.S().Errorw("sheet sync failed",
				"kind", kind,
				"error", err)
		}
	}()
}

func (s *SheetSink) send(kind string, document interface{}) error {
	jsonData, err := json.Marshal(sheetSyncPayload{
		Kind:     kind,
		Document: document,
		SentAt:   time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sheet sync payload: %w", err)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	req, err := http.NewRequest("POST", s.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create sheet sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send sheet sync request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sheet bridge returned status %d", resp.StatusCode)
	}
	return nil
}
