package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/api/handlers"
)

func TestSheetSink_SyncAsync(t *testing.T) {
	received := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := &handlers.SheetSink{URL: srv.URL}
	sink.SyncAsync("vehicle", map[string]string{"plate": "RTB1234"})

	select {
	case body := <-received:
		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "vehicle", payload["kind"])
	case <-time.After(5 * time.Second):
		t.Fatal("sheet bridge never received the sync")
	}
}

// a dead bridge must never block or panic the caller
func TestSheetSink_SyncAsyncDeadBridge(t *testing.T) {
	sink := &handlers.SheetSink{URL: "http://127.0.0.1:0"}
	sink.SyncAsync("vehicle", map[string]string{"plate": "RTB1234"})
}

func TestSheetSink_SyncAsyncUnconfigured(t *testing.T) {
	sink := &handlers.SheetSink{}
	sink.SyncAsync("vehicle", nil)

	var nilSink *handlers.SheetSink
	nilSink.SyncAsync("vehicle", nil)
}
