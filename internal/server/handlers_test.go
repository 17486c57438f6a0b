package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/helmsman/internal/modules/sequences"
)

func testServer() *Server {
	return New(Config{
		Port:      0,
		DevMode:   true,
		Log:       zerolog.Nop(),
		Sequences: sequences.NewService(zerolog.Nop()),
		SequenceDefaults: sequences.GenerationConfig{
			MaxDepth:  2,
			BatchSize: 2,
		},
	})
}

func TestHandleHealth(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestHandleGenerateSequences_NDJSON(t *testing.T) {
	srv := testServer()

	body := map[string]interface{}{
		"available_cash_eur": 10000,
		"opportunities": map[string]interface{}{
			"opportunity_buys": []map[string]interface{}{
				{"symbol": "A", "side": "BUY", "quantity": 1, "price": 100, "value_eur": 100, "priority": 0.9},
				{"symbol": "B", "side": "BUY", "quantity": 1, "price": 100, "value_eur": 100, "priority": 0.8},
				{"symbol": "C", "side": "BUY", "quantity": 1, "price": 100, "value_eur": 100, "priority": 0.7},
			},
		},
	}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/sequences/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/x-ndjson", rec.Header().Get("Content-Type"))

	// 3 singles + 3 pairs = 6 sequences in batches of 2 = 3 lines
	var batches []sequences.Batch
	scanner := bufio.NewScanner(strings.NewReader(rec.Body.String()))
	for scanner.Scan() {
		var batch sequences.Batch
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &batch))
		batches = append(batches, batch)
	}
	require.Len(t, batches, 3)

	assert.True(t, batches[0].MoreAvailable)
	assert.True(t, batches[1].MoreAvailable)
	assert.False(t, batches[2].MoreAvailable)
	assert.Equal(t, 3, batches[2].TotalBatches)
}

func TestHandleGenerateSequences_BadBody(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodPost, "/api/sequences/generate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
