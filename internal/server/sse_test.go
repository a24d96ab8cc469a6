package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nonFlusher struct{ http.ResponseWriter }

func TestNewSSEWriter_RequiresFlusher(t *testing.T) {
	_, err := NewSSEWriter(nonFlusher{httptest.NewRecorder()})
	assert.ErrorIs(t, err, errStreamingUnsupported)
}

func TestSSEWriter_NumbersEvents(t *testing.T) {
	rec := httptest.NewRecorder()
	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	require.NoError(t, sse.WriteEvent(EventProgress, map[string]string{"step": "fit"}))
	require.NoError(t, sse.WriteError("boom"))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t,
		"id: 1\nevent: progress\ndata: {\"step\":\"fit\"}\n\n"+
			"id: 2\nevent: error\ndata: {\"error\":\"boom\"}\n\n",
		rec.Body.String())
}

func TestSSEWriter_EncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	err = sse.WriteEvent(EventProgress, func() {})
	require.Error(t, err)
	assert.Empty(t, rec.Body.String())
}

func TestSSEWriter_KeepAlive(t *testing.T) {
	rec := httptest.NewRecorder()
	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	stop := sse.KeepAlive(5 * time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	stop()
	stop()

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, ": keep-alive\n\n"))

	// nothing is written after stop returns
	time.Sleep(15 * time.Millisecond)
	assert.Equal(t, body, rec.Body.String())
}
