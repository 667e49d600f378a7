package web

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/converselabs/go-converse/pkg/chat"
	"github.com/converselabs/go-converse/pkg/recordings"
	"github.com/converselabs/go-converse/pkg/stt"
	"github.com/converselabs/go-converse/pkg/tts"
	"github.com/converselabs/go-converse/pkg/turn"
)

func newTestServer(t *testing.T, transcriber stt.Transcriber, completer chat.Completer, synthesizer tts.Synthesizer) *Server {
	t.Helper()
	if transcriber == nil {
		transcriber = stt.NewMock("Hello")
	}
	if completer == nil {
		completer = chat.NewMock("Hi there")
	}
	if synthesizer == nil {
		synthesizer = tts.NewMock([]byte{0x01, 0x02})
	}
	pipeline := turn.NewPipeline(transcriber, completer, synthesizer, nil)
	return NewServer("0", pipeline, recordings.NewMemoryStore(), nil)
}

func postJSON(t *testing.T, s *Server, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func TestConverseTextTurn(t *testing.T) {
	s := newTestServer(t, nil, nil, nil)

	status, body := postJSON(t, s, "/api/converse", map[string]interface{}{
		"text": "Hello",
	})

	assert.Equal(t, 200, status)
	assert.Equal(t, "Hello", body["transcription"])
	assert.Equal(t, "Hi there", body["generated_text"])
	assert.Nil(t, body["generated_audio"])
}

func TestConverseTextTurnWithAudioResponse(t *testing.T) {
	s := newTestServer(t, nil, nil, tts.NewMock([]byte{0x01, 0x02}))

	status, body := postJSON(t, s, "/api/converse", map[string]interface{}{
		"text":            "Hello",
		"isAudioResponse": true,
	})

	assert.Equal(t, 200, status)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0x01, 0x02}), body["generated_audio"])
}

func TestConverseAudioTurn(t *testing.T) {
	transcriber := stt.NewMock("what I said")
	completer := chat.NewMock("should not be called")
	s := newTestServer(t, transcriber, completer, nil)

	audio := base64.StdEncoding.EncodeToString([]byte("fake-audio"))
	status, body := postJSON(t, s, "/api/converse", map[string]interface{}{
		"audio": "data:audio/mp3;base64," + audio,
	})

	assert.Equal(t, 200, status)
	assert.Equal(t, "what I said", body["transcription"])
	assert.Equal(t, "what I said", body["generated_text"])
	assert.Nil(t, body["generated_audio"])
	assert.Equal(t, 0, completer.Calls())
}

func TestConverseMissingBothKeys(t *testing.T) {
	s := newTestServer(t, nil, nil, nil)

	status, body := postJSON(t, s, "/api/converse", map[string]interface{}{
		"foo": "bar",
	})

	assert.Equal(t, 400, status)
	assert.Equal(t, turn.InvalidFormatMessage, body["message"])
}

func TestConverseEmptyText(t *testing.T) {
	s := newTestServer(t, nil, nil, nil)

	status, body := postJSON(t, s, "/api/converse", map[string]interface{}{
		"text": "",
	})

	assert.Equal(t, 400, status)
	assert.Equal(t, "'text' must be a non-empty string", body["message"])
}

func TestConverseMalformedBody(t *testing.T) {
	s := newTestServer(t, nil, nil, nil)

	req := httptest.NewRequest("POST", "/api/converse", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 400, resp.StatusCode)
}

func TestConverseEngineFailureIsGeneric(t *testing.T) {
	completer := chat.WithError(errors.New("upstream quota exceeded secret-internal-detail"))
	s := newTestServer(t, nil, completer, nil)

	status, body := postJSON(t, s, "/api/converse", map[string]interface{}{
		"text": "Hello",
	})

	assert.Equal(t, 500, status)
	assert.Equal(t, GenericErrorMessage, body["message"])
	assert.NotContains(t, body["message"], "secret-internal-detail")
}

func TestConverseCORSHeader(t *testing.T) {
	s := newTestServer(t, nil, nil, nil)

	payload, _ := json.Marshal(map[string]interface{}{"text": "Hello"})
	req := httptest.NewRequest("POST", "/api/converse", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://example.com")

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRecordingsRoundTrip(t *testing.T) {
	s := newTestServer(t, nil, nil, nil)

	status, body := postJSON(t, s, "/recordAudio/add", map[string]interface{}{
		"user":            "p01",
		"originalText":    "the cat sat",
		"transcribedText": "the cat sat",
		"level":           1,
		"theme":           "animals",
	})
	require.Equal(t, 200, status)
	assert.Equal(t, true, body["acknowledged"])

	id, ok := body["insertedId"].(string)
	require.True(t, ok)
	require.NotEmpty(t, id)

	// list
	req := httptest.NewRequest("GET", "/recordAudio", nil)
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	var recs []recordings.Recording
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "p01", recs[0].User)

	// get by id
	req = httptest.NewRequest("GET", "/recordAudio/"+id, nil)
	resp, err = s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
}

func TestRecordingsListEmpty(t *testing.T) {
	s := newTestServer(t, nil, nil, nil)

	req := httptest.NewRequest("GET", "/recordAudio", nil)
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, "[]", string(raw))
}

func TestRecordingsGetNotFound(t *testing.T) {
	s := newTestServer(t, nil, nil, nil)

	req := httptest.NewRequest("GET", "/recordAudio/nope", nil)
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 404, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "recording not found", body["message"])
}

func TestHealthAllOK(t *testing.T) {
	s := newTestServer(t, nil, nil, nil)
	s.RegisterHealthCheck("stt", func(ctx context.Context) error { return nil })
	s.RegisterHealthCheck("chat", func(ctx context.Context) error { return nil })

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ok", body.Checks["stt"])
}

func TestHealthDegraded(t *testing.T) {
	s := newTestServer(t, nil, nil, nil)
	s.RegisterHealthCheck("stt", func(ctx context.Context) error { return nil })
	s.RegisterHealthCheck("store", func(ctx context.Context) error { return errors.New("down") })

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 503, resp.StatusCode)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "ok", body.Checks["stt"])
	assert.Equal(t, "unhealthy", body.Checks["store"])
}
