package turn

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/converselabs/go-converse/pkg/chat"
)

// InvalidFormatMessage is the caller-visible message for a request that
// carries neither an audio nor a text payload.
const InvalidFormatMessage = "Invalid request format. Either 'audio' or 'text' key must be provided."

// Request is a validated single-turn request.
// Exactly one of Audio or Text is set, never both.
type Request struct {
	// Audio is the decoded audio payload for an audio turn, nil otherwise.
	Audio []byte

	// Text is the literal user text for a text turn, empty otherwise.
	Text string

	// Messages is the prior conversation in chronological order.
	Messages []chat.Message

	// AudioResponse requests a synthesized rendering of the reply.
	AudioResponse bool
}

// IsAudioTurn reports whether the request carries recorded audio.
func (r *Request) IsAudioTurn() bool {
	return r.Audio != nil
}

// rawRequest mirrors the wire shape before validation.
// Pointers distinguish absent keys from empty values, and isAudioResponse
// is kept raw so a wrong-typed value degrades to false instead of failing.
type rawRequest struct {
	Audio           *string         `json:"audio"`
	Text            *string         `json:"text"`
	Messages        []chat.Message  `json:"messages"`
	IsAudioResponse json.RawMessage `json:"isAudioResponse"`
}

// ParseRequest decodes and validates an inbound request body.
// All failures are validation errors; no external call happens here.
func ParseRequest(body []byte) (*Request, error) {
	var raw rawRequest
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, Validationf("malformed request body")
	}

	req := &Request{Messages: raw.Messages}

	switch {
	case raw.Audio != nil:
		audio, err := decodeAudioPayload(*raw.Audio)
		if err != nil {
			return nil, err
		}
		req.Audio = audio

	case raw.Text != nil:
		if *raw.Text == "" {
			return nil, Validationf("'text' must be a non-empty string")
		}
		req.Text = *raw.Text

	default:
		return nil, Validationf(InvalidFormatMessage)
	}

	for i, m := range raw.Messages {
		if !m.Role.Valid() {
			return nil, Validationf("invalid role %q in messages[%d]", m.Role, i)
		}
	}

	if len(raw.IsAudioResponse) > 0 {
		var b bool
		if json.Unmarshal(raw.IsAudioResponse, &b) == nil {
			req.AudioResponse = b
		}
	}

	return req, nil
}

// decodeAudioPayload strips an optional data-URI prefix and decodes the
// base64 payload. Only the substring after the last comma counts:
// "data:audio/mp3;base64,AAA=" decodes just "AAA=".
func decodeAudioPayload(payload string) ([]byte, error) {
	if i := strings.LastIndexByte(payload, ','); i >= 0 {
		payload = payload[i+1:]
	}
	audio, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, Validationf("'audio' is not valid base64 data")
	}
	return audio, nil
}
