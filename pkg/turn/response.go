package turn

import "encoding/base64"

// Response is the outbound payload for a completed turn.
// GeneratedAudio is base64-encoded audio bytes, or null (nil) when
// synthesis was not requested or not applicable.
type Response struct {
	Transcription  string  `json:"transcription"`
	GeneratedText  string  `json:"generated_text"`
	GeneratedAudio *string `json:"generated_audio"`
}

// NewAudioTurnResponse builds the response for an audio turn.
// No reply was generated in this call, so generated_text carries the
// transcription for the client to confirm and re-submit.
func NewAudioTurnResponse(transcription string) *Response {
	return &Response{
		Transcription: transcription,
		GeneratedText: transcription,
	}
}

// NewTextTurnResponse builds the response for a text turn.
// The transcription echoes the caller's input text unmodified.
// A nil audio buffer yields a null generated_audio field.
func NewTextTurnResponse(transcription, reply string, audio []byte) *Response {
	resp := &Response{
		Transcription: transcription,
		GeneratedText: reply,
	}
	if audio != nil {
		encoded := base64.StdEncoding.EncodeToString(audio)
		resp.GeneratedAudio = &encoded
	}
	return resp
}
