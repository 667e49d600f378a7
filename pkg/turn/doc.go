// Package turn implements the single-turn conversation pipeline.
//
// A turn is one request/response cycle: the caller sends either recorded
// audio or typed text together with the prior conversation, and receives
// a transcription, a generated reply, and optionally synthesized speech.
//
// The two input variants behave differently by design:
//
//   - Audio turn: the audio is transcribed and returned immediately with
//     generated_text set to the transcription. No reply is generated, so
//     a client can show "what I heard" and let the user confirm before
//     re-submitting the transcription as a text turn.
//
//   - Text turn: the text is appended to the prior conversation, a reply
//     is generated, and, when requested, the reply is synthesized to audio.
//
// Processing is stateless: nothing persists between turns, and the
// caller supplies the full conversation history on every request.
// External engines are injected as adapters (stt.Transcriber,
// chat.Completer, tts.Synthesizer); each stage runs sequentially and the
// first failure aborts the turn.
package turn
