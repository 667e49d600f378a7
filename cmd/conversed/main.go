// conversed - single-turn conversational pipeline service
// Accepts audio or text turns over HTTP and answers with a reply and
// optional synthesized speech.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/converselabs/go-converse/internal/config"
	"github.com/converselabs/go-converse/internal/log"
	"github.com/converselabs/go-converse/pkg/chat"
	"github.com/converselabs/go-converse/pkg/recordings"
	"github.com/converselabs/go-converse/pkg/stt"
	"github.com/converselabs/go-converse/pkg/tts"
	"github.com/converselabs/go-converse/pkg/turn"
	"github.com/converselabs/go-converse/pkg/web"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	log.Init(config.LogLevel())

	openAIKey := config.OpenAIKey()
	elevenLabsKey := config.ElevenLabsKey()

	transcriber, err := stt.NewWhisper(
		stt.WithAPIKey(openAIKey),
		stt.WithLogger(log.L()),
	)
	if err != nil {
		log.Error("stt init failed", "error", err)
		os.Exit(1)
	}
	defer transcriber.Close()

	completer, err := chat.NewOpenAI(
		chat.WithAPIKey(openAIKey),
		chat.WithLogger(log.L()),
	)
	if err != nil {
		log.Error("chat init failed", "error", err)
		os.Exit(1)
	}
	defer completer.Close()

	synthesizer, err := tts.NewElevenLabs(
		tts.WithAPIKey(elevenLabsKey),
		tts.WithVoice(config.Env("TTS_VOICE", tts.DefaultElevenLabsVoice)),
		tts.WithLogger(log.L()),
	)
	if err != nil {
		log.Error("tts init failed", "error", err)
		os.Exit(1)
	}
	defer synthesizer.Close()

	store := newStore()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Close(ctx)
	}()

	pipeline := turn.NewPipeline(transcriber, completer, synthesizer, log.L())

	server := web.NewServer(config.Port(), pipeline, store, log.L())
	server.RegisterHealthCheck("stt", transcriber.Health)
	server.RegisterHealthCheck("chat", completer.Health)
	server.RegisterHealthCheck("tts", synthesizer.Health)
	server.RegisterHealthCheck("recordings", store.Health)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		_ = server.Shutdown()
	}()

	if err := server.Start(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newStore picks the recordings backend: MongoDB when MONGO_URI is set,
// otherwise an in-memory store.
func newStore() recordings.Store {
	uri := config.MongoURI()
	if uri == "" {
		log.Warn("MONGO_URI not set; study recordings are kept in memory")
		return recordings.NewMemoryStore()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := recordings.NewMongoStore(ctx, uri, log.L())
	if err != nil {
		log.Error("mongo init failed", "error", err)
		os.Exit(1)
	}
	log.Info("recordings store connected", "database", recordings.MongoDatabase)
	return store
}
