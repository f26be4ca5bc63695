package speech

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BaSui01/modality/modality"
	"github.com/BaSui01/modality/types"
)

// DefaultAudioMimeType is used when a voice payload carries no audio MIME type.
const DefaultAudioMimeType = "audio/wav"

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 30 * time.Second

// Transcriber converts audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// Synthesizer converts text to audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (audio []byte, mimeType string, err error)
}

// TranscriberFunc adapts a function to Transcriber.
type TranscriberFunc func(ctx context.Context, audio []byte, mimeType string) (string, error)

// Transcribe implements Transcriber.
func (f TranscriberFunc) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	return f(ctx, audio, mimeType)
}

// SynthesizerFunc adapts a function to Synthesizer.
type SynthesizerFunc func(ctx context.Context, text string) ([]byte, string, error)

// Synthesize implements Synthesizer.
func (f SynthesizerFunc) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	return f(ctx, text)
}

// Handler is the voice modality handler.
type Handler struct {
	transcriber Transcriber
	synthesizer Synthesizer
	timeout     time.Duration
	limiter     *rate.Limiter
	mimeType    string
	logger      *zap.Logger
}

var _ modality.Handler = (*Handler)(nil)

// Option configures a Handler.
type Option func(*Handler)

// WithTimeout bounds each backend call. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithRateLimit throttles backend calls to rps with the given burst.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(h *Handler) {
		if rps <= 0 {
			h.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithDefaultMimeType sets the MIME type for audio without one.
func WithDefaultMimeType(mime string) Option {
	return func(h *Handler) {
		if mime != "" {
			h.mimeType = mime
		}
	}
}

// WithLogger sets the logger used to report degraded calls.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler creates a voice handler. Either backend may be nil; the matching
// direction then degrades as if the backend had failed.
func NewHandler(t Transcriber, s Synthesizer, opts ...Option) *Handler {
	h := &Handler{
		transcriber: t,
		synthesizer: s,
		timeout:     DefaultTimeout,
		mimeType:    DefaultAudioMimeType,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With(zap.String("component", "speech_handler"))
	return h
}

// Modality implements modality.Handler.
func (h *Handler) Modality() types.Modality {
	return types.ModalityVoice
}

// Handle passes audio through unchanged.
func (h *Handler) Handle(in types.Input) types.Output {
	return types.Output{
		Modality: types.ModalityVoice,
		Content:  in.Content,
		MimeType: h.audioMime(in),
	}
}

// ToText transcribes audio content. String content is already a transcript.
func (h *Handler) ToText(in types.Input) string {
	if !in.Content.IsBytes() {
		return in.Content.Text()
	}
	if h.transcriber == nil {
		h.logger.Warn("no transcriber configured, returning empty transcript")
		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	text, err := h.transcribe(ctx, in)
	if err != nil {
		h.logger.Warn("transcription failed, returning empty transcript",
			zap.Int("audio_bytes", in.Content.Len()),
			zap.Error(err),
		)
		return ""
	}
	return text
}

// FromText synthesizes audio. On failure the text is kept as a text/plain
// voice payload.
func (h *Handler) FromText(text string) types.Output {
	fallback := types.Output{
		Modality: types.ModalityVoice,
		Content:  types.TextContent(text),
		MimeType: types.MimeTextPlain,
	}
	if h.synthesizer == nil {
		h.logger.Warn("no synthesizer configured, keeping text")
		return fallback
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	audio, mime, err := h.synthesize(ctx, text)
	if err != nil {
		h.logger.Warn("synthesis failed, keeping text",
			zap.Int("text_len", len(text)),
			zap.Error(err),
		)
		return fallback
	}
	if mime == "" {
		mime = h.mimeType
	}
	return types.Output{
		Modality: types.ModalityVoice,
		Content:  types.BytesContent(audio),
		MimeType: mime,
	}
}

func (h *Handler) transcribe(ctx context.Context, in types.Input) (string, error) {
	if err := h.wait(ctx); err != nil {
		return "", err
	}
	text, err := h.transcriber.Transcribe(ctx, in.Content.Bytes(), h.audioMime(in))
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return text, nil
}

func (h *Handler) synthesize(ctx context.Context, text string) ([]byte, string, error) {
	if err := h.wait(ctx); err != nil {
		return nil, "", err
	}
	audio, mime, err := h.synthesizer.Synthesize(ctx, text)
	if err != nil {
		return nil, "", fmt.Errorf("synthesize: %w", err)
	}
	return audio, mime, nil
}

func (h *Handler) wait(ctx context.Context) error {
	if h.limiter == nil {
		return nil
	}
	if err := h.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return nil
}

// audioMime picks the payload MIME type. The Input default "text/plain" on
// byte content means the caller did not set one.
func (h *Handler) audioMime(in types.Input) string {
	if in.MimeType == "" || (in.MimeType == types.MimeTextPlain && in.Content.IsBytes()) {
		return h.mimeType
	}
	return in.MimeType
}
