package speech

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/BaSui01/modality/modality"
	"github.com/BaSui01/modality/types"
)

func voiceInput(t *testing.T, audio []byte, opts ...types.InputOption) types.Input {
	t.Helper()
	in, err := types.NewInput(types.ModalityVoice, types.BytesContent(audio), opts...)
	require.NoError(t, err)
	return in
}

func fixedTranscriber(text string) TranscriberFunc {
	return func(_ context.Context, _ []byte, _ string) (string, error) {
		return text, nil
	}
}

func TestHandler_Modality(t *testing.T) {
	assert.Equal(t, types.ModalityVoice, NewHandler(nil, nil).Modality())
}

func TestHandler_HandlePassesAudioThrough(t *testing.T) {
	h := NewHandler(nil, nil)
	out := h.Handle(voiceInput(t, []byte{1, 2, 3}))

	assert.Equal(t, types.ModalityVoice, out.Modality)
	assert.Equal(t, []byte{1, 2, 3}, out.Content.Bytes())
	assert.Equal(t, DefaultAudioMimeType, out.MimeType)

	out = h.Handle(voiceInput(t, []byte{1}, types.WithMimeType("audio/mpeg")))
	assert.Equal(t, "audio/mpeg", out.MimeType)
}

func TestHandler_ToTextUsesTranscriber(t *testing.T) {
	var gotMime string
	var gotAudio []byte
	h := NewHandler(TranscriberFunc(func(_ context.Context, audio []byte, mime string) (string, error) {
		gotAudio, gotMime = audio, mime
		return "Hello, I need help with my account.", nil
	}), nil)

	text := h.ToText(voiceInput(t, []byte("pcm"), types.WithMimeType("audio/ogg")))
	assert.Equal(t, "Hello, I need help with my account.", text)
	assert.Equal(t, "audio/ogg", gotMime)
	assert.Equal(t, []byte("pcm"), gotAudio)
}

func TestHandler_ToTextStringContentIsTranscript(t *testing.T) {
	h := NewHandler(TranscriberFunc(func(context.Context, []byte, string) (string, error) {
		t.Fatal("transcriber must not be called for string content")
		return "", nil
	}), nil)
	in, err := types.NewInput(types.ModalityVoice, types.TextContent("already transcribed"))
	require.NoError(t, err)

	assert.Equal(t, "already transcribed", h.ToText(in))
}

func TestHandler_ToTextFailureDegrades(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	h := NewHandler(TranscriberFunc(func(context.Context, []byte, string) (string, error) {
		return "", errors.New("asr unavailable")
	}), nil, WithLogger(zap.New(core)))

	assert.Equal(t, "", h.ToText(voiceInput(t, []byte("pcm"))))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "transcription failed, returning empty transcript", logs.All()[0].Message)
}

func TestHandler_ToTextTimeout(t *testing.T) {
	h := NewHandler(TranscriberFunc(func(ctx context.Context, _ []byte, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}), nil, WithTimeout(10*time.Millisecond))

	start := time.Now()
	assert.Equal(t, "", h.ToText(voiceInput(t, []byte("pcm"))))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestHandler_FromTextSynthesizes(t *testing.T) {
	h := NewHandler(nil, SynthesizerFunc(func(_ context.Context, text string) ([]byte, string, error) {
		return []byte("audio:" + text), "", nil
	}))

	out := h.FromText("hi")
	assert.Equal(t, types.ModalityVoice, out.Modality)
	assert.True(t, out.Content.IsBytes())
	assert.Equal(t, "audio:hi", out.Content.Text())
	assert.Equal(t, DefaultAudioMimeType, out.MimeType)
}

func TestHandler_FromTextFailureKeepsText(t *testing.T) {
	h := NewHandler(nil, SynthesizerFunc(func(context.Context, string) ([]byte, string, error) {
		return nil, "", errors.New("tts down")
	}))

	out := h.FromText("keep me")
	assert.Equal(t, types.ModalityVoice, out.Modality)
	assert.False(t, out.Content.IsBytes())
	assert.Equal(t, "keep me", out.Content.Text())
	assert.Equal(t, types.MimeTextPlain, out.MimeType)
}

func TestHandler_NilBackendsDegrade(t *testing.T) {
	h := NewHandler(nil, nil)
	assert.Equal(t, "", h.ToText(voiceInput(t, []byte("pcm"))))
	assert.Equal(t, "x", h.FromText("x").Content.Text())
}

func TestHandler_RateLimitedCallsStillSucceed(t *testing.T) {
	calls := 0
	h := NewHandler(TranscriberFunc(func(context.Context, []byte, string) (string, error) {
		calls++
		return "ok", nil
	}), nil, WithRateLimit(1000, 1))

	for i := 0; i < 3; i++ {
		assert.Equal(t, "ok", h.ToText(voiceInput(t, []byte("pcm"))))
	}
	assert.Equal(t, 3, calls)
}

func TestHandler_RateLimitWaitExceedsTimeout(t *testing.T) {
	h := NewHandler(fixedTranscriber("ok"), nil,
		WithRateLimit(0.001, 1),
		WithTimeout(20*time.Millisecond),
	)

	assert.Equal(t, "ok", h.ToText(voiceInput(t, []byte("a"))))
	// The single token is spent; the next wait cannot finish before the deadline.
	assert.Equal(t, "", h.ToText(voiceInput(t, []byte("b"))))
}

func TestHandler_ConvertsThroughConverter(t *testing.T) {
	conv := modality.NewConverter()
	conv.RegisterHandler(NewHandler(fixedTranscriber("Hello, I need help with my account."), nil))

	res, err := conv.Convert(voiceInput(t, []byte("<raw audio bytes placeholder>"), types.WithMimeType("audio/wav")), types.ModalityText)
	require.NoError(t, err)
	assert.Equal(t, modality.DefaultQuality, res.QualityScore)
	assert.Equal(t, "Hello, I need help with my account.", res.Output.Content.Text())

	res, err = conv.Convert(voiceInput(t, []byte("<raw audio bytes placeholder>")), types.ModalityStructured)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"text\": \"Hello, I need help with my account.\"\n}", res.Output.Content.Text())
}
