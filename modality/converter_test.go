package modality

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/modality/testutil/fixtures"
	"github.com/BaSui01/modality/testutil/mocks"
	"github.com/BaSui01/modality/types"
)

// newVoiceMock stands in for a real ASR/TTS backed handler.
func newVoiceMock() *mocks.MockHandler {
	return mocks.NewMockHandler(types.ModalityVoice).
		WithTranscript(fixtures.SupportRequest).
		WithFromText(func(text string) types.Output {
			return types.Output{
				Modality: types.ModalityVoice,
				Content:  types.BytesContent([]byte("[synthesized audio: " + text + "]")),
				MimeType: "audio/wav",
			}
		})
}

// =============================================================================
// 🧪 Convert 场景测试
// =============================================================================

func TestConverter_TextToStructured(t *testing.T) {
	conv := NewConverter()
	res, err := conv.Convert(mustInput(t, types.ModalityText, types.TextContent("Analyze the quarterly report")), types.ModalityStructured)
	require.NoError(t, err)

	assert.Equal(t, types.ModalityText, res.SourceModality)
	assert.Equal(t, types.ModalityStructured, res.TargetModality)
	assert.Equal(t, 0.95, res.QualityScore)
	assert.Equal(t, "{\n  \"text\": \"Analyze the quarterly report\"\n}", res.Output.Content.Text())
	assert.Equal(t, types.MimeApplicationJSON, res.Output.MimeType)
}

func TestConverter_StructuredToText(t *testing.T) {
	conv := NewConverter()
	res, err := conv.Convert(mustInput(t, types.ModalityStructured,
		types.TextContent(`{"intent":"schedule_meeting","priority":"high"}`)), types.ModalityText)
	require.NoError(t, err)

	assert.Equal(t, 0.95, res.QualityScore)
	assert.Equal(t, types.ModalityText, res.Output.Modality)
	assert.Equal(t, "{\n  \"intent\": \"schedule_meeting\",\n  \"priority\": \"high\"\n}", res.Output.Content.Text())
}

func TestConverter_SameModalityNormalizes(t *testing.T) {
	conv := NewConverter()
	res, err := conv.Convert(mustInput(t, types.ModalityStructured, types.TextContent(`{"name":"Alice","score":99}`)), types.ModalityStructured)
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.QualityScore)
	assert.Equal(t, "{\n  \"name\": \"Alice\",\n  \"score\": 99\n}", res.Output.Content.Text())
}

func TestConverter_TextToTextIsLossless(t *testing.T) {
	conv := NewConverter()
	res, err := conv.Convert(mustInput(t, types.ModalityText, types.BytesContent([]byte("same"))), types.ModalityText)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.QualityScore)
	assert.Equal(t, "same", res.Output.Content.Text())
}

func TestConverter_TargetHandlerMissingThenRegistered(t *testing.T) {
	conv := NewConverter()
	in := mustInput(t, types.ModalityText, types.TextContent("read this aloud"))

	_, err := conv.Convert(in, types.ModalityVoice)
	require.Error(t, err)
	assert.Equal(t, types.ErrTargetHandlerMissing, types.GetErrorCode(err))
	e, ok := types.AsError(err)
	require.True(t, ok)
	assert.Equal(t, types.ModalityVoice, e.Modality)
	assert.Equal(t, types.SideTarget, e.Side)

	conv.RegisterHandler(newVoiceMock())
	res, err := conv.Convert(in, types.ModalityVoice)
	require.NoError(t, err)
	assert.Equal(t, DefaultQuality, res.QualityScore)
	assert.True(t, res.Output.Content.IsBytes())
	assert.Equal(t, "[synthesized audio: read this aloud]", res.Output.Content.Text())
}

func TestConverter_SourceHandlerMissing(t *testing.T) {
	conv := NewConverter()
	_, err := conv.Convert(mustInput(t, types.ModalityImage, types.BytesContent([]byte{0x89})), types.ModalityText)
	require.Error(t, err)

	assert.Equal(t, types.ErrSourceHandlerMissing, types.GetErrorCode(err))
	assert.True(t, types.IsUnregistered(err))
	e, _ := types.AsError(err)
	assert.Equal(t, types.SideSource, e.Side)
	assert.Equal(t, types.ModalityImage, e.Modality)
}

func TestConverter_SourceCheckedBeforeTarget(t *testing.T) {
	conv := NewConverter()
	_, err := conv.Convert(mustInput(t, types.ModalityVideo, types.TextContent("")), types.ModalityImage)
	assert.Equal(t, types.ErrSourceHandlerMissing, types.GetErrorCode(err))
}

func TestConverter_VoiceToStructured(t *testing.T) {
	conv := NewConverter()
	conv.RegisterHandler(newVoiceMock())

	res, err := conv.Convert(mustInput(t, types.ModalityVoice, types.BytesContent([]byte("<raw audio>")), types.WithMimeType("audio/wav")), types.ModalityStructured)
	require.NoError(t, err)
	assert.Equal(t, 0.5, res.QualityScore)

	var doc map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.Output.Content.Text()), &doc))
	assert.Equal(t, fixtures.SupportRequest, doc["text"])
}

// =============================================================================
// 🧪 注册表测试
// =============================================================================

func TestConverter_RegisterIsIdempotentLastWins(t *testing.T) {
	conv := NewConverter()
	first := newVoiceMock()
	second := newVoiceMock()
	conv.RegisterHandler(first)
	conv.RegisterHandler(first)
	conv.RegisterHandler(second)

	h, ok := conv.Registry().Lookup(types.ModalityVoice)
	require.True(t, ok)
	assert.Same(t, second, h)
	assert.Equal(t, []types.Modality{types.ModalityText, types.ModalityVoice, types.ModalityStructured}, conv.SupportedModalities())
}

func TestConverter_SupportedModalitiesDefault(t *testing.T) {
	assert.Equal(t, []types.Modality{types.ModalityText, types.ModalityStructured}, NewConverter().SupportedModalities())
}

func TestConverter_SharedRegistryIsExplicit(t *testing.T) {
	shared := DefaultRegistry()
	router := NewRouter(WithRegistry(shared))
	conv := NewConverter(WithRegistry(shared))
	isolated := NewConverter(WithRegistry(shared.Clone()))

	conv.RegisterHandler(newVoiceMock())
	out, err := router.Route(mustInput(t, types.ModalityVoice, types.TextContent("x")))
	require.NoError(t, err)
	assert.Equal(t, types.ModalityVoice, out.Modality)

	assert.Equal(t, []types.Modality{types.ModalityText, types.ModalityStructured}, isolated.SupportedModalities())
}

// =============================================================================
// 🧪 质量策略测试
// =============================================================================

func TestConverter_CustomQualityPolicy(t *testing.T) {
	conv := NewConverter(WithQualityPolicy(QualityFunc(func(_, _ types.Modality) float64 { return 0.25 })))
	res, err := conv.Convert(mustInput(t, types.ModalityText, types.TextContent("x")), types.ModalityStructured)
	require.NoError(t, err)
	assert.Equal(t, 0.25, res.QualityScore)
}

func TestConverter_OutOfRangePolicyIsValidationError(t *testing.T) {
	conv := NewConverter(WithQualityPolicy(QualityFunc(func(_, _ types.Modality) float64 { return 1.5 })))
	_, err := conv.Convert(mustInput(t, types.ModalityText, types.TextContent("x")), types.ModalityStructured)
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))
	assert.False(t, types.IsUnregistered(err))
}

func TestConverter_SameModalityIgnoresPolicy(t *testing.T) {
	conv := NewConverter(WithQualityPolicy(QualityFunc(func(_, _ types.Modality) float64 { return 0 })))
	res, err := conv.Convert(mustInput(t, types.ModalityText, types.TextContent("x")), types.ModalityText)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.QualityScore)
}

func TestQualityScore_Table(t *testing.T) {
	assert.Equal(t, 0.95, QualityScore(types.ModalityText, types.ModalityStructured))
	assert.Equal(t, 0.95, QualityScore(types.ModalityStructured, types.ModalityText))
	assert.Equal(t, 1.0, QualityScore(types.ModalityText, types.ModalityText))
	assert.Equal(t, 1.0, QualityScore(types.ModalityStructured, types.ModalityStructured))
	assert.Equal(t, 0.5, QualityScore(types.ModalityImage, types.ModalityImage))
	assert.Equal(t, 0.5, QualityScore(types.ModalityVoice, types.ModalityText))
	assert.Equal(t, 0.5, QualityScore(types.ModalityText, types.ModalityVideo))
}

func TestConverter_ResolveMatchesConvertErrors(t *testing.T) {
	conv := NewConverter()

	src, tgt, err := conv.Resolve(types.ModalityText, types.ModalityStructured)
	require.NoError(t, err)
	assert.Equal(t, types.ModalityText, src.Modality())
	assert.Equal(t, types.ModalityStructured, tgt.Modality())

	_, _, err = conv.Resolve(types.ModalityText, types.ModalityVoice)
	assert.Equal(t, types.ErrTargetHandlerMissing, types.GetErrorCode(err))

	_, _, err = conv.Resolve(types.ModalityImage, types.ModalityVoice)
	assert.Equal(t, types.ErrSourceHandlerMissing, types.GetErrorCode(err))
}

func TestRegistry_GenerationMovesOnRegister(t *testing.T) {
	reg := DefaultRegistry()
	gen := reg.Generation()

	reg.Register(nil)
	assert.Equal(t, gen, reg.Generation(), "nil is ignored")

	reg.Register(NewTextHandler())
	assert.Equal(t, gen+1, reg.Generation(), "replacing a handler counts")

	cp := reg.Clone()
	assert.Equal(t, reg.Generation(), cp.Generation())
	cp.Register(newVoiceMock())
	assert.Equal(t, gen+1, reg.Generation(), "clone is independent")
}
