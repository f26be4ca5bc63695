package modality

import "github.com/BaSui01/modality/types"

// TextHandler handles plain text. Every operation is lossless.
type TextHandler struct{}

// NewTextHandler creates a text handler.
func NewTextHandler() *TextHandler {
	return &TextHandler{}
}

// Modality implements Handler.
func (h *TextHandler) Modality() types.Modality {
	return types.ModalityText
}

// Handle returns the decoded content unchanged.
func (h *TextHandler) Handle(in types.Input) types.Output {
	return h.FromText(in.Content.Text())
}

// ToText returns the decoded content unchanged.
func (h *TextHandler) ToText(in types.Input) string {
	return in.Content.Text()
}

// FromText wraps text as a text/plain Output.
func (h *TextHandler) FromText(text string) types.Output {
	return types.Output{
		Modality: types.ModalityText,
		Content:  types.TextContent(text),
		MimeType: types.MimeTextPlain,
	}
}
