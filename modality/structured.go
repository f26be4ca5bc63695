package modality

import "github.com/BaSui01/modality/types"

// StructuredHandler treats content as a candidate JSON document.
//
// Converting text to structured wraps non-JSON text in a {"text": ...}
// envelope; converting structured to text pretty-prints the document.
// Parse failures never escape: each operation has an explicit fallback.
type StructuredHandler struct{}

// NewStructuredHandler creates a structured handler.
func NewStructuredHandler() *StructuredHandler {
	return &StructuredHandler{}
}

// Modality implements Handler.
func (h *StructuredHandler) Modality() types.Modality {
	return types.ModalityStructured
}

// Handle re-serializes JSON content, or wraps non-JSON content in the envelope.
func (h *StructuredHandler) Handle(in types.Input) types.Output {
	return h.output(NormalizeJSON(in.Content.Text()))
}

// ToText pretty-prints JSON content and returns anything else unchanged.
func (h *StructuredHandler) ToText(in types.Input) string {
	raw := in.Content.Text()
	if doc, ok := FormatJSON(raw); ok {
		return doc
	}
	return raw
}

// FromText round-trips JSON text and wraps everything else, the empty string included.
func (h *StructuredHandler) FromText(text string) types.Output {
	return h.output(NormalizeJSON(text))
}

func (h *StructuredHandler) output(doc string) types.Output {
	return types.Output{
		Modality: types.ModalityStructured,
		Content:  types.TextContent(doc),
		MimeType: types.MimeApplicationJSON,
	}
}
