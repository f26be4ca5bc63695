package types

import "strings"

// Modality identifies the kind of payload carried by an Input or Output.
type Modality string

// Recognized modalities. Only text and structured have built-in handlers.
const (
	ModalityText       Modality = "text"
	ModalityVoice      Modality = "voice"
	ModalityImage      Modality = "image"
	ModalityVideo      Modality = "video"
	ModalityStructured Modality = "structured"
)

var allModalities = []Modality{
	ModalityText,
	ModalityVoice,
	ModalityImage,
	ModalityVideo,
	ModalityStructured,
}

// AllModalities returns every recognized modality in declaration order.
func AllModalities() []Modality {
	out := make([]Modality, len(allModalities))
	copy(out, allModalities)
	return out
}

// IsValid reports whether m is one of the recognized modalities.
func (m Modality) IsValid() bool {
	return m.Ordinal() >= 0
}

// Ordinal returns the declaration index of m, or -1 for unknown tags.
func (m Modality) Ordinal() int {
	for i, known := range allModalities {
		if known == m {
			return i
		}
	}
	return -1
}

// String implements fmt.Stringer.
func (m Modality) String() string {
	return string(m)
}

// ParseModality 解析模态名称（大小写不敏感，忽略首尾空白）
func ParseModality(s string) (Modality, error) {
	m := Modality(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", NewError(ErrValidation, "unknown modality "+quote(s)).
			WithField("modality")
	}
	return m, nil
}

// ModalityNames returns the names of all recognized modalities.
func ModalityNames() []string {
	names := make([]string, len(allModalities))
	for i, m := range allModalities {
		names[i] = string(m)
	}
	return names
}
