package modality

import "github.com/BaSui01/modality/types"

// Handler normalizes payloads of one modality and bridges them to and from
// plain text. Implementations must not fail on any well-formed Content.
type Handler interface {
	// Modality returns the modality this handler owns.
	Modality() types.Modality

	// Handle normalizes in.Content within the handler's own modality.
	Handle(in types.Input) types.Output

	// ToText projects in.Content to plain text, the pivot for cross-modality conversion.
	ToText(in types.Input) string

	// FromText builds an Output of the handler's modality from plain text.
	FromText(text string) types.Output
}
