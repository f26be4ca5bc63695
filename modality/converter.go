package modality

import (
	"fmt"

	"github.com/BaSui01/modality/types"
)

// Converter converts inputs between modalities.
//
// The conversion path is source -> text -> target. Same-modality
// conversions call the handler's Handle directly and score 1.0.
type Converter struct {
	registry *Registry
	quality  QualityPolicy
}

// NewConverter creates a converter. Without options it owns a fresh default
// registry and uses DefaultQualityTable.
func NewConverter(opts ...Option) *Converter {
	o := buildOptions(opts)
	return &Converter{registry: o.registry, quality: o.quality}
}

// Registry returns the registry the converter reads from.
func (c *Converter) Registry() *Registry {
	return c.registry
}

// RegisterHandler adds or replaces the handler for h.Modality().
func (c *Converter) RegisterHandler(h Handler) {
	c.registry.Register(h)
}

// SupportedModalities returns every modality with a registered handler.
func (c *Converter) SupportedModalities() []types.Modality {
	return c.registry.Modalities()
}

// Convert converts in to the target modality.
//
// A missing source handler yields SOURCE_HANDLER_MISSING and a missing target
// handler TARGET_HANDLER_MISSING; both match types.ErrUnregisteredModality.
func (c *Converter) Convert(in types.Input, target types.Modality) (types.ConversionResult, error) {
	source := in.Modality

	sourceHandler, targetHandler, err := c.Resolve(source, target)
	if err != nil {
		return types.ConversionResult{}, err
	}

	var (
		out     types.Output
		quality float64
	)
	if source == target {
		out = sourceHandler.Handle(in)
		quality = 1.0
	} else {
		intermediate := sourceHandler.ToText(in)
		out = targetHandler.FromText(intermediate)
		quality = c.quality.Score(source, target)
	}

	result, err := types.NewConversionResult(source, target, out, quality)
	if err != nil {
		return types.ConversionResult{}, fmt.Errorf("convert %s -> %s: %w", source, target, err)
	}
	return result, nil
}

// Resolve looks up the handlers a source -> target conversion would use.
// The source side is checked first.
func (c *Converter) Resolve(source, target types.Modality) (Handler, Handler, error) {
	sourceHandler, ok := c.registry.Lookup(source)
	if !ok {
		return nil, nil, types.NewHandlerMissingError(types.SideSource, source)
	}
	targetHandler, ok := c.registry.Lookup(target)
	if !ok {
		return nil, nil, types.NewHandlerMissingError(types.SideTarget, target)
	}
	return sourceHandler, targetHandler, nil
}
