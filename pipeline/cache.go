package pipeline

import (
	"context"

	"github.com/BaSui01/modality/types"
)

// Cache stores conversion results. Lookup returns an error matching
// cache.ErrCacheMiss when nothing is stored; any other error is treated
// as a cache fault.
//
// scope identifies the handler set that produced a result. Entries stored
// under one scope must never be returned for another.
type Cache interface {
	Lookup(ctx context.Context, in types.Input, target types.Modality, scope string) (types.ConversionResult, error)
	Store(ctx context.Context, in types.Input, target types.Modality, scope string, result types.ConversionResult) error
}
