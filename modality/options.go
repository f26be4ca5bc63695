package modality

// Option configures a Router or a Converter.
type Option func(*options)

type options struct {
	registry *Registry
	quality  QualityPolicy
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}
	if o.quality == nil {
		o.quality = DefaultQualityTable()
	}
	return o
}

// WithRegistry makes the instance use r directly. Passing the same registry
// to a Router and a Converter shares registrations between them.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithHandlers gives the instance its own registry holding only hs.
func WithHandlers(hs ...Handler) Option {
	return func(o *options) {
		o.registry = NewRegistry(hs...)
	}
}

// WithQualityPolicy replaces the default quality table. Routers ignore it.
func WithQualityPolicy(p QualityPolicy) Option {
	return func(o *options) {
		o.quality = p
	}
}
