package encoder


// Registry holds the two formats this pipeline ever writes: PNG (the
// mandatory output format for every map) and WebP (the optional preview
// grid). Unlike the teacher's registry, availability is not probed at
// runtime — both encoders are pure Go and always available.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry constructs the registry.
func NewRegistry() *Registry {
	r := &Registry{encoders: make(map[string]Encoder)}
	for _, enc := range []Encoder{&PNGEncoder{}, &WebPEncoder{}} {
		r.encoders[enc.Format()] = enc
	}
	return r
}

// Get returns an encoder for the given format, or nil if unknown.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[format]
}

// String summarizes the registry, in the teacher's log-line style.
func (r *Registry) String() string {
	return "encoders: png, webp"
}
