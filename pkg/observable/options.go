package observable

// Provenance identifies the party responsible for a change. Tokens are
// compared by identity, never by name: two tokens created with the same name
// are still distinct origins.
type Provenance struct {
	name string
}

// NewProvenance returns a fresh provenance token. The name is only used for
// diagnostics.
func NewProvenance(name string) *Provenance {
	return &Provenance{name: name}
}

// String returns the diagnostic name of the token.
func (p *Provenance) String() string {
	if p == nil {
		return "<none>"
	}
	return p.name
}

// Options is forwarded verbatim from Set/Unset to every listener.
type Options struct {
	// Origin tags the write with the party that caused it.
	Origin *Provenance
	// Meta carries arbitrary caller data.
	Meta map[string]any
}

// From reports whether the options were tagged with the provided token.
func (o Options) From(origin *Provenance) bool {
	return origin != nil && o.Origin == origin
}

func firstOptions(opts []Options) Options {
	if len(opts) == 0 {
		return Options{}
	}
	return opts[0]
}
