package properties

// Builder provides a fluent API to construct a Config with options and
// structural readers/writers pre-registered.
type Builder struct {
	opts    []Option
	readers []ValueReader
	writers []ValueWriter
}

// NewBuilder creates a new builder.
func NewBuilder() *Builder { return &Builder{} }

// WithOptions appends configuration options to the builder.
func (b *Builder) WithOptions(opts ...Option) *Builder { b.opts = append(b.opts, opts...); return b }

// AddValueReader registers a structural reader on the built Config.
func (b *Builder) AddValueReader(r ValueReader) *Builder {
	b.readers = append(b.readers, r)
	return b
}

// AddValueWriter registers a structural writer on the built Config.
func (b *Builder) AddValueWriter(w ValueWriter) *Builder {
	b.writers = append(b.writers, w)
	return b
}

// Build constructs the Config, seeding each registry with a single store.
func (b *Builder) Build() *Config {
	c := NewWithOptions(b.opts...)
	if len(b.readers) > 0 {
		store := &readerStore{readers: make([]ValueReader, len(b.readers))}
		copy(store.readers, b.readers)
		c.readers.Store(store)
	}
	if len(b.writers) > 0 {
		store := &writerStore{writers: make([]ValueWriter, len(b.writers))}
		copy(store.writers, b.writers)
		c.writers.Store(store)
	}
	return c
}
