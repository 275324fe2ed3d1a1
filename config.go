package properties

import (
	"bytes"
	"math/big"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Config is the read-only configuration bundle consulted during resolution.
// All knobs are fixed at construction; only reader/writer registration mutates
// a Config afterwards, through copy-on-write stores that are safe to use
// concurrently with resolution.
type Config struct {
	fieldAccessLevel  AccessLevel
	methodAccessLevel AccessLevel
	srcConvention     NamingConvention
	dstConvention     NamingConvention
	srcTransformer    NameTransformer
	dstTransformer    NameTransformer
	fieldMatching     bool
	internalTypes     map[reflect.Type]struct{}
	regMu             sync.Mutex   // serializes the copy-and-store of both stores
	readers           atomic.Value // holds *readerStore
	writers           atomic.Value // holds *writerStore
}

// Option configures a Config under construction.
type Option func(*Config)

// WithFieldAccessLevel sets the access level applied to field members.
func WithFieldAccessLevel(level AccessLevel) Option {
	return func(c *Config) { c.fieldAccessLevel = level }
}

// WithMethodAccessLevel sets the access level applied to method members.
func WithMethodAccessLevel(level AccessLevel) Option {
	return func(c *Config) { c.methodAccessLevel = level }
}

// WithSourceNamingConvention sets the convention filtering accessor candidates.
func WithSourceNamingConvention(nc NamingConvention) Option {
	return func(c *Config) { c.srcConvention = nc }
}

// WithDestinationNamingConvention sets the convention filtering mutator candidates.
func WithDestinationNamingConvention(nc NamingConvention) Option {
	return func(c *Config) { c.dstConvention = nc }
}

// WithSourceNameTransformer sets the transformer deriving accessor names.
func WithSourceNameTransformer(nt NameTransformer) Option {
	return func(c *Config) { c.srcTransformer = nt }
}

// WithDestinationNameTransformer sets the transformer deriving mutator names.
func WithDestinationNameTransformer(nt NameTransformer) Option {
	return func(c *Config) { c.dstTransformer = nt }
}

// WithFieldMatching enables or disables the field pass of reflective
// resolution. When disabled only method members qualify.
func WithFieldMatching(enabled bool) Option {
	return func(c *Config) { c.fieldMatching = enabled }
}

// WithInternalTypes replaces the set of types pruned during hierarchy
// traversal. Pass example values or reflect.Type instances.
func WithInternalTypes(types ...any) Option {
	return func(c *Config) { c.internalTypes = internalSet(types) }
}

// WithAdditionalInternalTypes extends the default pruned-type set.
func WithAdditionalInternalTypes(types ...any) Option {
	return func(c *Config) {
		for t := range internalSet(types) {
			c.internalTypes[t] = struct{}{}
		}
	}
}

// New creates a Config with defaults: exported members only, field matching
// enabled, Go naming conventions and the Go name transformer on both sides.
func New() *Config { return NewWithOptions() }

// NewWithOptions creates a Config with the provided options applied over the
// defaults.
func NewWithOptions(opts ...Option) *Config {
	c := &Config{
		fieldAccessLevel:  AccessLevelPublic,
		methodAccessLevel: AccessLevelPublic,
		srcConvention:     GoAccessorConvention,
		dstConvention:     GoMutatorConvention,
		srcTransformer:    GoNameTransformer,
		dstTransformer:    GoNameTransformer,
		fieldMatching:     true,
		internalTypes:     defaultInternalTypes(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.readers.Store(&readerStore{})
	c.writers.Store(&writerStore{})
	return c
}

// FieldAccessLevel returns the access level applied to field members.
func (c *Config) FieldAccessLevel() AccessLevel { return c.fieldAccessLevel }

// MethodAccessLevel returns the access level applied to method members.
func (c *Config) MethodAccessLevel() AccessLevel { return c.methodAccessLevel }

// SourceNamingConvention returns the convention filtering accessor candidates.
func (c *Config) SourceNamingConvention() NamingConvention { return c.srcConvention }

// DestinationNamingConvention returns the convention filtering mutator candidates.
func (c *Config) DestinationNamingConvention() NamingConvention { return c.dstConvention }

// SourceNameTransformer returns the transformer deriving accessor names.
func (c *Config) SourceNameTransformer() NameTransformer { return c.srcTransformer }

// DestinationNameTransformer returns the transformer deriving mutator names.
func (c *Config) DestinationNameTransformer() NameTransformer { return c.dstTransformer }

// IsFieldMatchingEnabled reports whether the field pass runs during
// reflective resolution.
func (c *Config) IsFieldMatchingEnabled() bool { return c.fieldMatching }

// RegisterValueReader adds a structural reader. Readers are consulted in
// registration order; the first whose Supports accepts the source type wins.
// Registration is serialized; concurrent calls never lose an entry.
func (c *Config) RegisterValueReader(r ValueReader) {
	c.regMu.Lock()
	defer c.regMu.Unlock()
	registerReader(&c.readers, r)
}

// RegisterValueWriter adds a structural writer. Writers are consulted in
// registration order; the first whose Supports accepts the destination type
// wins. Registration is serialized; concurrent calls never lose an entry.
func (c *Config) RegisterValueWriter(w ValueWriter) {
	c.regMu.Lock()
	defer c.regMu.Unlock()
	registerWriter(&c.writers, w)
}

// ValueReaderFor returns the first registered reader supporting t, or nil.
func (c *Config) ValueReaderFor(t reflect.Type) ValueReader {
	return c.readers.Load().(*readerStore).firstSupported(t)
}

// ValueWriterFor returns the first registered writer supporting t, or nil.
func (c *Config) ValueWriterFor(t reflect.Type) ValueWriter {
	return c.writers.Load().(*writerStore).firstSupported(t)
}

// ValueReaders returns a snapshot of the registered readers in order.
func (c *Config) ValueReaders() []ValueReader {
	s := c.readers.Load().(*readerStore)
	out := make([]ValueReader, len(s.readers))
	copy(out, s.readers)
	return out
}

// ValueWriters returns a snapshot of the registered writers in order.
func (c *Config) ValueWriters() []ValueWriter {
	s := c.writers.Load().(*writerStore)
	out := make([]ValueWriter, len(s.writers))
	copy(out, s.writers)
	return out
}

// isInternal reports whether t is pruned during hierarchy traversal.
func (c *Config) isInternal(t reflect.Type) bool {
	_, ok := c.internalTypes[t]
	return ok
}

func internalSet(types []any) map[reflect.Type]struct{} {
	set := make(map[reflect.Type]struct{}, len(types))
	for _, entry := range types {
		if entry == nil {
			continue
		}
		t, ok := entry.(reflect.Type)
		if !ok {
			t = reflect.TypeOf(entry)
		}
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		set[t] = struct{}{}
	}
	return set
}

// defaultInternalTypes lists platform types that never contain user
// properties. Embedding one of these contributes nothing to the table.
func defaultInternalTypes() map[reflect.Type]struct{} {
	return internalSet([]any{
		time.Time{},
		sync.Mutex{},
		sync.RWMutex{},
		sync.WaitGroup{},
		sync.Once{},
		bytes.Buffer{},
		strings.Builder{},
		big.Int{},
		big.Float{},
		big.Rat{},
	})
}
