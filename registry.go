package properties

import (
	"reflect"
	"sync/atomic"
)

// Member is a named, readable member handle reported by a ValueReader.
type Member interface {
	// Type returns the member value type, or nil when the document format
	// carries no static type information.
	Type() reflect.Type
	// Get reads the member value from source.
	Get(source any) (any, error)
}

// WriterMember is a named, writable member handle reported by a ValueWriter.
type WriterMember interface {
	// Type returns the member value type, or nil when unknown.
	Type() reflect.Type
	// Set writes value into the member on destination.
	Set(destination, value any) error
}

// ValueReader reads named members from a structurally typed source such as a
// decoded document. Structural sources report their full flattened member set
// directly; no hierarchy walk or access level applies.
type ValueReader interface {
	// Supports reports whether the reader can handle sources of type t.
	Supports(t reflect.Type) bool
	// MemberNames lists the member names present on source.
	MemberNames(source any) ([]string, error)
	// Member returns a handle for the named member, or nil when the member
	// is absent.
	Member(source any, name string) (Member, error)
}

// ValueWriter writes named members on a structurally typed destination.
type ValueWriter interface {
	// Supports reports whether the writer can handle destinations of type t.
	Supports(t reflect.Type) bool
	// SupportsMemberEnumeration reports whether MemberNames can list members
	// from the destination type alone. Writers without enumeration are never
	// used for discovery; resolution falls through to the reflective path.
	SupportsMemberEnumeration() bool
	// MemberNames lists the member names writable on destinations of type t.
	MemberNames(t reflect.Type) ([]string, error)
	// Member returns a handle for the named member, or nil when the member
	// is absent.
	Member(t reflect.Type, name string) (WriterMember, error)
}

// readerStore holds registered readers. Registration copies and swaps the
// store under the owning Config's registration lock; lookups read the current
// store lock-free through the atomic.Value.
type readerStore struct {
	readers []ValueReader
}

type writerStore struct {
	writers []ValueWriter
}

func registerReader(store *atomic.Value, r ValueReader) {
	old := store.Load().(*readerStore)
	next := &readerStore{readers: make([]ValueReader, 0, len(old.readers)+1)}
	next.readers = append(next.readers, old.readers...)
	next.readers = append(next.readers, r)
	store.Store(next)
}

func registerWriter(store *atomic.Value, w ValueWriter) {
	old := store.Load().(*writerStore)
	next := &writerStore{writers: make([]ValueWriter, 0, len(old.writers)+1)}
	next.writers = append(next.writers, old.writers...)
	next.writers = append(next.writers, w)
	store.Store(next)
}

func (s *readerStore) firstSupported(t reflect.Type) ValueReader {
	for _, r := range s.readers {
		if r.Supports(t) {
			return r
		}
	}
	return nil
}

func (s *writerStore) firstSupported(t reflect.Type) ValueWriter {
	for _, w := range s.writers {
		if w.Supports(t) {
			return w
		}
	}
	return nil
}
