package document

import (
	"reflect"
	"sort"

	"github.com/Station-Manager/errors"
	"github.com/aarondl/null/v8"
	"github.com/goccy/go-json"

	"github.com/Station-Manager/properties"
)

var nullJSONType = reflect.TypeOf(null.JSON{})

// JSONReader reads members from JSON object documents. Accepted carriers are
// null.JSON and any byte-slice type: []byte, json.RawMessage and sqlboiler
// types.JSON all qualify. An invalid null.JSON reports no members. Names are
// reported sorted since JSON object key order is not preserved by decoding.
type JSONReader struct{}

// Supports reports whether t is one of the accepted JSON carrier types.
func (JSONReader) Supports(t reflect.Type) bool {
	t = derefType(t)
	if t == nil {
		return false
	}
	if t == nullJSONType {
		return true
	}
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

// MemberNames lists the top-level object keys of the document, sorted.
func (JSONReader) MemberNames(source any) ([]string, error) {
	const op errors.Op = "document.JSONReader.MemberNames"
	doc, err := decodeDocument(source)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Member returns a handle for the named key, or nil if the document has no
// such key.
func (JSONReader) Member(source any, name string) (properties.Member, error) {
	const op errors.Op = "document.JSONReader.Member"
	doc, err := decodeDocument(source)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	val, ok := doc[name]
	if !ok {
		return nil, nil
	}
	return jsonMember{key: name, typ: reflect.TypeOf(val)}, nil
}

// jsonMember decodes the document on every Get; the reader is stateless and
// holds no reference to the source it was resolved from.
type jsonMember struct {
	key string
	typ reflect.Type
}

func (m jsonMember) Type() reflect.Type { return m.typ }

func (m jsonMember) Get(source any) (any, error) {
	const op errors.Op = "document.jsonMember.Get"
	doc, err := decodeDocument(source)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	return doc[m.key], nil
}

// decodeDocument extracts the raw bytes from any accepted carrier and
// unmarshals the top-level object. Empty carriers yield an empty document.
func decodeDocument(source any) (map[string]any, error) {
	const op errors.Op = "document.decodeDocument"
	if source == nil {
		return nil, errors.New(op).Msg(ErrMsgNotJSON)
	}
	var raw []byte
	if nj, ok := source.(null.JSON); ok {
		if !nj.Valid {
			return map[string]any{}, nil
		}
		raw = nj.JSON
	} else {
		v := reflect.ValueOf(source)
		for v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return nil, errors.New(op).Msg(ErrMsgNotJSON)
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Slice || v.Type().Elem().Kind() != reflect.Uint8 {
			return nil, errors.New(op).Errorf("%s Got %T.", ErrMsgNotJSON, source)
		}
		raw = v.Bytes()
	}
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	doc := make(map[string]any)
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.New(op).Err(err)
	}
	return doc, nil
}
