package properties

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test structs for basic field discovery
type SourceBasic struct {
	Name  string
	Age   int
	Email string
}

func TestResolveAccessors_BasicFields(t *testing.T) {
	cfg := New()

	accessors, err := ResolveAccessors(&SourceBasic{}, reflect.TypeOf(SourceBasic{}), cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age", "email"}, accessors.Names())

	name, ok := accessors.Get("name")
	require.True(t, ok)
	assert.Equal(t, PropertyTypeField, name.PropertyType())
	assert.Equal(t, reflect.TypeOf(""), name.Type())
	assert.Equal(t, reflect.TypeOf(SourceBasic{}), name.DeclaringType())

	val, err := name.Get(&SourceBasic{Name: "John Doe"})
	require.NoError(t, err)
	assert.Equal(t, "John Doe", val)
}

// Embedded structs stand in for the superclass chain; the outer definition
// of a name must replace the embedded one.
type BaseRecord struct {
	ID   int
	Note string
}

type ChildRecord struct {
	BaseRecord
	ID string
}

func TestResolveAccessors_EmbeddedOverride(t *testing.T) {
	cfg := NewWithOptions(
		WithSourceNamingConvention(NoneNamingConvention),
		WithSourceNameTransformer(IdentityNameTransformer),
	)

	accessors, err := ResolveAccessors(nil, reflect.TypeOf(ChildRecord{}), cfg)
	require.NoError(t, err)

	// Ancestor entries come first; the overridden name keeps its position.
	assert.Equal(t, []string{"ID", "Note"}, accessors.Names())

	id, ok := accessors.Get("ID")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(""), id.Type())

	val, err := id.Get(&ChildRecord{BaseRecord: BaseRecord{ID: 7}, ID: "seven"})
	require.NoError(t, err)
	assert.Equal(t, "seven", val)
}

// Shadowing across visibility levels: the embedded unexported member is
// excluded under AccessLevelProtected, admitted and overridden under
// AccessLevelPackagePrivate. Either way exactly one entry survives, bound to
// the child's definition.
type shadowBase struct {
	id int
}

type shadowChild struct {
	shadowBase
	id string
}

func TestResolveAccessors_ShadowedUnexported(t *testing.T) {
	for _, level := range []AccessLevel{AccessLevelProtected, AccessLevelPackagePrivate, AccessLevelPrivate} {
		cfg := NewWithOptions(
			WithFieldAccessLevel(level),
			WithSourceNamingConvention(NoneNamingConvention),
			WithSourceNameTransformer(IdentityNameTransformer),
		)

		accessors, err := ResolveAccessors(nil, reflect.TypeOf(shadowChild{}), cfg)
		require.NoError(t, err)

		require.Equal(t, 1, accessors.Len(), "level %d", level)
		id, ok := accessors.Get("id")
		require.True(t, ok)
		assert.Equal(t, reflect.TypeOf(""), id.Type())

		val, err := id.Get(&shadowChild{shadowBase: shadowBase{id: 7}, id: "seven"})
		require.NoError(t, err)
		assert.Equal(t, "seven", val)
	}
}

// Method-backed properties win over same-named fields because the method
// pass runs after the field pass.
type TitledOverride struct {
	Title string
}

func (t TitledOverride) GetTitle() string { return t.Title + "!" }

func TestResolveAccessors_MethodWinsOverField(t *testing.T) {
	cfg := New()

	accessors, err := ResolveAccessors(nil, reflect.TypeOf(TitledOverride{}), cfg)
	require.NoError(t, err)

	title, ok := accessors.Get("title")
	require.True(t, ok)
	assert.Equal(t, PropertyTypeMethod, title.PropertyType())

	val, err := title.Get(TitledOverride{Title: "Go"})
	require.NoError(t, err)
	assert.Equal(t, "Go!", val)
}

func TestResolveAccessors_FieldMatchingDisabled(t *testing.T) {
	cfg := NewWithOptions(WithFieldMatching(false))

	accessors, err := ResolveAccessors(nil, reflect.TypeOf(SourceBasic{}), cfg)
	require.NoError(t, err)

	assert.Equal(t, 0, accessors.Len())
}

func TestResolveMutators_FieldMatchingDisabled(t *testing.T) {
	cfg := NewWithOptions(WithFieldMatching(false))

	mutators, err := ResolveMutators(reflect.TypeOf(SourceBasic{}), cfg)
	require.NoError(t, err)

	assert.Equal(t, 0, mutators.Len())
}

// Internal platform types are pruned during traversal.
type Timestamped struct {
	time.Time
	Label string
}

func TestResolveAccessors_InternalTypesPruned(t *testing.T) {
	cfg := New()

	accessors, err := ResolveAccessors(nil, reflect.TypeOf(Timestamped{}), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"label"}, accessors.Names())

	direct, err := ResolveAccessors(nil, reflect.TypeOf(time.Time{}), cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, direct.Len())
}

type customInternal struct {
	Inner string
}

type withCustomInternal struct {
	customInternal
	Outer string
}

func TestResolveAccessors_ConfigurableInternalTypes(t *testing.T) {
	cfg := NewWithOptions(WithAdditionalInternalTypes(customInternal{}))

	accessors, err := ResolveAccessors(nil, reflect.TypeOf(withCustomInternal{}), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"outer"}, accessors.Names())
}

func TestResolveAccessors_Deterministic(t *testing.T) {
	cfg := NewWithOptions(WithFieldAccessLevel(AccessLevelPrivate))

	first, err := ResolveAccessors(nil, reflect.TypeOf(ChildRecord{}), cfg)
	require.NoError(t, err)
	second, err := ResolveAccessors(nil, reflect.TypeOf(ChildRecord{}), cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Names(), second.Names())
}

func TestResolveAccessors_NonStructYieldsEmptyTable(t *testing.T) {
	cfg := New()

	accessors, err := ResolveAccessors(nil, reflect.TypeOf(42), cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, accessors.Len())

	accessors, err = ResolveAccessors(nil, nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, accessors.Len())
}

func TestResolveAccessors_PointerTypeResolvesElem(t *testing.T) {
	cfg := New()

	accessors, err := ResolveAccessors(nil, reflect.TypeOf(&SourceBasic{}), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "email"}, accessors.Names())
}

// Mutator discovery over methods and fields.
type Account struct {
	Owner   string
	balance int
}

func (a *Account) Balance() int      { return a.balance }
func (a *Account) SetBalance(v int)  { a.balance = v }
func (a *Account) String() string    { return "account" }
func (a *Account) Close() error      { return nil }
func (a *Account) Refresh(int) error { return nil }

func TestResolveMutators_GoConventions(t *testing.T) {
	cfg := New()

	mutators, err := ResolveMutators(reflect.TypeOf(&Account{}), cfg)
	require.NoError(t, err)

	// Field pass contributes "owner"; method pass contributes "balance" via
	// SetBalance. Refresh has no Set prefix, Close has no argument.
	assert.Equal(t, []string{"owner", "balance"}, mutators.Names())

	balance, ok := mutators.Get("balance")
	require.True(t, ok)
	assert.Equal(t, PropertyTypeMethod, balance.PropertyType())
	assert.Equal(t, reflect.TypeOf(0), balance.Type())

	var acct Account
	require.NoError(t, balance.Set(&acct, 100))
	assert.Equal(t, 100, acct.balance)

	owner, ok := mutators.Get("owner")
	require.True(t, ok)
	require.NoError(t, owner.Set(&acct, "Jane"))
	assert.Equal(t, "Jane", acct.Owner)
}

func TestResolveAccessors_GoConventions(t *testing.T) {
	cfg := New()

	accessors, err := ResolveAccessors(nil, reflect.TypeOf(&Account{}), cfg)
	require.NoError(t, err)

	// String is boilerplate, Close returns only an error, SetBalance and
	// Refresh take arguments. Only the Owner field and Balance remain.
	assert.Equal(t, []string{"owner", "balance"}, accessors.Names())

	balance, ok := accessors.Get("balance")
	require.True(t, ok)

	val, err := balance.Get(&Account{balance: 250})
	require.NoError(t, err)
	assert.Equal(t, 250, val)

	// Pointer-receiver methods stay reachable from a value instance.
	val, err = balance.Get(Account{balance: 9})
	require.NoError(t, err)
	assert.Equal(t, 9, val)
}

// Accessor methods may carry a trailing error result.
type Fallible struct {
	fail bool
}

func (f Fallible) Payload() (string, error) {
	if f.fail {
		return "", assert.AnError
	}
	return "ok", nil
}

func TestResolveAccessors_ErrorResultMethods(t *testing.T) {
	cfg := New()

	accessors, err := ResolveAccessors(nil, reflect.TypeOf(Fallible{}), cfg)
	require.NoError(t, err)

	payload, ok := accessors.Get("payload")
	require.True(t, ok)

	val, err := payload.Get(Fallible{})
	require.NoError(t, err)
	assert.Equal(t, "ok", val)

	_, err = payload.Get(Fallible{fail: true})
	require.Error(t, err)
}
