package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxidelab/ferrolens/pkg/models"
	"github.com/oxidelab/ferrolens/pkg/parser"
)

func extractSource(t *testing.T, source string) []models.TypeRecord {
	t.Helper()
	p := parser.New()
	defer p.Close()

	result, err := p.Parse([]byte(source), "test.rs")
	require.NoError(t, err)
	return Extract(result)
}

func TestExtract_StructFields(t *testing.T) {
	records := extractSource(t, `
struct User {
    name: String,
    email: String,
    address: Address,
}
`)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "User", rec.Name)
	require.Len(t, rec.Fields, 3)
	assert.Equal(t, models.Field{Name: "name", Type: "String"}, rec.Fields[0])
	assert.Equal(t, models.Field{Name: "email", Type: "String"}, rec.Fields[1])
	assert.Equal(t, models.Field{Name: "address", Type: "Address"}, rec.Fields[2])
	assert.Empty(t, rec.Methods)
	assert.Empty(t, rec.Traits)
}

func TestExtract_RawTypeText(t *testing.T) {
	records := extractSource(t, `
struct Registry {
    entries: Vec<Entry>,
    label: &'static str,
}
`)
	require.Len(t, records, 1)
	assert.Equal(t, "Vec<Entry>", records[0].Fields[0].Type)
	assert.Equal(t, "&'static str", records[0].Fields[1].Type)
}

func TestExtract_TupleAndUnitStructs(t *testing.T) {
	records := extractSource(t, `
struct Wrapper(u32);
struct Marker;
`)
	require.Len(t, records, 2)
	assert.Equal(t, "Wrapper", records[0].Name)
	assert.Empty(t, records[0].Fields)
	assert.Equal(t, "Marker", records[1].Name)
	assert.Empty(t, records[1].Fields)
}

func TestExtract_DeclarationOrder(t *testing.T) {
	records := extractSource(t, `
struct Zebra { a: u8 }
struct Alpha { b: u8 }
struct Mid { c: u8 }
`)
	require.Len(t, records, 3)
	assert.Equal(t, "Zebra", records[0].Name)
	assert.Equal(t, "Alpha", records[1].Name)
	assert.Equal(t, "Mid", records[2].Name)
}

func TestExtract_AttachesMethods(t *testing.T) {
	records := extractSource(t, `
struct Counter {
    count: u32,
}

impl Counter {
    fn increment(&mut self) {
        self.count = self.count + 1;
    }

    fn get(&self) -> u32 {
        self.count
    }
}
`)
	require.Len(t, records, 1)

	rec := records[0]
	require.Len(t, rec.Methods, 2)
	assert.Equal(t, "increment", rec.Methods[0].Name)
	assert.Equal(t, "get", rec.Methods[1].Name)
	assert.Equal(t, []string{"count"}, rec.Methods[1].FieldsAccessed)
}

func TestExtract_TraitImplRecordsTraitOnly(t *testing.T) {
	records := extractSource(t, `
struct User {
    name: String,
}

impl Display for User {
    fn fmt(&self, f: &mut Formatter) -> Result {
        write!(f, "{}", self.name)
    }
}

impl Clone for User {
    fn clone(&self) -> Self {
        User { name: self.name.clone() }
    }
}
`)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, []string{"Display", "Clone"}, rec.Traits)
	// Trait impl functions are not extracted as methods.
	assert.Empty(t, rec.Methods)
}

func TestExtract_DuplicateTraitImplRecordedOnce(t *testing.T) {
	records := extractSource(t, `
struct A { x: u8 }
impl Default for A { fn default() -> Self { A { x: 0 } } }
impl Default for A { fn default() -> Self { A { x: 1 } } }
`)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"Default"}, records[0].Traits)
}

func TestExtract_UnknownImplIgnored(t *testing.T) {
	// Implementing a type declared elsewhere (possibly in a file that
	// failed to parse) is not an error.
	records := extractSource(t, `
struct Known { x: u8 }

impl Unknown {
    fn nothing(&self) {}
}
`)
	require.Len(t, records, 1)
	assert.Equal(t, "Known", records[0].Name)
	assert.Empty(t, records[0].Methods)
}

func TestExtract_GenericImplSelfType(t *testing.T) {
	// impl<T> Holder<T> resolves to the Holder record by base name.
	records := extractSource(t, `
struct Holder<T> {
    value: T,
}

impl<T> Holder<T> {
    fn value(&self) -> &T {
        &self.value
    }
}
`)
	require.Len(t, records, 1)
	require.Len(t, records[0].Methods, 1)
	assert.Equal(t, []string{"value"}, records[0].Methods[0].FieldsAccessed)
}

func TestExtract_NestedStructsNotExtracted(t *testing.T) {
	records := extractSource(t, `
fn helper() {
    struct Local { x: u8 }
}

struct TopLevel { y: u8 }
`)
	require.Len(t, records, 1)
	assert.Equal(t, "TopLevel", records[0].Name)
}

func TestExtract_MethodsInDeclarationOrder(t *testing.T) {
	records := extractSource(t, `
struct S { a: u8 }

impl S {
    fn third_alphabetically_first(&self) {}
    fn beta(&self) {}
    fn alpha(&self) {}
}
`)
	require.Len(t, records, 1)
	names := make([]string, 0, 3)
	for _, m := range records[0].Methods {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"third_alphabetically_first", "beta", "alpha"}, names)
}
