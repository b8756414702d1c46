package ddbc

import "fmt"

// testSchema, testEntity and testProperty are a minimal hand-rolled
// Schema/EntityDescriptor/PropertyDescriptor, used across this package's
// tests instead of the schema subpackage so these tests don't depend on
// reflection or struct tags; they describe exactly the User/Customer
// shapes the test scenarios need.
type testSchema struct {
	entities map[string]*testEntity
}

func newTestSchema() *testSchema {
	return &testSchema{entities: make(map[string]*testEntity)}
}

func (s *testSchema) add(e *testEntity) {
	s.entities[e.name] = e
}

func (s *testSchema) FindEntity(name string) (EntityDescriptor, error) {
	e, ok := s.entities[name]
	if !ok {
		return nil, fmt.Errorf("no such entity %q", name)
	}
	return e, nil
}

type testEntity struct {
	name      string
	tableName string
	props     []*testProperty
	byName    map[string]*testProperty
}

func newTestEntity(name, tableName string) *testEntity {
	return &testEntity{name: name, tableName: tableName, byName: make(map[string]*testProperty)}
}

func (e *testEntity) field(propName, column string) *testEntity {
	p := &testProperty{name: propName, column: column}
	e.props = append(e.props, p)
	e.byName[propName] = p
	return e
}

func (e *testEntity) embed(propName string, referenced *testEntity) *testEntity {
	p := &testProperty{name: propName, embedded: true, referenced: referenced}
	e.props = append(e.props, p)
	e.byName[propName] = p
	return e
}

func (e *testEntity) Name() string       { return e.name }
func (e *testEntity) TableName() string  { return e.tableName }
func (e *testEntity) PropertyCount() int { return len(e.props) }

func (e *testEntity) PropertyAt(i int) PropertyDescriptor { return e.props[i] }

func (e *testEntity) FindProperty(name string) (PropertyDescriptor, error) {
	p, ok := e.byName[name]
	if !ok {
		return nil, fmt.Errorf("entity %q has no property %q", e.name, name)
	}
	return p, nil
}

type testProperty struct {
	name       string
	column     string
	embedded   bool
	referenced *testEntity
}

func (p *testProperty) PropertyName() string { return p.name }
func (p *testProperty) ColumnName() string   { return p.column }
func (p *testProperty) IsEmbedded() bool     { return p.embedded }

func (p *testProperty) ReferencedEntity() EntityDescriptor {
	if p.referenced == nil {
		return nil
	}
	return p.referenced
}

// userSchema returns the User(id, name, flags, home.city, home.zip)/Customer(id,
// fullName) schema the package's test scenarios are written against.
func userSchema() *testSchema {
	home := newTestEntity("User.Home", "")
	home.field("city", "city").field("zip", "zip")

	user := newTestEntity("User", "users")
	user.field("id", "id").field("name", "name").field("flags", "flags").embed("home", home)

	customer := newTestEntity("Customer", "customers")
	customer.field("id", "id").field("fullName", "full_name")

	s := newTestSchema()
	s.add(user)
	s.add(customer)
	return s
}

// testWriter implements StatementWriter by recording SetValue calls.
type testWriter struct {
	values map[int]interface{}
}

func newTestWriter() *testWriter {
	return &testWriter{values: make(map[int]interface{})}
}

func (w *testWriter) SetValue(index int, value interface{}) error {
	w.values[index] = value
	return nil
}
