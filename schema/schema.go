// Package schema is a reflection-based implementation of ddbc.Schema,
// built the way this stack's reflectx.Mapper walks struct fields, but
// deliberately not flattening named embedded structs: a struct field
// tagged "embedded" becomes a property whose ReferencedEntity is the
// nested entity built from its own type, so ddbc's dotted-path field
// resolution has something to recurse into. Anonymous (Go-embedded)
// fields without a tag are flattened in the usual reflectx way.
package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/lkorigin/ddbc"
)

// propertyTag names the OQL-facing property (and, with the "embedded"
// option, marks a nested entity). columnTag gives the SQL column name,
// matching this stack's "db" convention; if absent, the column name
// defaults to the lower-cased field name.
const (
	propertyTag = "oql"
	columnTag   = "db"
)

// Registry is a ddbc.Schema backed by Go struct types registered once at
// startup. Entity layouts are derived by reflection on first Register
// and cached; FindEntity never re-walks a type.
type Registry struct {
	mu       sync.Mutex
	entities map[string]*entity
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entities: make(map[string]*entity)}
}

// Register makes name a queryable entity backed by tableName, with its
// columns derived from sample's type (a struct or a pointer to one).
func (r *Registry) Register(name, tableName string, sample interface{}) error {
	t := derefType(reflect.TypeOf(sample))
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("schema: %T is not a struct", sample)
	}

	e := &entity{name: name, tableName: tableName, byName: make(map[string]*property)}
	if err := e.walk(t); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entities[name] = e
	return nil
}

// FindEntity implements ddbc.Schema.
func (r *Registry) FindEntity(name string) (ddbc.EntityDescriptor, error) {
	r.mu.Lock()
	e, ok := r.entities[name]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("schema: no such entity %q", name)
	}
	return e, nil
}

type entity struct {
	name      string
	tableName string
	props     []*property
	byName    map[string]*property
}

func (e *entity) Name() string      { return e.name }
func (e *entity) TableName() string { return e.tableName }
func (e *entity) PropertyCount() int { return len(e.props) }

func (e *entity) PropertyAt(i int) ddbc.PropertyDescriptor { return e.props[i] }

func (e *entity) FindProperty(name string) (ddbc.PropertyDescriptor, error) {
	p, ok := e.byName[name]
	if !ok {
		return nil, fmt.Errorf("schema: entity %q has no property %q", e.name, name)
	}
	return p, nil
}

// walk populates e from t's exported fields. Anonymous fields with no
// oql tag are flattened depth-first, at the point where they appear in
// field order; the walk is not breadth-first, so a promoted field can
// shadow a later outer field of the same name. Everything else becomes
// one property.
func (e *entity) walk(t reflect.Type) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}

		tag := f.Tag.Get(propertyTag)
		if tag == "-" {
			continue
		}

		if f.Anonymous && tag == "" {
			ft := derefType(f.Type)
			if ft.Kind() == reflect.Struct {
				if err := e.walk(ft); err != nil {
					return err
				}
				continue
			}
		}

		parts := strings.Split(tag, ",")
		propName := parts[0]
		embedded := false
		for _, opt := range parts[1:] {
			if opt == "embedded" {
				embedded = true
			}
		}
		if propName == "" {
			propName = f.Name
		}

		if embedded {
			ft := derefType(f.Type)
			if ft.Kind() != reflect.Struct {
				return fmt.Errorf("schema: field %s tagged embedded is not a struct", f.Name)
			}
			nested := &entity{name: e.name + "." + propName, byName: make(map[string]*property)}
			if err := nested.walk(ft); err != nil {
				return err
			}
			e.addProperty(&property{name: propName, embedded: true, referenced: nested})
			continue
		}

		column := f.Tag.Get(columnTag)
		if column == "" {
			column = strings.ToLower(f.Name)
		}
		e.addProperty(&property{name: propName, column: column})
	}
	return nil
}

func (e *entity) addProperty(p *property) {
	if _, exists := e.byName[p.name]; exists {
		return // shadowed by an earlier field at the same name, as reflectx does
	}
	e.props = append(e.props, p)
	e.byName[p.name] = p
}

type property struct {
	name       string
	column     string
	embedded   bool
	referenced *entity
}

func (p *property) PropertyName() string { return p.name }
func (p *property) ColumnName() string   { return p.column }
func (p *property) IsEmbedded() bool     { return p.embedded }

func (p *property) ReferencedEntity() ddbc.EntityDescriptor {
	if p.referenced == nil {
		return nil
	}
	return p.referenced
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
