package bench

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the storage class of a field.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
)

// FieldType is a declared column type. Width is only meaningful for strings.
type FieldType struct {
	Kind  Kind
	Width int
}

var (
	TypeInt   = FieldType{Kind: KindInt}
	TypeFloat = FieldType{Kind: KindFloat}
)

// TypeString returns a fixed-width string type of the given byte width.
func TypeString(width int) FieldType {
	return FieldType{Kind: KindString, Width: width}
}

// Tag renders the type the way the create command expects it: i, f or s<width>.
func (t FieldType) Tag() string {
	switch t.Kind {
	case KindInt:
		return "i"
	case KindFloat:
		return "f"
	case KindString:
		return "s" + strconv.Itoa(t.Width)
	default:
		panic(fmt.Sprintf("invalid field kind %d", t.Kind))
	}
}

// Numeric reports whether ordering comparisons are defined for the type.
func (t FieldType) Numeric() bool {
	return t.Kind != KindString
}

// Size is the on-page byte size of a value of this type.
func (t FieldType) Size() int {
	if t.Kind == KindString {
		return t.Width
	}
	return 4
}

// ParseFieldType parses a type tag produced by Tag.
func ParseFieldType(tag string) (FieldType, error) {
	switch {
	case tag == "i":
		return TypeInt, nil
	case tag == "f":
		return TypeFloat, nil
	case strings.HasPrefix(tag, "s"):
		w, err := strconv.Atoi(tag[1:])
		if err != nil || w <= 0 {
			return FieldType{}, fmt.Errorf("invalid string width in type tag %q", tag)
		}
		return TypeString(w), nil
	default:
		return FieldType{}, fmt.Errorf("unknown type tag %q", tag)
	}
}

type Field struct {
	Name string
	Type FieldType
}

// Entity is a record kind with a fixed column order.
type Entity struct {
	Name   string
	Fields []Field
}

// Field looks up a column by name.
func (e *Entity) Field(name string) (Field, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RecordSize is the sum of the column sizes.
func (e *Entity) RecordSize() int {
	n := 0
	for _, f := range e.Fields {
		n += f.Type.Size()
	}
	return n
}

// Page layout of the target engine. A page carries a fixed header and a slot
// bitmap, so the number of records per page is bounded by both the usable
// bytes and the slot count.
const (
	PageSize       = 512
	PageHeaderSize = 16
	PageSlots      = 8 * 8
)

// RecordsPerPage estimates how many records of the entity share one page.
func (e *Entity) RecordsPerPage() int {
	size := e.RecordSize()
	if size <= 0 {
		return PageSlots
	}
	return min((PageSize-PageHeaderSize)/size, PageSlots)
}

// EstimatePages returns the number of pages needed to hold n live records.
func (e *Entity) EstimatePages(n int) int {
	if n <= 0 {
		return 0
	}
	rpp := e.RecordsPerPage()
	if rpp <= 0 {
		return n
	}
	return (n + rpp - 1) / rpp
}

// Schema is the ordered set of entities declared at the top of every script.
type Schema struct {
	Entities []*Entity
}

func (s *Schema) Entity(name string) (*Entity, bool) {
	for _, e := range s.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

const nameWidth = 16

// DefaultSchema returns the four fixed entities in declaration order.
func DefaultSchema() *Schema {
	s16 := TypeString(nameWidth)
	return &Schema{
		Entities: []*Entity{
			{Name: "Student", Fields: []Field{
				{Name: "ID", Type: TypeInt},
				{Name: "Name", Type: s16},
				{Name: "Dept", Type: s16},
				{Name: "GPA", Type: TypeFloat},
			}},
			{Name: "Professor", Fields: []Field{
				{Name: "Faculty", Type: s16},
				{Name: "Dept", Type: s16},
				{Name: "SID", Type: TypeInt},
			}},
			{Name: "Course", Fields: []Field{
				{Name: "Course", Type: s16},
				{Name: "Credits", Type: TypeInt},
				{Name: "Dept", Type: s16},
			}},
			{Name: "Enrollment", Fields: []Field{
				{Name: "SID", Type: TypeInt},
				{Name: "Course", Type: s16},
				{Name: "Semester", Type: s16},
			}},
		},
	}
}
