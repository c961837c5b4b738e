package bench

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a typed literal as it appears in an insert or a predicate.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Str   string
}

func IntValue(v int64) Value     { return Value{Kind: KindInt, Int: v} }
func FloatValue(v float64) Value { return Value{Kind: KindFloat, Float: v} }
func StringValue(v string) Value { return Value{Kind: KindString, Str: v} }

// String renders the literal. Floats always carry exactly two decimals and
// strings are double-quoted.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'f', 2, 64)
	case KindString:
		return `"` + v.Str + `"`
	default:
		panic(fmt.Sprintf("invalid value kind %d", v.Kind))
	}
}

// Op is a comparison operator in a delete predicate.
type Op string

const (
	OpEQ Op = "="
	OpNE Op = "<>"
	OpLT Op = "<"
	OpLE Op = "<="
	OpGT Op = ">"
	OpGE Op = ">="
)

var (
	numericOps = []Op{OpEQ, OpNE, OpLT, OpLE, OpGT, OpGE}
	stringOps  = []Op{OpEQ, OpNE}
)

// OpsFor returns the operators a predicate on a field of type t may use.
// Ordering is only defined for numeric types.
func OpsFor(t FieldType) []Op {
	if t.Numeric() {
		return numericOps
	}
	return stringOps
}

// PredicateStyle controls whitespace inside a delete predicate.
type PredicateStyle string

const (
	// StyleSpaced renders ( A op v ).
	StyleSpaced PredicateStyle = "spaced"
	// StyleCompact renders (Aopv).
	StyleCompact PredicateStyle = "compact"
)

func (s PredicateStyle) valid() bool {
	return s == StyleSpaced || s == StyleCompact
}

type Predicate struct {
	Field string
	Op    Op
	Value Value
}

func (p Predicate) Format(style PredicateStyle) string {
	if style == StyleCompact {
		return "(" + p.Field + string(p.Op) + p.Value.String() + ")"
	}
	return "( " + p.Field + " " + string(p.Op) + " " + p.Value.String() + " )"
}

// Command is one line of the script.
type Command interface {
	String() string
	// Kind names the command verb; used as a metrics label.
	Kind() string
}

type CreateDB struct{ Name string }

func (c CreateDB) String() string { return "createdb " + c.Name + ";" }
func (CreateDB) Kind() string     { return "createdb" }

type OpenDB struct{ Name string }

func (c OpenDB) String() string { return "opendb " + c.Name + ";" }
func (OpenDB) Kind() string     { return "opendb" }

type CloseDB struct{}

func (CloseDB) String() string { return "closedb;" }
func (CloseDB) Kind() string   { return "closedb" }

type DestroyDB struct{ Name string }

func (c DestroyDB) String() string { return "destroydb " + c.Name + ";" }
func (DestroyDB) Kind() string     { return "destroydb" }

type Quit struct{}

func (Quit) String() string { return "quit;" }
func (Quit) Kind() string   { return "quit" }

type Create struct{ Entity *Entity }

func (c Create) String() string {
	var b strings.Builder
	b.WriteString("create ")
	b.WriteString(c.Entity.Name)
	b.WriteByte('(')
	for i, f := range c.Entity.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteByte('=')
		b.WriteString(f.Type.Tag())
	}
	b.WriteString(");")
	return b.String()
}
func (Create) Kind() string { return "create" }

// Insert uses the named-field form; Fields and Values are parallel.
type Insert struct {
	Entity string
	Fields []string
	Values []Value
}

func (c Insert) String() string {
	var b strings.Builder
	b.WriteString("insert into ")
	b.WriteString(c.Entity)
	b.WriteByte('(')
	for i, f := range c.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f)
		b.WriteByte('=')
		b.WriteString(c.Values[i].String())
	}
	b.WriteString(");")
	return b.String()
}
func (Insert) Kind() string { return "insert" }

type Delete struct {
	Entity string
	Where  Predicate
	Style  PredicateStyle
}

func (c Delete) String() string {
	return "delete from " + c.Entity + " where " + c.Where.Format(c.Style) + ";"
}
func (Delete) Kind() string { return "delete" }

type Print struct{ Entity string }

func (c Print) String() string { return "print " + c.Entity + ";" }
func (Print) Kind() string     { return "print" }

// Comment is a section banner. The prefix is part of the profile since the
// two profiles use different comment markers.
type Comment struct {
	Prefix string
	Text   string
}

func (c Comment) String() string { return c.Prefix + c.Text }
func (Comment) Kind() string     { return "comment" }
