package bench

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/kocubinski/minirel-bench/bench/metrics"
)

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrMissingField  = errors.New("field has no generator")
	ErrUnknownEntity = errors.New("unknown entity")
	ErrTooWide       = errors.New("value wider than column")
	ErrControlChar   = errors.New("control character in script text")
)

// ScriptParams is a complete, reproducible description of one script.
type ScriptParams struct {
	Profile        string         `yaml:"profile" json:"profile"`
	Seed           uint64         `yaml:"seed" json:"seed"`
	DBName         string         `yaml:"db_name" json:"db_name"`
	OutFile        string         `yaml:"out_file" json:"out_file"`
	PredicateStyle PredicateStyle `yaml:"predicate_style" json:"predicate_style"`
	CommentPrefix  string         `yaml:"comment_prefix" json:"comment_prefix"`
	// Entities lists the generators in the order their sections are written.
	Entities []EntityParams `yaml:"entities" json:"entities"`
}

// Entity returns the parameters configured for the named entity.
func (p ScriptParams) Entity(name string) (EntityParams, bool) {
	for _, e := range p.Entities {
		if e.Entity == name {
			return e, true
		}
	}
	return EntityParams{}, false
}

// Script is a validated parameter set bound to a schema. Writing it cannot
// fail except through the destination writer.
type Script struct {
	Params   ScriptParams
	schema   *Schema
	entities []*entityGen
}

// Compile validates the parameters against the schema. Every schema entity
// must be configured exactly once.
func (p ScriptParams) Compile(schema *Schema) (*Script, error) {
	if p.DBName == "" {
		return nil, fmt.Errorf("database name is required")
	}
	if strings.ContainsAny(p.DBName, " ;") {
		return nil, fmt.Errorf("database name %q must be a single word", p.DBName)
	}
	if err := checkText("database name", p.DBName); err != nil {
		return nil, err
	}
	if err := checkText("comment prefix", p.CommentPrefix); err != nil {
		return nil, err
	}
	if !p.PredicateStyle.valid() {
		return nil, fmt.Errorf("unknown predicate style %q", p.PredicateStyle)
	}
	s := &Script{Params: p, schema: schema}
	seen := map[string]bool{}
	for _, ep := range p.Entities {
		e, ok := schema.Entity(ep.Entity)
		if !ok {
			return nil, fmt.Errorf("%q: %w", ep.Entity, ErrUnknownEntity)
		}
		if seen[ep.Entity] {
			return nil, fmt.Errorf("entity %s configured twice", ep.Entity)
		}
		seen[ep.Entity] = true
		g, err := compileEntity(e, ep)
		if err != nil {
			return nil, err
		}
		s.entities = append(s.entities, g)
	}
	for _, e := range schema.Entities {
		if !seen[e.Name] {
			return nil, fmt.Errorf("entity %s has no generator", e.Name)
		}
	}
	return s, nil
}

// WriteOptions carries the ambient collaborators of a write.
type WriteOptions struct {
	Log     zerolog.Logger
	Metrics *metrics.Script
}

// Write generates the whole script into w: header, one section per entity
// in parameter order, footer. Output is a pure function of the parameters.
func (s *Script) Write(w io.Writer, opts WriteOptions) (*Summary, error) {
	rng := rand.New(rand.NewPCG(s.Params.Seed, s.Params.Seed))
	sw := &scriptWriter{
		w:       bufio.NewWriterSize(w, 1<<20),
		style:   s.Params.PredicateStyle,
		prefix:  s.Params.CommentPrefix,
		log:     opts.Log,
		metrics: opts.Metrics,
		summary: newSummary(s),
	}
	since := time.Now()

	if err := s.writeHeader(sw); err != nil {
		return nil, fmt.Errorf("error writing header: %w", err)
	}
	for _, g := range s.entities {
		if err := g.generate(sw, rng); err != nil {
			return nil, err
		}
	}
	if err := s.writeFooter(sw); err != nil {
		return nil, fmt.Errorf("error writing footer: %w", err)
	}
	if err := sw.w.Flush(); err != nil {
		return nil, fmt.Errorf("error flushing script: %w", err)
	}

	sw.summary.Commands = sw.commands
	sw.summary.Bytes = sw.bytes
	sw.summary.finish()
	opts.Log.Info().Msgf("generated %s commands (%s) in %s",
		humanize.Comma(int64(sw.commands)), humanize.Bytes(uint64(sw.bytes)), time.Since(since))
	return sw.summary, nil
}

func (s *Script) writeHeader(sw *scriptWriter) error {
	if err := sw.command(CreateDB{Name: s.Params.DBName}); err != nil {
		return err
	}
	if err := sw.command(OpenDB{Name: s.Params.DBName}); err != nil {
		return err
	}
	if err := sw.blank(); err != nil {
		return err
	}
	for _, e := range s.schema.Entities {
		if err := sw.command(Create{Entity: e}); err != nil {
			return err
		}
	}
	return sw.blank()
}

// writeFooter prints every entity in declaration order, then tears the
// database down.
func (s *Script) writeFooter(sw *scriptWriter) error {
	for _, e := range s.schema.Entities {
		if err := sw.command(Print{Entity: e.Name}); err != nil {
			return err
		}
	}
	for _, c := range []Command{CloseDB{}, DestroyDB{Name: s.Params.DBName}, Quit{}} {
		if err := sw.command(c); err != nil {
			return err
		}
	}
	return nil
}

// scriptWriter appends lines to the output and keeps the run's tallies.
type scriptWriter struct {
	w       *bufio.Writer
	style   PredicateStyle
	prefix  string
	log     zerolog.Logger
	metrics *metrics.Script
	summary *Summary

	commands int
	bytes    int64
}

func (sw *scriptWriter) line(s string) error {
	n, err := sw.w.WriteString(s)
	sw.bytes += int64(n)
	if err != nil {
		return err
	}
	if err := sw.w.WriteByte('\n'); err != nil {
		return err
	}
	sw.bytes++
	return nil
}

func (sw *scriptWriter) command(c Command) error {
	if err := sw.line(c.String()); err != nil {
		return err
	}
	sw.commands++
	sw.metrics.Command(commandEntity(c), c.Kind())
	return nil
}

func (sw *scriptWriter) comment(text string) error {
	return sw.line(Comment{Prefix: sw.prefix, Text: text}.String())
}

func (sw *scriptWriter) blank() error {
	return sw.line("")
}

func (sw *scriptWriter) noteInsert(entity string) {
	sw.summary.entity(entity).Inserts++
}

func (sw *scriptWriter) notePredicate(entity string, p Predicate) {
	sw.summary.entity(entity).addPredicate(p)
	sw.metrics.Predicate(entity, p.Field, string(p.Op))
}

func (sw *scriptWriter) noteBurst(entity string) {
	sw.summary.entity(entity).Bursts++
	sw.metrics.Burst(entity)
}

func commandEntity(c Command) string {
	switch c := c.(type) {
	case Insert:
		return c.Entity
	case Delete:
		return c.Entity
	case Print:
		return c.Entity
	case Create:
		return c.Entity.Name
	default:
		return ""
	}
}
