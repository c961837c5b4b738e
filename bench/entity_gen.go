package bench

import (
	"fmt"
	"math/rand/v2"

	"github.com/dustin/go-humanize"
)

// EntityParams configures the generator for one entity.
type EntityParams struct {
	Entity string `yaml:"entity" json:"entity"`
	Count  int    `yaml:"count" json:"count"`
	// Banner is written as a comment line ahead of the entity's inserts.
	Banner string      `yaml:"banner,omitempty" json:"banner,omitempty"`
	Fields []FieldGen  `yaml:"fields" json:"fields"`
	Burst  BurstPolicy `yaml:"burst" json:"burst"`
}

// Generator returns the generator configured for field, if any.
func (p EntityParams) Generator(field string) (ValueGen, bool) {
	for _, f := range p.Fields {
		if f.Field == field {
			return f.ValueGen, true
		}
	}
	return ValueGen{}, false
}

// entityGen is a compiled EntityParams. Field draws follow the schema's
// column order so that the PRNG stream is fixed by the schema, not by the
// order fields happen to be listed in the parameters.
type entityGen struct {
	params EntityParams
	entity *Entity
	names  []string
	draws  []drawFunc
	burst  *burst
}

func compileEntity(e *Entity, p EntityParams) (*entityGen, error) {
	if p.Count < 0 {
		return nil, fmt.Errorf("%s: negative record count %d", e.Name, p.Count)
	}
	if err := checkText(e.Name+": banner", p.Banner); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, f := range p.Fields {
		if _, ok := e.Field(f.Field); !ok {
			return nil, fmt.Errorf("%s: field %q: %w", e.Name, f.Field, ErrUnknownField)
		}
		if seen[f.Field] {
			return nil, fmt.Errorf("%s: field %q configured twice", e.Name, f.Field)
		}
		seen[f.Field] = true
	}

	g := &entityGen{params: p, entity: e}
	for _, f := range e.Fields {
		vg, ok := p.Generator(f.Name)
		if !ok {
			return nil, fmt.Errorf("%s: field %q: %w", e.Name, f.Name, ErrMissingField)
		}
		draw, err := vg.compile(f, p.Count)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name, err)
		}
		g.names = append(g.names, f.Name)
		g.draws = append(g.draws, draw)
	}

	b, err := compileBurst(e, p.Burst, p.Count)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name, err)
	}
	g.burst = b
	return g, nil
}

// record draws the field values of record i.
func (g *entityGen) record(rng *rand.Rand, i int) Insert {
	values := make([]Value, len(g.draws))
	for k, draw := range g.draws {
		values[k] = draw(rng, i)
	}
	return Insert{Entity: g.entity.Name, Fields: g.names, Values: values}
}

// generate writes the entity's section: banner, inserts for ids 1..Count in
// order with bursts interleaved, and a trailing blank line.
func (g *entityGen) generate(sw *scriptWriter, rng *rand.Rand) error {
	log := sw.log.With().Str("entity", g.entity.Name).Logger()
	log.Debug().Msgf("generating %s records", humanize.Comma(int64(g.params.Count)))

	if g.params.Banner != "" {
		if err := sw.comment(g.params.Banner); err != nil {
			return err
		}
	}
	for i := 1; i <= g.params.Count; i++ {
		if err := sw.command(g.record(rng, i)); err != nil {
			return fmt.Errorf("error writing %s insert %d: %w", g.entity.Name, i, err)
		}
		sw.noteInsert(g.entity.Name)
		if _, err := g.burst.inject(sw, rng, i); err != nil {
			return fmt.Errorf("error writing %s delete burst after insert %d: %w", g.entity.Name, i, err)
		}
		if i%progressInterval == 0 {
			log.Debug().Msgf("wrote %s of %s records", humanize.Comma(int64(i)), humanize.Comma(int64(g.params.Count)))
		}
	}
	return sw.blank()
}

const progressInterval = 10_000
