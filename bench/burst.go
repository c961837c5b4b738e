package bench

import (
	"fmt"
	"math/rand/v2"
)

// FieldGen binds a generator to a named field.
type FieldGen struct {
	Field    string `yaml:"field" json:"field"`
	ValueGen `yaml:",inline"`
}

// BurstPolicy injects a run of deletes after every Period-th insert once the
// record index has passed WarmUp. A zero Period disables bursts.
type BurstPolicy struct {
	WarmUp     int `yaml:"warm_up" json:"warm_up"`
	Period     int `yaml:"period" json:"period"`
	MinDeletes int `yaml:"min_deletes" json:"min_deletes"`
	MaxDeletes int `yaml:"max_deletes" json:"max_deletes"`
	// Targets are the attributes a delete may select on, each with the
	// domain its comparand is drawn from.
	Targets []FieldGen `yaml:"targets" json:"targets"`
}

// Due reports whether a burst follows the insert of record i.
func (p BurstPolicy) Due(i int) bool {
	return p.Period > 0 && i > p.WarmUp && i%p.Period == 0
}

type deleteTarget struct {
	field Field
	ops   []Op
	draw  drawFunc
}

// burst is a compiled BurstPolicy for one entity.
type burst struct {
	policy  BurstPolicy
	entity  string
	targets []deleteTarget
}

func compileBurst(e *Entity, p BurstPolicy, maxIndex int) (*burst, error) {
	if p.Period < 0 || p.WarmUp < 0 {
		return nil, fmt.Errorf("burst period and warm-up must not be negative")
	}
	if p.Period == 0 {
		return &burst{policy: p, entity: e.Name}, nil
	}
	if p.MinDeletes < 0 || p.MaxDeletes < p.MinDeletes {
		return nil, fmt.Errorf("burst size range [%d, %d] is invalid", p.MinDeletes, p.MaxDeletes)
	}
	if p.MaxDeletes > 0 && len(p.Targets) == 0 {
		return nil, fmt.Errorf("burst has no delete targets")
	}
	b := &burst{policy: p, entity: e.Name}
	for _, t := range p.Targets {
		f, ok := e.Field(t.Field)
		if !ok {
			return nil, fmt.Errorf("delete target %q: %w", t.Field, ErrUnknownField)
		}
		draw, err := t.ValueGen.compile(f, maxIndex)
		if err != nil {
			return nil, fmt.Errorf("delete target: %w", err)
		}
		b.targets = append(b.targets, deleteTarget{field: f, ops: OpsFor(f.Type), draw: draw})
	}
	return b, nil
}

// size draws the number of deletes in one burst.
func (b *burst) size(rng *rand.Rand) int {
	p := b.policy
	return p.MinDeletes + rng.IntN(p.MaxDeletes-p.MinDeletes+1)
}

// predicate draws the attribute, then the operator, then the comparand.
func (b *burst) predicate(rng *rand.Rand, i int) Predicate {
	t := b.targets[rng.IntN(len(b.targets))]
	op := t.ops[rng.IntN(len(t.ops))]
	return Predicate{Field: t.field.Name, Op: op, Value: t.draw(rng, i)}
}

// inject emits the burst due after record i, if any, and returns the number
// of deletes written.
func (b *burst) inject(sw *scriptWriter, rng *rand.Rand, i int) (int, error) {
	if !b.policy.Due(i) {
		return 0, nil
	}
	n := b.size(rng)
	if n == 0 {
		return 0, nil
	}
	for k := 0; k < n; k++ {
		pred := b.predicate(rng, i)
		sw.notePredicate(b.entity, pred)
		if err := sw.command(Delete{Entity: b.entity, Where: pred, Style: sw.style}); err != nil {
			return k, err
		}
	}
	sw.noteBurst(b.entity)
	return n, nil
}
