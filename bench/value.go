package bench

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode"
)

// GenKind selects how a field value is drawn.
type GenKind string

const (
	// GenSeq uses the record index, optionally through Format.
	GenSeq GenKind = "seq"
	// GenChoice picks uniformly from Choices.
	GenChoice GenKind = "choice"
	// GenUniform draws a float in [Min, Max] rounded to two decimals.
	GenUniform GenKind = "uniform"
	// GenRandInt draws an integer in [Min, Max], or [Min, index+Max] when
	// FromIndex is set, optionally through Format.
	GenRandInt GenKind = "randint"
)

// ValueGen describes the domain of one field. It is plain data so that a
// parameter set can be loaded from YAML; compile turns it into a draw func.
type ValueGen struct {
	Kind      GenKind  `yaml:"kind" json:"kind"`
	Format    string   `yaml:"format,omitempty" json:"format,omitempty"`
	Choices   []string `yaml:"choices,omitempty" json:"choices,omitempty"`
	Min       float64  `yaml:"min,omitempty" json:"min,omitempty"`
	Max       float64  `yaml:"max,omitempty" json:"max,omitempty"`
	FromIndex bool     `yaml:"from_index,omitempty" json:"from_index,omitempty"`
}

// Seq renders the record index, through format when it is set.
func Seq(format string) ValueGen {
	return ValueGen{Kind: GenSeq, Format: format}
}

// Choice picks one of the literals, parsed as the field's type.
func Choice(choices ...string) ValueGen {
	return ValueGen{Kind: GenChoice, Choices: choices}
}

// Uniform draws a two-decimal float in [lo, hi].
func Uniform(lo, hi float64) ValueGen {
	return ValueGen{Kind: GenUniform, Min: lo, Max: hi}
}

// RandInt draws from [lo, hi], through format when it is set.
func RandInt(format string, lo, hi int) ValueGen {
	return ValueGen{Kind: GenRandInt, Format: format, Min: float64(lo), Max: float64(hi)}
}

// RandIntAbove draws from [lo, index+slack].
func RandIntAbove(format string, lo, slack int) ValueGen {
	return ValueGen{Kind: GenRandInt, Format: format, Min: float64(lo), Max: float64(slack), FromIndex: true}
}

// drawFunc produces a value for record index i. It cannot fail.
type drawFunc func(rng *rand.Rand, i int) Value

// compile checks the generator against the field it feeds and returns its
// draw func. maxIndex is the largest record index the func will be called
// with; it bounds the rendered width of sequential and index-relative values.
func (g ValueGen) compile(f Field, maxIndex int) (drawFunc, error) {
	if g.Format != "" && f.Type.Kind != KindString {
		return nil, fmt.Errorf("field %s: format %q is only valid on string fields", f.Name, g.Format)
	}
	if g.Format == "" && f.Type.Kind == KindString && (g.Kind == GenSeq || g.Kind == GenRandInt) {
		return nil, fmt.Errorf("field %s: %s generator on a string field needs a format", f.Name, g.Kind)
	}
	if err := checkText("field "+f.Name+": format", g.Format); err != nil {
		return nil, err
	}

	switch g.Kind {
	case GenSeq:
		if f.Type.Kind == KindFloat {
			return nil, fmt.Errorf("field %s: seq generator cannot feed a float field", f.Name)
		}
		if f.Type.Kind == KindString {
			if err := checkWidth(f, fmt.Sprintf(g.Format, maxIndex)); err != nil {
				return nil, err
			}
			format := g.Format
			return func(_ *rand.Rand, i int) Value {
				return StringValue(fmt.Sprintf(format, i))
			}, nil
		}
		if err := checkInt(f, 1, maxIndex); err != nil {
			return nil, err
		}
		return func(_ *rand.Rand, i int) Value {
			return IntValue(int64(i))
		}, nil

	case GenChoice:
		if len(g.Choices) == 0 {
			return nil, fmt.Errorf("field %s: choice generator has no choices", f.Name)
		}
		values := make([]Value, len(g.Choices))
		for i, c := range g.Choices {
			v, err := parseLiteral(f, c)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return func(rng *rand.Rand, _ int) Value {
			return values[rng.IntN(len(values))]
		}, nil

	case GenUniform:
		if f.Type.Kind != KindFloat {
			return nil, fmt.Errorf("field %s: uniform generator only feeds float fields", f.Name)
		}
		if !finite(g.Min) || !finite(g.Max) || !finite(g.Max-g.Min) {
			return nil, fmt.Errorf("field %s: uniform range [%v, %v] is not finite", f.Name, g.Min, g.Max)
		}
		if g.Min > g.Max {
			return nil, fmt.Errorf("field %s: uniform range [%v, %v] is empty", f.Name, g.Min, g.Max)
		}
		lo, hi := g.Min, g.Max
		return func(rng *rand.Rand, _ int) Value {
			v := math.Round((lo+(hi-lo)*rng.Float64())*100) / 100
			// rounding can step past a bound that has more than two decimals
			v = max(lo, min(hi, v))
			return FloatValue(v)
		}, nil

	case GenRandInt:
		if f.Type.Kind == KindFloat {
			return nil, fmt.Errorf("field %s: randint generator cannot feed a float field", f.Name)
		}
		lo, err := wholeBound(f, "min", g.Min)
		if err != nil {
			return nil, err
		}
		hi, err := wholeBound(f, "max", g.Max)
		if err != nil {
			return nil, err
		}
		fromIndex := g.FromIndex
		maxHi := hi
		if fromIndex {
			maxHi += maxIndex
		}
		if !fromIndex && lo > hi {
			return nil, fmt.Errorf("field %s: randint range [%d, %d] is empty", f.Name, lo, hi)
		}
		if fromIndex && lo > hi+1 {
			return nil, fmt.Errorf("field %s: randint range [%d, index+%d] is empty", f.Name, lo, hi)
		}
		if maxHi < hi || maxHi-lo+1 <= 0 {
			return nil, fmt.Errorf("field %s: randint range [%d, %d] overflows", f.Name, lo, maxHi)
		}
		draw := func(rng *rand.Rand, i int) int {
			top := hi
			if fromIndex {
				top += i
			}
			return lo + rng.IntN(top-lo+1)
		}
		if f.Type.Kind == KindString {
			// a negative lower bound can render wider than the upper one
			for _, v := range []int{lo, maxHi} {
				if err := checkWidth(f, fmt.Sprintf(g.Format, v)); err != nil {
					return nil, err
				}
			}
			format := g.Format
			return func(rng *rand.Rand, i int) Value {
				return StringValue(fmt.Sprintf(format, draw(rng, i)))
			}, nil
		}
		if err := checkInt(f, lo, maxHi); err != nil {
			return nil, err
		}
		return func(rng *rand.Rand, i int) Value {
			return IntValue(int64(draw(rng, i)))
		}, nil

	default:
		return nil, fmt.Errorf("field %s: unknown generator kind %q", f.Name, g.Kind)
	}
}

// parseLiteral converts a choice entry to a value of the field's type.
func parseLiteral(f Field, s string) (Value, error) {
	switch f.Type.Kind {
	case KindInt:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("field %s: choice %q is not a 4-byte integer: %w", f.Name, s, err)
		}
		return IntValue(n), nil
	case KindFloat:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("field %s: choice %q is not a float: %w", f.Name, s, err)
		}
		if !finite(n) {
			return Value{}, fmt.Errorf("field %s: choice %q is not finite", f.Name, s)
		}
		return FloatValue(n), nil
	default:
		if err := checkWidth(f, s); err != nil {
			return Value{}, err
		}
		return StringValue(s), nil
	}
}

// checkWidth rejects string values that would not fit the column. The widest
// value a generator can produce is passed in, so a failure here means the
// parameter set is unusable rather than a single unlucky draw.
func checkWidth(f Field, widest string) error {
	if strings.Contains(widest, "%!") {
		return fmt.Errorf("field %s: bad format verb, renders as %q", f.Name, widest)
	}
	if strings.ContainsRune(widest, '"') {
		return fmt.Errorf("field %s: value %q contains a quote", f.Name, widest)
	}
	if err := checkText("field "+f.Name+": value", widest); err != nil {
		return err
	}
	if len(widest) > f.Type.Width {
		return fmt.Errorf("field %s: value %q is %d bytes, column holds %d: %w",
			f.Name, widest, len(widest), f.Type.Width, ErrTooWide)
	}
	return nil
}

// checkInt rejects integer ranges a 4-byte column cannot hold.
func checkInt(f Field, lo, hi int) error {
	if lo < math.MinInt32 || hi > math.MaxInt32 {
		return fmt.Errorf("field %s: range [%d, %d] exceeds a 4-byte integer: %w", f.Name, lo, hi, ErrTooWide)
	}
	return nil
}

// maxBound is the largest magnitude a float64 bound holds exactly.
const maxBound = 1 << 53

func wholeBound(f Field, name string, v float64) (int, error) {
	if !finite(v) || v != math.Trunc(v) || math.Abs(v) > maxBound {
		return 0, fmt.Errorf("field %s: randint %s %v is not a whole number within 2^53", f.Name, name, v)
	}
	return int(v), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// checkText rejects control characters in text copied into the script,
// since a line break would split one command into several.
func checkText(what, s string) error {
	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("%s %q: %w", what, s, ErrControlChar)
		}
	}
	return nil
}
