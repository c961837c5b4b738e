package bench

import (
	"math"
	"math/rand/v2"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var twoDecimals = regexp.MustCompile(`^\d+\.\d{2}$`)

func Test_ValueGen_CompileErrors(t *testing.T) {
	intField := Field{Name: "ID", Type: TypeInt}
	floatField := Field{Name: "GPA", Type: TypeFloat}
	strField := Field{Name: "Name", Type: TypeString(16)}

	cases := []struct {
		name  string
		gen   ValueGen
		field Field
		is    error
	}{
		{"format on int", Seq("S%d"), intField, nil},
		{"seq string without format", Seq(""), strField, nil},
		{"seq float", Seq(""), floatField, nil},
		{"uniform on int", Uniform(1, 2), intField, nil},
		{"uniform empty", Uniform(4, 2), floatField, nil},
		{"randint on float", RandInt("", 1, 2), floatField, nil},
		{"randint empty", RandInt("", 5, 1), intField, nil},
		{"choice empty", Choice(), strField, nil},
		{"choice not int", Choice("three"), intField, nil},
		{"choice not float", Choice("high"), floatField, nil},
		{"choice quoted", Choice(`a"b`), strField, nil},
		{"bad verb", Seq("S%s"), strField, nil},
		{"unknown kind", ValueGen{Kind: "gauss"}, intField, nil},
		{"randint fractional min", ValueGen{Kind: GenRandInt, Min: 1.5, Max: 3}, intField, nil},
		{"randint max past 2^53", ValueGen{Kind: GenRandInt, Min: 1, Max: 1e17}, intField, nil},
		{"randint full int64 span", RandInt("", math.MinInt64+1, math.MaxInt64-1024), intField, nil},
		{"randint nan", ValueGen{Kind: GenRandInt, Min: math.NaN(), Max: 3}, intField, nil},
		{"randint past int column", RandInt("", 0, 1<<40), intField, ErrTooWide},
		{"uniform nan", Uniform(math.NaN(), 4), floatField, nil},
		{"uniform inf", Uniform(2, math.Inf(1)), floatField, nil},
		{"uniform span overflows", Uniform(-math.MaxFloat64, math.MaxFloat64), floatField, nil},
		{"choice nan", Choice("2.5", "NaN"), floatField, nil},
		{"choice inf", Choice("Inf"), floatField, nil},
		{"choice past int column", Choice("3", "4294967296"), intField, nil},
		{"choice newline", Choice("CS", "CS\nquit;"), strField, ErrControlChar},
		{"format carriage return", Seq("S%d\r"), strField, ErrControlChar},
		{"format quote", RandInt(`C"%d`, 1, 2), strField, nil},
	}
	for _, tc := range cases {
		_, err := tc.gen.compile(tc.field, 100)
		require.Error(t, err, tc.name)
		if tc.is != nil {
			require.ErrorIs(t, err, tc.is, tc.name)
		}
	}

	// index-relative bounds that overflow once the largest index is added
	_, err := RandIntAbove("", 1, 10).compile(intField, math.MaxInt)
	require.Error(t, err)
}

func Test_ValueGen_Width(t *testing.T) {
	narrow := Field{Name: "Code", Type: TypeString(4)}

	_, err := Seq("C%03d").compile(narrow, 999)
	require.NoError(t, err)
	_, err = Seq("C%03d").compile(narrow, 1000)
	require.ErrorIs(t, err, ErrTooWide)

	_, err = RandIntAbove("C%d", 1, 100).compile(narrow, 899)
	require.NoError(t, err)
	_, err = RandIntAbove("C%d", 1, 100).compile(narrow, 900)
	require.ErrorIs(t, err, ErrTooWide)

	_, err = Choice("ok", "toolong").compile(narrow, 1)
	require.ErrorIs(t, err, ErrTooWide)

	// the lower bound renders wider than the upper one
	wide := Field{Name: "Code", Type: TypeString(16)}
	_, err = RandInt("Code%d", -9_000_000_000_000, 10).compile(wide, 10)
	require.ErrorIs(t, err, ErrTooWide)
	_, err = RandInt("Code%d", -9_000, 10).compile(wide, 10)
	require.NoError(t, err)
}

func Test_ValueGen_Draws(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	seq, err := Seq("Prof%d").compile(Field{Name: "Faculty", Type: TypeString(16)}, 60)
	require.NoError(t, err)
	require.Equal(t, StringValue("Prof42"), seq(rng, 42))

	id, err := Seq("").compile(Field{Name: "ID", Type: TypeInt}, 60)
	require.NoError(t, err)
	require.Equal(t, IntValue(17), id(rng, 17))

	gpa, err := Uniform(2, 4).compile(Field{Name: "GPA", Type: TypeFloat}, 0)
	require.NoError(t, err)
	for i := 0; i < 10_000; i++ {
		v := gpa(rng, i)
		require.GreaterOrEqual(t, v.Float, 2.0)
		require.LessOrEqual(t, v.Float, 4.0)
		require.Regexp(t, twoDecimals, v.String())
	}

	above, err := RandIntAbove("", 1, 10).compile(Field{Name: "ID", Type: TypeInt}, 100)
	require.NoError(t, err)
	fixed, err := RandInt("", 3, 5).compile(Field{Name: "ID", Type: TypeInt}, 100)
	require.NoError(t, err)
	seen := map[int64]bool{}
	for i := 1; i <= 1000; i++ {
		v := above(rng, 5)
		require.GreaterOrEqual(t, v.Int, int64(1))
		require.LessOrEqual(t, v.Int, int64(15))
		f := fixed(rng, i)
		require.GreaterOrEqual(t, f.Int, int64(3))
		require.LessOrEqual(t, f.Int, int64(5))
		seen[f.Int] = true
	}
	require.Len(t, seen, 3)

	credits, err := Choice("3", "4").compile(Field{Name: "Credits", Type: TypeInt}, 0)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		v := credits(rng, i)
		require.Contains(t, []int64{3, 4}, v.Int)
	}
}
