package bench

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Burst_Due(t *testing.T) {
	p := BurstPolicy{WarmUp: 100, Period: 40}
	var due []int
	for i := 1; i <= 250; i++ {
		if p.Due(i) {
			due = append(due, i)
		}
	}
	require.Equal(t, []int{120, 160, 200, 240}, due)

	small := BurstPolicy{WarmUp: 15, Period: 15}
	require.False(t, small.Due(15))
	require.True(t, small.Due(30))
	require.False(t, small.Due(31))

	require.False(t, BurstPolicy{}.Due(10), "zero period never bursts")
}

func Test_CompileBurst_Errors(t *testing.T) {
	student, _ := DefaultSchema().Entity("Student")
	cases := []BurstPolicy{
		{Period: -1},
		{Period: 10, MinDeletes: 3, MaxDeletes: 2},
		{Period: 10, MinDeletes: 1, MaxDeletes: 2},
		{Period: 10, MinDeletes: 1, MaxDeletes: 2, Targets: []FieldGen{{Field: "Nope", ValueGen: Seq("")}}},
		{Period: 10, MinDeletes: 1, MaxDeletes: 2, Targets: []FieldGen{{Field: "GPA", ValueGen: Seq("")}}},
	}
	for i, p := range cases {
		_, err := compileBurst(student, p, 100)
		require.Error(t, err, "case %d", i)
	}
	_, err := compileBurst(student, cases[3], 100)
	require.ErrorIs(t, err, ErrUnknownField)

	b, err := compileBurst(student, BurstPolicy{}, 100)
	require.NoError(t, err)
	require.Empty(t, b.targets)
}

func Test_Burst_Predicates(t *testing.T) {
	student, _ := DefaultSchema().Entity("Student")
	b, err := compileBurst(student, BurstPolicy{
		WarmUp: 10, Period: 10, MinDeletes: 2, MaxDeletes: 3,
		Targets: []FieldGen{
			{Field: "ID", ValueGen: RandInt("", 1, 140)},
			{Field: "GPA", ValueGen: Uniform(2, 4)},
			{Field: "Dept", ValueGen: Choice("CS", "EE", "ME")},
		},
	}, 120)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(7, 7))
	ops := map[string]map[Op]bool{}
	for i := 0; i < 5000; i++ {
		n := b.size(rng)
		require.GreaterOrEqual(t, n, 2)
		require.LessOrEqual(t, n, 3)

		p := b.predicate(rng, 20)
		if ops[p.Field] == nil {
			ops[p.Field] = map[Op]bool{}
		}
		ops[p.Field][p.Op] = true
		if p.Field == "Dept" {
			require.Equal(t, KindString, p.Value.Kind)
			require.Contains(t, []string{"CS", "EE", "ME"}, p.Value.Str)
		}
	}
	require.Len(t, ops, 3)
	require.Len(t, ops["ID"], 6)
	require.Len(t, ops["GPA"], 6)
	require.Equal(t, map[Op]bool{OpEQ: true, OpNE: true}, ops["Dept"])
}
