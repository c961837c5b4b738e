package bench_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kocubinski/minirel-bench/bench"
)

func Test_FieldType_Tags(t *testing.T) {
	for _, ft := range []bench.FieldType{bench.TypeInt, bench.TypeFloat, bench.TypeString(16), bench.TypeString(3)} {
		parsed, err := bench.ParseFieldType(ft.Tag())
		require.NoError(t, err)
		require.Equal(t, ft, parsed)
	}
	for _, bad := range []string{"", "x", "s", "s0", "s-1", "sx"} {
		_, err := bench.ParseFieldType(bad)
		require.Error(t, err, bad)
	}
}

func Test_DefaultSchema(t *testing.T) {
	s := bench.DefaultSchema()
	var names []string
	for _, e := range s.Entities {
		names = append(names, e.Name)
	}
	require.Equal(t, []string{"Student", "Professor", "Course", "Enrollment"}, names)

	student, ok := s.Entity("Student")
	require.True(t, ok)
	gpa, ok := student.Field("GPA")
	require.True(t, ok)
	require.Equal(t, bench.TypeFloat, gpa.Type)
	_, ok = student.Field("SID")
	require.False(t, ok)
	_, ok = s.Entity("Dormitory")
	require.False(t, ok)
}

func Test_PageEstimate(t *testing.T) {
	s := bench.DefaultSchema()
	cases := []struct {
		entity  string
		size    int
		perPage int
		records int
		pages   int
	}{
		{"Student", 40, 12, 120, 10},
		{"Student", 40, 12, 121, 11},
		{"Professor", 36, 13, 60, 5},
		{"Course", 36, 13, 40, 4},
		{"Enrollment", 36, 13, 200, 16},
		{"Enrollment", 36, 13, 0, 0},
	}
	for _, tc := range cases {
		e, ok := s.Entity(tc.entity)
		require.True(t, ok)
		require.Equal(t, tc.size, e.RecordSize(), tc.entity)
		require.Equal(t, tc.perPage, e.RecordsPerPage(), tc.entity)
		require.Equal(t, tc.pages, e.EstimatePages(tc.records), tc.entity)
	}
}

func Test_RecordsPerPage_SlotBound(t *testing.T) {
	tiny := &bench.Entity{Name: "Tiny", Fields: []bench.Field{{Name: "A", Type: bench.TypeInt}}}
	require.Equal(t, bench.PageSlots, tiny.RecordsPerPage())
}
