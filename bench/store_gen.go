package bench

import (
	"fmt"
	"sort"
)

var (
	departments = []string{"CS", "EE", "ME"}
	semesters   = []string{"Fall2024", "Spring2025", "Fall2025", "Spring2026"}
)

// Named profiles. Each is a complete parameter set with a fixed seed and
// output file so a profile always yields the same script.
const (
	ProfileLarge = "large"
	ProfileSmall = "small"
)

// LargeScript sizes every entity for roughly a thousand pages: about twelve
// records fit a page, and Student is overshot further.
func LargeScript() ScriptParams {
	const (
		pageTarget     = 1000
		recordsPerPage = 12
		nStudent       = pageTarget*recordsPerPage + 20_000
		nCourse        = pageTarget * recordsPerPage
		nProf          = pageTarget * recordsPerPage
		nEnroll        = pageTarget * recordsPerPage * 2
		warmUp         = 100
	)
	return ScriptParams{
		Profile:        ProfileLarge,
		Seed:           42,
		DBName:         "DBNAME",
		OutFile:        "queryFileT9",
		PredicateStyle: StyleSpaced,
		CommentPrefix:  "; ",
		Entities: []EntityParams{
			{
				Entity: "Student",
				Count:  nStudent,
				Banner: "Massive inserts into Student with interspersed deletes",
				Fields: studentFields(),
				Burst: BurstPolicy{
					WarmUp: warmUp, Period: 40, MinDeletes: 1, MaxDeletes: 3,
					Targets: []FieldGen{
						{Field: "ID", ValueGen: RandIntAbove("", 1, 1000)},
						{Field: "GPA", ValueGen: Uniform(2.0, 4.0)},
						{Field: "Dept", ValueGen: Choice(departments...)},
					},
				},
			},
			{
				Entity: "Course",
				Count:  nCourse,
				Banner: "Massive inserts into Course with interspersed deletes",
				Fields: courseFields("C%05d"),
				Burst: BurstPolicy{
					WarmUp: warmUp, Period: 45, MinDeletes: 1, MaxDeletes: 3,
					Targets: []FieldGen{
						{Field: "Course", ValueGen: RandIntAbove("C%05d", 1, 1000)},
						{Field: "Credits", ValueGen: Choice("2", "3", "4", "5")},
						{Field: "Dept", ValueGen: Choice(departments...)},
					},
				},
			},
			{
				Entity: "Professor",
				Count:  nProf,
				Banner: "Massive inserts into Professor with interspersed deletes",
				Fields: professorFields(nStudent),
				Burst: BurstPolicy{
					WarmUp: warmUp, Period: 50, MinDeletes: 1, MaxDeletes: 3,
					Targets: []FieldGen{
						{Field: "Faculty", ValueGen: RandIntAbove("Prof%d", 1, 1000)},
						{Field: "Dept", ValueGen: Choice(departments...)},
						{Field: "SID", ValueGen: RandInt("", 1, nStudent+500)},
					},
				},
			},
			{
				Entity: "Enrollment",
				Count:  nEnroll,
				Banner: "Massive inserts into Enrollment with interspersed deletes",
				Fields: enrollmentFields(nStudent, nCourse, "C%05d"),
				Burst: BurstPolicy{
					WarmUp: warmUp, Period: 35, MinDeletes: 1, MaxDeletes: 3,
					Targets: []FieldGen{
						{Field: "SID", ValueGen: RandInt("", 1, nStudent+500)},
						{Field: "Course", ValueGen: RandInt("C%05d", 1, nCourse+1000)},
						{Field: "Semester", ValueGen: Choice(semesters...)},
					},
				},
			},
		},
	}
}

// SmallScript spans tens of pages per entity with denser delete bursts.
// Each entity warms up for one period, so the first burst follows the
// second period boundary.
func SmallScript() ScriptParams {
	const (
		nStudent = 120
		nCourse  = 40
		nProf    = 60
		nEnroll  = 200
	)
	return ScriptParams{
		Profile:        ProfileSmall,
		Seed:           12345,
		DBName:         "DBNAME",
		OutFile:        "queryFileT9_small_multi",
		PredicateStyle: StyleCompact,
		CommentPrefix:  "-- ",
		Entities: []EntityParams{
			{
				Entity: "Student",
				Count:  nStudent,
				Banner: "Students: multi-page inserts + bursts of deletes",
				Fields: studentFields(),
				Burst: BurstPolicy{
					WarmUp: 10, Period: 10, MinDeletes: 2, MaxDeletes: 3,
					Targets: []FieldGen{
						{Field: "ID", ValueGen: RandInt("", 1, nStudent+20)},
						{Field: "GPA", ValueGen: Uniform(2.0, 4.0)},
						{Field: "Dept", ValueGen: Choice(departments...)},
					},
				},
			},
			{
				Entity: "Course",
				Count:  nCourse,
				Banner: "Courses: multi-page-ish inserts + deletes",
				Fields: courseFields("C%03d"),
				Burst: BurstPolicy{
					WarmUp: 8, Period: 8, MinDeletes: 1, MaxDeletes: 2,
					Targets: []FieldGen{
						{Field: "Course", ValueGen: RandInt("C%03d", 1, nCourse+10)},
						{Field: "Credits", ValueGen: Choice("2", "3", "4", "5")},
						{Field: "Dept", ValueGen: Choice(departments...)},
					},
				},
			},
			{
				Entity: "Professor",
				Count:  nProf,
				Banner: "Professors: enough rows + deletes",
				Fields: professorFields(nStudent),
				Burst: BurstPolicy{
					WarmUp: 12, Period: 12, MinDeletes: 2, MaxDeletes: 3,
					Targets: []FieldGen{
						{Field: "Faculty", ValueGen: RandInt("Prof%d", 1, nProf+20)},
						{Field: "Dept", ValueGen: Choice(departments...)},
						{Field: "SID", ValueGen: RandInt("", 1, nStudent+50)},
					},
				},
			},
			{
				Entity: "Enrollment",
				Count:  nEnroll,
				Banner: "Enrollments: many rows across pages + deletes",
				Fields: enrollmentFields(nStudent, nCourse, "C%03d"),
				Burst: BurstPolicy{
					WarmUp: 15, Period: 15, MinDeletes: 2, MaxDeletes: 4,
					Targets: []FieldGen{
						{Field: "SID", ValueGen: RandInt("", 1, nStudent+50)},
						{Field: "Course", ValueGen: RandInt("C%03d", 1, nCourse+20)},
						{Field: "Semester", ValueGen: Choice(semesters...)},
					},
				},
			},
		},
	}
}

func studentFields() []FieldGen {
	return []FieldGen{
		{Field: "ID", ValueGen: Seq("")},
		{Field: "Name", ValueGen: Seq("S%d")},
		{Field: "Dept", ValueGen: Choice(departments...)},
		{Field: "GPA", ValueGen: Uniform(2.0, 4.0)},
	}
}

func courseFields(code string) []FieldGen {
	return []FieldGen{
		{Field: "Course", ValueGen: Seq(code)},
		{Field: "Credits", ValueGen: Choice("3", "4")},
		{Field: "Dept", ValueGen: Choice(departments...)},
	}
}

// professorFields references students by value only; the referenced
// student may have been deleted by the time the professor is inserted.
func professorFields(nStudent int) []FieldGen {
	return []FieldGen{
		{Field: "Faculty", ValueGen: Seq("Prof%d")},
		{Field: "Dept", ValueGen: Choice(departments...)},
		{Field: "SID", ValueGen: RandInt("", 1, nStudent)},
	}
}

func enrollmentFields(nStudent, nCourse int, code string) []FieldGen {
	return []FieldGen{
		{Field: "SID", ValueGen: RandInt("", 1, nStudent)},
		{Field: "Course", ValueGen: RandInt(code, 1, nCourse)},
		{Field: "Semester", ValueGen: Choice(semesters...)},
	}
}

var profiles = map[string]func() ScriptParams{
	ProfileLarge: LargeScript,
	ProfileSmall: SmallScript,
}

// Profile returns the named preset.
func Profile(name string) (ScriptParams, error) {
	p, ok := profiles[name]
	if !ok {
		return ScriptParams{}, fmt.Errorf("unknown profile %q (known: %v)", name, ProfileNames())
	}
	return p(), nil
}

func ProfileNames() []string {
	var names []string
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
