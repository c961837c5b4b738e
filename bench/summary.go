package bench

import (
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/tidwall/btree"
)

// Summary describes a generated script. It is written next to the script as
// the run's info file.
type Summary struct {
	Profile  string           `json:"profile"`
	Seed     uint64           `json:"seed"`
	DBName   string           `json:"db_name"`
	OutFile  string           `json:"out_file,omitempty"`
	Commands int              `json:"commands"`
	Bytes    int64            `json:"bytes"`
	Entities []*EntitySummary `json:"entities"`
}

type EntitySummary struct {
	Entity         string `json:"entity"`
	Inserts        int    `json:"inserts"`
	Deletes        int    `json:"deletes"`
	Bursts         int    `json:"bursts"`
	RecordSize     int    `json:"record_size"`
	RecordsPerPage int    `json:"records_per_page"`
	// EstimatedPages is the page count if no delete matched.
	EstimatedPages int `json:"estimated_pages"`
	// Coverage counts deletes per "field op", in key order.
	Coverage []CoverageEntry `json:"operator_coverage"`

	entity   *Entity
	coverage btree.Map[string, int]
}

type CoverageEntry struct {
	Predicate string `json:"predicate"`
	Count     int    `json:"count"`
}

func newSummary(s *Script) *Summary {
	sum := &Summary{
		Profile: s.Params.Profile,
		Seed:    s.Params.Seed,
		DBName:  s.Params.DBName,
		OutFile: s.Params.OutFile,
	}
	for _, g := range s.entities {
		sum.Entities = append(sum.Entities, &EntitySummary{
			Entity:         g.entity.Name,
			RecordSize:     g.entity.RecordSize(),
			RecordsPerPage: g.entity.RecordsPerPage(),
			entity:         g.entity,
		})
	}
	return sum
}

// entity returns the tally for name. Entities are few, so a scan is fine.
func (s *Summary) entity(name string) *EntitySummary {
	for _, e := range s.Entities {
		if e.Entity == name {
			return e
		}
	}
	panic("no summary for entity " + name)
}

// Entity returns the tally for the named entity.
func (s *Summary) Entity(name string) (*EntitySummary, bool) {
	for _, e := range s.Entities {
		if e.Entity == name {
			return e, true
		}
	}
	return nil, false
}

func (e *EntitySummary) addPredicate(p Predicate) {
	e.Deletes++
	key := p.Field + " " + string(p.Op)
	n, _ := e.coverage.Get(key)
	e.coverage.Set(key, n+1)
}

// refresh rebuilds the derived fields from the running tallies.
func (e *EntitySummary) refresh() {
	e.Coverage = e.Coverage[:0]
	e.coverage.Scan(func(k string, n int) bool {
		e.Coverage = append(e.Coverage, CoverageEntry{Predicate: k, Count: n})
		return true
	})
}

// finish fills in the fields that depend on the final counts.
func (s *Summary) finish() {
	for _, e := range s.Entities {
		e.EstimatedPages = e.entity.EstimatePages(e.Inserts)
		e.refresh()
	}
}

// RenderTable writes one row per entity to w.
func (s *Summary) RenderTable(w io.Writer) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Entity", "Inserts", "Deletes", "Bursts", "Rec/Page", "Est Pages"})
	tbl.SetAutoFormatHeaders(false)
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, e := range s.Entities {
		tbl.Append([]string{
			e.Entity,
			humanize.Comma(int64(e.Inserts)),
			humanize.Comma(int64(e.Deletes)),
			strconv.Itoa(e.Bursts),
			strconv.Itoa(e.RecordsPerPage),
			humanize.Comma(int64(e.EstimatedPages)),
		})
	}
	tbl.Render()
}
