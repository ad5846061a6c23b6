package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/grid"
)

// ErrNoRecords is returned when a file holds no complete record
var ErrNoRecords = errors.New("no complete records")

// Record is one test case of the dispersion data set
type Record struct {
	ID       int
	TestCase string
	ConcPpm  float64
	AreaM2   float64
	AveMwVap float64
	TempC    float64
	ElevM    float64
}

// columns lists the CSV header names every record needs
var columns = []string{"test_case", "conc_ppm", "area_m2", "ave_mw_vap", "temp_c", "elev_m"}

// Load reads records from a CSV file
func Load(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	records, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Parse reads header-mapped CSV records. Rows with an empty, non-numeric
// or non-finite field are dropped. IDs count kept records from 1.
func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoRecords
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range columns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		values := make(map[string]string, len(columns))
		complete := true
		for _, name := range columns {
			i := index[name]
			if i >= len(row) || strings.TrimSpace(row[i]) == "" {
				complete = false
				break
			}
			values[name] = strings.TrimSpace(row[i])
		}
		if !complete {
			continue
		}

		rec, ok := parseRecord(values)
		if !ok {
			continue
		}
		rec.ID = len(records) + 1
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

func parseRecord(values map[string]string) (Record, bool) {
	rec := Record{TestCase: values["test_case"]}
	targets := []*float64{&rec.ConcPpm, &rec.AreaM2, &rec.AveMwVap, &rec.TempC, &rec.ElevM}
	for i, name := range columns[1:] {
		v, err := strconv.ParseFloat(values[name], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return rec, false
		}
		*targets[i] = v
	}
	return rec, true
}

// Group holds the records sharing one concentration
type Group struct {
	ConcPpm float64
	Records []Record
}

// GroupByConcentration splits records by ConcPpm, ordered by ascending
// concentration. Records keep their input order within a group.
func GroupByConcentration(records []Record) []Group {
	byConc := make(map[float64][]Record)
	for _, rec := range records {
		byConc[rec.ConcPpm] = append(byConc[rec.ConcPpm], rec)
	}

	groups := make([]Group, 0, len(byConc))
	for conc, recs := range byConc {
		groups = append(groups, Group{ConcPpm: conc, Records: recs})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].ConcPpm < groups[j].ConcPpm
	})
	return groups
}

// Field names a numeric column of a record
type Field int

const (
	ConcPpm Field = iota
	AreaM2
	AveMwVap
	TempC
	ElevM
)

var fieldNames = map[Field]string{
	ConcPpm:  "concPpm",
	AreaM2:   "areaM2",
	AveMwVap: "aveMwVap",
	TempC:    "tempC",
	ElevM:    "elevM",
}

var fieldLabels = map[Field]string{
	ConcPpm:  "Concentration (ppm)",
	AreaM2:   "Area (m²)",
	AveMwVap: "Avg Molecular Weight",
	TempC:    "Temperature (°C)",
	ElevM:    "Elevation (m)",
}

func (f Field) String() string {
	return fieldNames[f]
}

// Label returns the axis caption for the field
func (f Field) Label() string {
	return fieldLabels[f]
}

// Value reads the field from a record
func (f Field) Value(r Record) float64 {
	switch f {
	case ConcPpm:
		return r.ConcPpm
	case AreaM2:
		return r.AreaM2
	case AveMwVap:
		return r.AveMwVap
	case TempC:
		return r.TempC
	default:
		return r.ElevM
	}
}

// ParseField looks a field up by its name, case-insensitively
func ParseField(name string) (Field, error) {
	for f, n := range fieldNames {
		if strings.EqualFold(n, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", name)
}

// Plot pairs the two fields spanning a surface of AreaM2
type Plot struct {
	X Field
	Y Field
}

// DefaultPlots are the three views drawn for each concentration
var DefaultPlots = []Plot{
	{X: TempC, Y: ElevM},
	{X: TempC, Y: AveMwVap},
	{X: ElevM, Y: AveMwVap},
}

// Title describes the plot
func (p Plot) Title() string {
	return fmt.Sprintf("Area (m²) vs %s and %s", p.X.Label(), p.Y.Label())
}

// ToGrid pivots AreaM2 over the distinct values of the plot's fields:
// rows follow ascending X, columns ascending Y. Cells hit by several
// records hold their mean and cells with no record hold 0.
func ToGrid(records []Record, p Plot) (*grid.Grid, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	xs := distinct(records, p.X)
	ys := distinct(records, p.Y)

	sums := make([][]float64, len(xs))
	counts := make([][]int, len(xs))
	for i := range sums {
		sums[i] = make([]float64, len(ys))
		counts[i] = make([]int, len(ys))
	}

	for _, rec := range records {
		i := sort.SearchFloat64s(xs, p.X.Value(rec))
		j := sort.SearchFloat64s(ys, p.Y.Value(rec))
		sums[i][j] += rec.AreaM2
		counts[i][j]++
	}

	for i := range sums {
		for j := range sums[i] {
			if counts[i][j] > 0 {
				sums[i][j] /= float64(counts[i][j])
			}
		}
	}

	return grid.FromRows(sums)
}

func distinct(records []Record, f Field) []float64 {
	seen := make(map[float64]bool)
	var values []float64
	for _, rec := range records {
		v := f.Value(rec)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Float64s(values)
	return values
}
