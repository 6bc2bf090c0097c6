package history

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/soltixdb/revenue/internal/analytics"
)

// MemorySource keeps revenue samples in process. It backs development
// setups and the CSV tool.
type MemorySource struct {
	mu     sync.RWMutex
	series map[string][]analytics.TimeSeriesPoint
}

// NewMemorySource creates an empty source
func NewMemorySource() *MemorySource {
	return &MemorySource{series: make(map[string][]analytics.TimeSeriesPoint)}
}

// Add appends samples for a property.
func (m *MemorySource) Add(propertyID string, points ...analytics.TimeSeriesPoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.series[propertyID] = append(m.series[propertyID], points...)
}

// Properties returns the known property IDs in sorted order.
func (m *MemorySource) Properties() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.series))
	for id := range m.series {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FetchRevenueData implements Source. Bounds are inclusive and the result is
// ordered by time.
func (m *MemorySource) FetchRevenueData(ctx context.Context, propertyID string, start, end time.Time) ([]analytics.TimeSeriesPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]analytics.TimeSeriesPoint, 0, len(m.series[propertyID]))
	for _, p := range m.series[propertyID] {
		if p.Time.Before(start) || p.Time.After(end) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

// LoadCSVFile seeds the source from a file, see LoadCSV.
func (m *MemorySource) LoadCSVFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return m.LoadCSV(f)
}

// LoadCSV reads property_id,date,revenue records. A header row is skipped.
// Dates are YYYY-MM-DD (UTC midnight) or RFC3339. It returns the number of
// samples added.
func (m *MemorySource) LoadCSV(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	added := 0
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return added, nil
		}
		if err != nil {
			return added, fmt.Errorf("read csv: %w", err)
		}
		line++
		if line == 1 && strings.EqualFold(record[0], "property_id") {
			continue
		}

		ts, err := parseDate(record[1])
		if err != nil {
			return added, fmt.Errorf("line %d: %w", line, err)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return added, fmt.Errorf("line %d: invalid revenue %q", line, record[2])
		}
		m.Add(strings.TrimSpace(record[0]), analytics.TimeSeriesPoint{Time: ts, Value: value})
		added++
	}
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
