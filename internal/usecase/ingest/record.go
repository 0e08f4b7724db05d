package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"creditpath-backend/internal/domain/errs"
)

var dateLayouts = []string{time.DateOnly, time.DateTime, time.RFC3339Nano}

// header maps column name to position.
type header map[string]int

func newHeader(cols []string, required []string) (header, error) {
	h := make(header, len(cols))
	for i, c := range cols {
		h[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(c, "\ufeff")))] = i
	}
	var missing []string
	for _, c := range required {
		if _, ok := h[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns %s: %w", strings.Join(missing, ", "), errs.ErrIngestion)
	}
	return h, nil
}

// record reads typed cells from one CSV line; the first failure sticks.
type record struct {
	h    header
	cols []string
	line int
	err  error
}

func (r *record) str(name string) string {
	i := r.h[name]
	if i >= len(r.cols) {
		return ""
	}
	return strings.TrimSpace(r.cols[i])
}

func (r *record) fail(name, raw, want string) {
	if r.err == nil {
		r.err = fmt.Errorf("line %d: %s=%q is not %s: %w", r.line, name, raw, want, errs.ErrIngestion)
	}
}

func (r *record) u64(name string) uint64 {
	raw := r.str(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		r.fail(name, raw, "an unsigned integer")
	}
	return v
}

// integer tolerates integral floats such as "720.0".
func (r *record) integer(name string) int {
	raw := r.str(name)
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		r.fail(name, raw, "an integer")
		return 0
	}
	return int(f)
}

func (r *record) number(name string) float64 {
	raw := r.str(name)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		r.fail(name, raw, "a number")
	}
	return v
}

func (r *record) date(name string) time.Time {
	raw := r.str(name)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	r.fail(name, raw, "a date")
	return time.Time{}
}
