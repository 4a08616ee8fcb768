package pad

import (
	"fmt"
	"strconv"
)

// Candidate column lists, ordered by preference. The analytics API has
// renamed and nested columns across versions, so every field is resolved
// against all names it has been seen under.
var (
	cardIDColumns      = []string{"id", "card_id"}
	sampleIDColumns    = []string{"sample_id"}
	sampleNameColumns  = []string{"sample_name", "sample_name.name", "drug_name"}
	cardProjectColumns = []string{"project.project_name", "project_name", "project.name"}
	cardUserColumns    = []string{"user_name", "user_name.name", "user"}
	quantityColumns    = []string{"quantity", "concentration"}
	notesColumns       = []string{"notes", "note"}
	imageColumns       = []string{"processed_file_location", "raw_file_location", "url", "image_url"}
	cameraColumns      = []string{"camera_type_1", "camera_type"}

	projectIDColumns   = []string{"id"}
	projectNameColumns = []string{"project_name"}
	projectUserColumns = []string{"user_name"}
)

// DateColumns are the names the creation timestamp has been seen under;
// exported because the service sorts raw rows on the same column it will
// later normalize.
var DateColumns = []string{"date_of_creation", "created_at", "date"}

// UserColumns are the names used to match rows against a username.
var UserColumns = []string{"user_name", "user"}

// FindColumn returns the first candidate column present in any of the rows,
// or "" when none match.
func FindColumn(rows []Record, candidates []string) string {
	for _, c := range candidates {
		for _, r := range rows {
			if _, ok := r[c]; ok {
				return c
			}
		}
	}
	return ""
}

// first returns the first present, non-nil value among the candidate columns.
func (r Record) first(candidates []string) (any, bool) {
	for _, c := range candidates {
		if v, ok := r[c]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// String resolves the candidate columns to a string, or def when none match.
func (r Record) String(candidates []string, def string) string {
	v, ok := r.first(candidates)
	if !ok {
		return def
	}
	return asString(v)
}

// Int resolves the candidate columns to an int, or def when none match or
// the value is not numeric.
func (r Record) Int(candidates []string, def int) int {
	v, ok := r.first(candidates)
	if !ok {
		return def
	}
	n, ok := asInt64(v)
	if !ok {
		return def
	}
	return int(n)
}

// Int64Ptr resolves the candidate columns to an optional int64.
func (r Record) Int64Ptr(candidates []string) *int64 {
	v, ok := r.first(candidates)
	if !ok {
		return nil
	}
	n, ok := asInt64(v)
	if !ok {
		return nil
	}
	return &n
}

// Float64Ptr resolves the candidate columns to an optional float64.
func (r Record) Float64Ptr(candidates []string) *float64 {
	v, ok := r.first(candidates)
	if !ok {
		return nil
	}
	f, ok := asFloat64(v)
	if !ok {
		return nil
	}
	return &f
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
