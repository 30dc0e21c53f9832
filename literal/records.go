// Package literal decodes text fields that hold a serialized list of
// key-value records, such as the genres, keywords, cast and crew columns of
// the TMDB exports:
//
//	[{'id': 28, 'name': 'Action'}, {'id': 12, 'name': 'Adventure'}]
//	[{"id": 28, "name": "Action"}]
//
// String literals in either quoting style are decoded first (backslash
// escapes included) and re-emitted double-quoted, which leaves a YAML flow
// sequence for the YAML decoder. Parsing never fails outward: a field that is not a list
// of records yields an empty List whose Outcome is EmptyOnFailure.
package literal

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Outcome reports how a field was decoded.
type Outcome int

const (
	// Parsed means the field was a list of records (possibly empty).
	Parsed Outcome = iota
	// EmptyOnFailure means the field could not be decoded and was replaced
	// by an empty list.
	EmptyOnFailure
)

func (o Outcome) String() string {
	switch o {
	case Parsed:
		return "parsed"
	case EmptyOnFailure:
		return "empty-on-failure"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Record is one decoded element of an encoded list.
type Record map[string]any

// Text returns the value under key when it is a scalar, formatted as text.
func (r Record) Text(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	switch v := v.(type) {
	case string:
		return v, true
	case int, int64, float64, bool:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}

// List is the result of decoding one field.
type List struct {
	Records []Record
	Outcome Outcome
	// Err is the decoding error behind an EmptyOnFailure outcome.
	Err error
}

// Failed reports whether the field fell back to an empty list.
func (l List) Failed() bool { return l.Outcome == EmptyOnFailure }

// Len returns the number of records.
func (l List) Len() int { return len(l.Records) }

// Parse decodes field. Blank input is an empty, successfully parsed list.
func Parse(field string) List {
	field = strings.TrimSpace(field)
	if field == "" {
		return List{Outcome: Parsed}
	}
	if !strings.HasPrefix(field, "[") {
		return List{Outcome: EmptyOnFailure, Err: errors.New("not a bracketed list")}
	}
	quoted, err := requote(field)
	if err != nil {
		return List{Outcome: EmptyOnFailure, Err: errors.Wrap(err, "decoding record list")}
	}
	var raw []map[string]any
	if err := yaml.Unmarshal([]byte(quoted), &raw); err != nil {
		return List{Outcome: EmptyOnFailure, Err: errors.Wrap(err, "decoding record list")}
	}
	records := make([]Record, 0, len(raw))
	for i, r := range raw {
		if r == nil {
			return List{Outcome: EmptyOnFailure, Err: errors.Errorf("element %d is not a record", i)}
		}
		records = append(records, Record(r))
	}
	return List{Records: records, Outcome: Parsed}
}

// Names returns the "name" of each record in input order. Records without
// a name are skipped.
func (l List) Names() []string {
	names := make([]string, 0, len(l.Records))
	for _, r := range l.Records {
		if name, ok := r["name"].(string); ok {
			names = append(names, name)
		}
	}
	return names
}

// Where returns the records whose key holds exactly value.
func (l List) Where(key, value string) List {
	out := List{Outcome: l.Outcome, Err: l.Err}
	for _, r := range l.Records {
		if v, ok := r.Text(key); ok && v == value {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// Head returns at most the first n records.
func (l List) Head(n int) List {
	if n < 0 || n >= len(l.Records) {
		return l
	}
	return List{Records: l.Records[:n], Outcome: l.Outcome, Err: l.Err}
}
