// Package schedule persists the operator schedule: a single record mapping
// MM-DD-YY date-keys to the operator on duty that day.
package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/queryshv/rad-report/internal/datekey"
	rerrors "github.com/queryshv/rad-report/internal/errors"
)

// Validation messages reported per field.
const (
	MsgDateFormat    = "Date must be in MM-DD-YY format"
	MsgDateCalendar  = "Date is not a valid calendar day"
	MsgOperatorEmpty = "Operator name cannot be empty"
)

// Record maps a date-key to an operator name.
type Record map[string]string

// Entry is one {date, operator} pair.
type Entry struct {
	Date     string `json:"date"`
	Operator string `json:"operator"`
}

// Operator returns the operator scheduled for key.
func (r Record) Operator(key string) (string, bool) {
	op, ok := r[key]
	return op, ok
}

// Clone returns an independent copy of r. A nil record clones to an empty one.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Entries returns the record as entries ordered by date.
func (r Record) Entries() []Entry {
	entries := make([]Entry, 0, len(r))
	for k, v := range r {
		entries = append(entries, Entry{Date: k, Operator: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		return datekey.Less(entries[i].Date, entries[j].Date)
	})
	return entries
}

// Validate checks every key and operator of r.
func (r Record) Validate() error {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var issues []rerrors.Issue
	for _, k := range keys {
		issues = append(issues, checkDate(k, k)...)
		issues = append(issues, checkOperator(k, r[k])...)
	}
	if len(issues) > 0 {
		return rerrors.Validation("Invalid full schedule object format", issues)
	}
	return nil
}

// ValidateEntries checks every entry before any of them is applied.
func ValidateEntries(entries []Entry) error {
	var issues []rerrors.Issue
	for i, e := range entries {
		issues = append(issues, checkDate(fmt.Sprintf("%d.date", i), e.Date)...)
		issues = append(issues, checkOperator(fmt.Sprintf("%d.operator", i), e.Operator)...)
	}
	if len(issues) > 0 {
		return rerrors.Validation("Invalid schedule entry array format", issues)
	}
	return nil
}

func checkDate(path, key string) []rerrors.Issue {
	err := datekey.Validate(key)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, datekey.ErrInvalidDay):
		return []rerrors.Issue{{Path: path, Message: MsgDateCalendar}}
	default:
		return []rerrors.Issue{{Path: path, Message: MsgDateFormat}}
	}
}

func checkOperator(path, operator string) []rerrors.Issue {
	if strings.TrimSpace(operator) == "" {
		return []rerrors.Issue{{Path: path, Message: MsgOperatorEmpty}}
	}
	return nil
}
