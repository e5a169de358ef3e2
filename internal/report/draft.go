// Package report builds the daily radiation-detection status report: the
// draft a reporting officer fills in and the Khmer text composed from it.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/queryshv/rad-report/internal/datekey"
)

// MaxLane is the highest lane number that can be reported.
const MaxLane = 10

// AllLanes returns the lane identifiers in display order.
func AllLanes() []string {
	lanes := make([]string, MaxLane)
	for i := range lanes {
		lanes[i] = fmt.Sprintf("Lane %d", i+1)
	}
	return lanes
}

// ValidLane reports whether lane is one of AllLanes.
func ValidLane(lane string) bool {
	for _, l := range AllLanes() {
		if l == lane {
			return true
		}
	}
	return false
}

// Draft is the report being filled in. It lives only for one session and is
// never persisted server-side.
type Draft struct {
	Salutation        string     `json:"salutation"`
	HasSystemIssue    bool       `json:"hasSystemIssue"`
	Lanes             []string   `json:"laneNumber,omitempty"`
	HasEquipmentIssue bool       `json:"hasEquipmentIssue"`
	EquipmentComments string     `json:"equipmentComments"`
	AlarmLogs         []AlarmLog `json:"alarmLogs"`
}

// NewDraft returns an empty draft with the default salutation.
func NewDraft() *Draft {
	return &Draft{Salutation: SalutationMale, AlarmLogs: []AlarmLog{}}
}

// AlarmLog is one remaining-alarm line. Date is nil until a day is chosen.
type AlarmLog struct {
	ID           string
	Date         *time.Time
	OperatorName string
}

type alarmLogJSON struct {
	ID           string `json:"id"`
	Date         string `json:"date,omitempty"`
	OperatorName string `json:"operatorName,omitempty"`
}

// MarshalJSON writes the date as a date-key.
func (a AlarmLog) MarshalJSON() ([]byte, error) {
	out := alarmLogJSON{ID: a.ID, OperatorName: a.OperatorName}
	if a.Date != nil {
		out.Date = datekey.Format(*a.Date)
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the date as a date-key or YYYY-MM-DD. Both name a
// civil day; timestamps are rejected since their day depends on the sender's
// zone. An empty or null date leaves Date nil.
func (a *AlarmLog) UnmarshalJSON(data []byte) error {
	var in alarmLogJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	a.ID = in.ID
	a.OperatorName = in.OperatorName
	a.Date = nil
	if in.Date == "" {
		return nil
	}
	day, err := parseDate(in.Date)
	if err != nil {
		return fmt.Errorf("alarm log %q: %w", in.ID, err)
	}
	a.Date = &day
	return nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := datekey.Parse(s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// HasDate reports whether a day has been chosen.
func (a AlarmLog) HasDate() bool {
	return a.Date != nil
}

// Complete reports whether the log has a date and a resolved operator.
func (a AlarmLog) Complete() bool {
	op := strings.TrimSpace(a.OperatorName)
	return a.Date != nil && op != "" && op != UnknownOperator
}

// SortedAlarmLogs returns the alarm logs by date, undated last. Logs on the
// same day, and undated logs, keep their draft order.
func (d *Draft) SortedAlarmLogs() []AlarmLog {
	logs := make([]AlarmLog, len(d.AlarmLogs))
	copy(logs, d.AlarmLogs)
	sort.SliceStable(logs, func(i, j int) bool {
		a, b := logs[i].Date, logs[j].Date
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return logs
}
