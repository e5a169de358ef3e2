package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/queryshv/rad-report/internal/datekey"
	rerrors "github.com/queryshv/rad-report/internal/errors"
)

// Lookup resolves the operator on duty for a date-key. schedule.Record
// satisfies it.
type Lookup interface {
	Operator(key string) (string, bool)
}

// AddAlarmLog appends an undated alarm log and returns its id.
func (d *Draft) AddAlarmLog() string {
	id := uuid.NewString()
	d.AlarmLogs = append(d.AlarmLogs, AlarmLog{ID: id})
	return id
}

// RemoveAlarmLog drops the alarm log with the given id.
func (d *Draft) RemoveAlarmLog(id string) error {
	i := d.indexOf(id)
	if i < 0 {
		return rerrors.NotFound("Alarm log")
	}
	d.AlarmLogs = append(d.AlarmLogs[:i], d.AlarmLogs[i+1:]...)
	return nil
}

// SelectDate sets the day of an alarm log and resolves its operator from
// lookup. A day with no scheduled operator gets UnknownOperator.
func (d *Draft) SelectDate(id string, day time.Time, lookup Lookup) error {
	i := d.indexOf(id)
	if i < 0 {
		return rerrors.NotFound("Alarm log")
	}
	day = datekey.Day(day)
	d.AlarmLogs[i].Date = &day
	d.AlarmLogs[i].OperatorName = resolve(lookup, day)
	return nil
}

// ClearDate removes the day of an alarm log along with its operator.
func (d *Draft) ClearDate(id string) error {
	i := d.indexOf(id)
	if i < 0 {
		return rerrors.NotFound("Alarm log")
	}
	d.AlarmLogs[i].Date = nil
	d.AlarmLogs[i].OperatorName = ""
	return nil
}

// ResolveOperators re-derives every dated alarm log's operator from lookup.
// Undated logs lose any operator they carried.
func (d *Draft) ResolveOperators(lookup Lookup) {
	for i := range d.AlarmLogs {
		log := &d.AlarmLogs[i]
		if log.Date == nil {
			log.OperatorName = ""
			continue
		}
		log.OperatorName = resolve(lookup, *log.Date)
	}
}

func resolve(lookup Lookup, day time.Time) string {
	if lookup == nil {
		return UnknownOperator
	}
	op, ok := lookup.Operator(datekey.Format(day))
	if !ok || strings.TrimSpace(op) == "" {
		return UnknownOperator
	}
	return op
}

// SetSystemIssue sets the system-issue flag. Clearing it clears the lanes.
func (d *Draft) SetSystemIssue(on bool) {
	d.HasSystemIssue = on
	if !on {
		d.Lanes = nil
	}
}

// SetLane adds or removes one lane. Lanes can only be added while the
// system-issue flag is set.
func (d *Draft) SetLane(lane string, on bool) error {
	if !ValidLane(lane) {
		return rerrors.BadRequest(fmt.Sprintf("Unknown lane %q", lane))
	}
	at := -1
	for i, l := range d.Lanes {
		if l == lane {
			at = i
			break
		}
	}
	switch {
	case on && at < 0:
		if !d.HasSystemIssue {
			return rerrors.BadRequest("Lanes can only be set while the system has an issue")
		}
		d.Lanes = append(d.Lanes, lane)
	case !on && at >= 0:
		d.Lanes = append(d.Lanes[:at], d.Lanes[at+1:]...)
	}
	return nil
}

// SetEquipmentIssue sets the equipment-issue flag. Clearing it clears the
// comment.
func (d *Draft) SetEquipmentIssue(on bool) {
	d.HasEquipmentIssue = on
	if !on {
		d.EquipmentComments = ""
	}
}

// SetEquipmentComments sets the equipment comment. It is ignored unless the
// equipment-issue flag is set.
func (d *Draft) SetEquipmentComments(comment string) {
	if d.HasEquipmentIssue {
		d.EquipmentComments = comment
	}
}

// SetSalutation sets the honorific opening the report.
func (d *Draft) SetSalutation(s string) error {
	if s != SalutationMale && s != SalutationFemale {
		return rerrors.BadRequest(fmt.Sprintf("Unknown salutation %q", s))
	}
	d.Salutation = s
	return nil
}

// Normalize applies the toggle rules to a draft received as a whole: lanes
// are dropped without the system flag and the comment without the equipment
// flag. An empty salutation becomes SalutationMale.
func (d *Draft) Normalize() {
	if d.Salutation == "" {
		d.Salutation = SalutationMale
	}
	if !d.HasSystemIssue {
		d.Lanes = nil
	}
	if !d.HasEquipmentIssue {
		d.EquipmentComments = ""
	}
	if d.AlarmLogs == nil {
		d.AlarmLogs = []AlarmLog{}
	}
}

// Validate rejects drafts that the editor could never produce: unknown
// salutations or lanes, repeated lanes, and missing or repeated alarm log
// ids.
func (d *Draft) Validate() error {
	var issues []rerrors.Issue
	if d.Salutation != "" && d.Salutation != SalutationMale && d.Salutation != SalutationFemale {
		issues = append(issues, rerrors.Issue{Path: "salutation", Message: "Unknown salutation"})
	}
	seenLane := make(map[string]bool, len(d.Lanes))
	for i, l := range d.Lanes {
		path := fmt.Sprintf("laneNumber.%d", i)
		switch {
		case !ValidLane(l):
			issues = append(issues, rerrors.Issue{Path: path, Message: "Unknown lane"})
		case seenLane[l]:
			issues = append(issues, rerrors.Issue{Path: path, Message: "Duplicate lane"})
		}
		seenLane[l] = true
	}
	seenID := make(map[string]bool, len(d.AlarmLogs))
	for i, a := range d.AlarmLogs {
		path := fmt.Sprintf("alarmLogs.%d.id", i)
		switch {
		case a.ID == "":
			issues = append(issues, rerrors.Issue{Path: path, Message: "Alarm log id is required"})
		case seenID[a.ID]:
			issues = append(issues, rerrors.Issue{Path: path, Message: "Duplicate alarm log id"})
		}
		seenID[a.ID] = true
	}
	if len(issues) > 0 {
		return rerrors.Validation("Invalid report draft", issues)
	}
	return nil
}

// Problems lists the draft invariants currently violated, in the messages
// shown beside the form fields.
func (d *Draft) Problems() []rerrors.Issue {
	problems := []rerrors.Issue{}
	if d.HasSystemIssue && len(d.Lanes) == 0 {
		problems = append(problems, rerrors.Issue{Path: "laneNumber", Message: ProblemLanes})
	}
	if d.HasEquipmentIssue && strings.TrimSpace(d.EquipmentComments) == "" {
		problems = append(problems, rerrors.Issue{Path: "equipmentComments", Message: ProblemComment})
	}
	return problems
}

// Exportable reports whether the report may be downloaded, copied or sent:
// every alarm log needs a date and a resolved operator.
func (d *Draft) Exportable() bool {
	for _, a := range d.AlarmLogs {
		if !a.Complete() {
			return false
		}
	}
	return true
}

func (d *Draft) indexOf(id string) int {
	for i, a := range d.AlarmLogs {
		if a.ID == id {
			return i
		}
	}
	return -1
}
