package report

import (
	"strings"
	"time"
)

// Compose renders the report text for d. It never fails: missing pieces are
// rendered as placeholders so an incomplete draft can still be previewed.
func Compose(d *Draft) string {
	if d == nil {
		d = NewDraft()
	}
	var b strings.Builder

	salutation := d.Salutation
	if salutation == "" {
		salutation = SalutationMale
	}
	b.WriteString(salutation)
	b.WriteString(phraseIntro)

	b.WriteString(phraseSection1)
	switch {
	case d.HasSystemIssue && len(d.Lanes) > 0:
		b.WriteString(phraseSystemIssue)
		b.WriteString(strings.Join(d.Lanes, ", "))
	case d.HasSystemIssue:
		b.WriteString(phraseSystemIssueNoLane)
	default:
		b.WriteString(phraseSystemOK)
	}
	b.WriteString("\n")

	b.WriteString(phraseSection2)
	if d.HasEquipmentIssue {
		b.WriteString(phraseEquipmentIssue)
		if d.EquipmentComments != "" {
			b.WriteString("- ")
			b.WriteString(d.EquipmentComments)
		} else {
			b.WriteString(phraseEquipmentNoComment)
		}
	} else {
		b.WriteString(phraseEquipmentOK)
	}
	b.WriteString("\n")

	b.WriteString(phraseSection3)
	logs := d.SortedAlarmLogs()
	if len(logs) == 0 {
		b.WriteString(phraseNoAlarms)
	}
	for _, log := range logs {
		b.WriteString(phraseAlarmPrefix)
		if log.Date != nil {
			b.WriteString(FormatDay(*log.Date))
		} else {
			b.WriteString(phraseNoDate)
		}
		b.WriteString(" ")
		if log.OperatorName != "" {
			b.WriteString(log.OperatorName)
		} else {
			b.WriteString(phraseNoOperator)
		}
		b.WriteString("\n")
	}

	b.WriteString(phraseThanks)
	return b.String()
}

// FormatDay renders day as dd/MM/yyyy followed by its Khmer weekday name.
func FormatDay(day time.Time) string {
	return day.Format("02/01/2006") + " (" + khmerWeekdays[day.Weekday()] + ")"
}

// FileName is the download name of a report composed at now.
func FileName(now time.Time) string {
	return fileNamePrefix + now.Format("02-01-2006") + ".txt"
}
