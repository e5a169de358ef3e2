package report

import "time"

// Salutations accepted in a draft.
const (
	SalutationMale   = "ខ្ញុំបាទ"
	SalutationFemale = "នាងខ្ញុំ"
)

// UnknownOperator is stored on an alarm log whose date has no schedule entry.
const UnknownOperator = "មិនមានឈ្មោះប្រតិបត្តិករ"

// Problem messages reported by (*Draft).Problems.
const (
	ProblemLanes   = "សូមជ្រើសរើសយ៉ាងហោចណាស់មួយ Lane ប្រសិនបើប្រព័ន្ធមានបញ្ហា។"
	ProblemComment = "សូម\u200bបញ្ចូល\u200bការ\u200bពិពណ៌នា\u200bបញ្ហា\u200bឧបករណ៍ ប្រសិនបើ\u200bបាន\u200bធីកថា\u200bមានបញ្ហា។"
)

const (
	phraseIntro              = " សូមរាយការណ៍ប្រចាំថ្ងៃអំពីប្រព័ន្ធរាវរកសារធាតុវិទ្យុសកម្ម៖\n\n"
	phraseSection1           = "១. "
	phraseSection2           = "២. "
	phraseSection3           = "៣. សំឡេងរោទ៍នៅសល់មាន៖\n"
	phraseSystemIssue        = "ប្រព័ន្ធ\u200bមាន\u200bបញ្ហា៖ "
	phraseSystemIssueNoLane  = "ប្រព័ន្ធ\u200bមាន\u200bបញ្ហា (មិនបានបញ្ជាក់ Lane)"
	phraseSystemOK           = "ប្រព័ន្ធ មិន\u200bមាន\u200bបញ្ហា"
	phraseEquipmentIssue     = "ឧបករណ៍មានបញ្ហដូចខាងក្រោម៖\n"
	phraseEquipmentNoComment = "- មិន\u200bមាន\u200bការ\u200bពិពណ៌នា\u200bបញ្ហា\u200bឧបករណ៍"
	phraseEquipmentOK        = "ឧបករណ៏គ្រប់ចំនួន"
	phraseAlarmPrefix        = "-ថ្ងៃទី\u200b "
	phraseNoDate             = "(មិនទាន់ជ្រើសរើសថ្ងៃខែ)"
	phraseNoOperator         = "(មិនមានឈ្មោះប្រតិបត្តិករ)"
	phraseNoAlarms           = "- មិន\u200bមាន\u200bសំឡេង\u200bរោទ៍\u200bនៅសល់\n"
	phraseThanks             = "\nសូមអរគុណ!"
	fileNamePrefix           = "របាយការណ៍ប្រចាំថ្ងៃ-"
)

var khmerWeekdays = [...]string{
	time.Sunday:    "ថ្ងៃអាទិត្យ",
	time.Monday:    "ថ្ងៃច័ន្ទ",
	time.Tuesday:   "ថ្ងៃអង្គារ",
	time.Wednesday: "ថ្ងៃពុធ",
	time.Thursday:  "ថ្ងៃព្រហស្បតិ៍",
	time.Friday:    "ថ្ងៃសុក្រ",
	time.Saturday:  "ថ្ងៃសៅរ៍",
}
