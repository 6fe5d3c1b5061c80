package plan

import "fmt"

// The offline schedule generator: no model involved, a fixed day-index ->
// intensity pattern with courses dealt round-robin. Kept deterministic so
// the same inputs always yield the same weekly plan.

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type intensity struct {
	label    string
	studyMin int // study block length in minutes
}

// dayPattern maps day index to study intensity: heavier early week, review
// midweek, light weekend.
var dayPattern = [7]intensity{
	{"deep focus", 90},
	{"steady", 60},
	{"deep focus", 90},
	{"review", 45},
	{"steady", 60},
	{"light", 30},
	{"rest + prep", 20},
}

// WeeklySchedule builds the deterministic fallback weekly plan offered by
// the schedule endpoint. days is clamped to 1..7.
func WeeklySchedule(courses []string, workHoursPerWeek, commuteMinutesPerDay, days int) []Day {
	if days < 1 {
		days = 7
	} else if days > 7 {
		days = 7
	}
	if len(courses) == 0 {
		courses = []string{"your course"}
	}

	workMinPerDay := 0
	if workHoursPerWeek > 0 {
		workMinPerDay = workHoursPerWeek * 60 / days
	}

	week := make([]Day, 0, days)
	for i := 0; i < days; i++ {
		pat := dayPattern[i]
		course := courses[i%len(courses)]

		blocks := []Block{
			{
				Time:            "17:00-18:30",
				Task:            fmt.Sprintf("Study %s (%s)", course, pat.label),
				DurationMinutes: pat.studyMin,
				Notes:           "phone away, single course only",
			},
			{
				Time:            "18:30-18:45",
				Task:            "Break + 1 wellness action",
				DurationMinutes: 15,
				Notes:           "water, stretch or breathing",
			},
		}
		if workMinPerDay > 0 {
			blocks = append(blocks, Block{
				Time:            "09:00-13:00",
				Task:            "Work shift",
				DurationMinutes: workMinPerDay,
				Notes:           fmt.Sprintf("%dh/week spread over %d days", workHoursPerWeek, days),
			})
		}
		if commuteMinutesPerDay > 0 {
			blocks = append(blocks, Block{
				Time:            "—",
				Task:            "Commute (flashcards or rest)",
				DurationMinutes: commuteMinutesPerDay,
				Notes:           "use it for light review, not new material",
			})
		}

		week = append(week, Day{Day: dayNames[i], Blocks: blocks})
	}
	return week
}
