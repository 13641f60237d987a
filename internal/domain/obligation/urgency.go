package obligation

import (
	"fmt"
	"time"

	"github.com/consultorio/dashboard-backend/internal/domain/calendar"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// UrgencyLevel buckets an obligation by how close its due date is.
type UrgencyLevel string

const (
	UrgencyOverdue     UrgencyLevel = "OVERDUE"
	UrgencyDueToday    UrgencyLevel = "DUE_TODAY"
	UrgencyDueTomorrow UrgencyLevel = "DUE_TOMORROW"
	UrgencyUpcoming    UrgencyLevel = "UPCOMING"
)

// Urgency is the classification of a days-until-due value with its display
// text.
type Urgency struct {
	Level UrgencyLevel
	Days  int
	Text  string
}

// DaysUntilDue counts calendar days from today to the due date; negative when
// overdue.
func DaysUntilDue(o *entity.Obligation, today time.Time) int {
	return calendar.DaysBetween(today, o.DueDate)
}

// ClassifyUrgency maps a days-until-due value to its bucket.
func ClassifyUrgency(days int) Urgency {
	switch {
	case days < 0:
		return Urgency{Level: UrgencyOverdue, Days: days, Text: overdueText(-days)}
	case days == 0:
		return Urgency{Level: UrgencyDueToday, Days: days, Text: "Vence hoje"}
	case days == 1:
		return Urgency{Level: UrgencyDueTomorrow, Days: days, Text: "Vence amanhã"}
	default:
		return Urgency{Level: UrgencyUpcoming, Days: days, Text: fmt.Sprintf("Vence em %d %s", days, dayWord(days))}
	}
}

// UrgencyOf classifies an obligation relative to today.
func UrgencyOf(o *entity.Obligation, today time.Time) Urgency {
	return ClassifyUrgency(DaysUntilDue(o, today))
}

func overdueText(n int) string {
	return fmt.Sprintf("%d %s em atraso", n, dayWord(n))
}

func dayWord(n int) string {
	if n == 1 {
		return "dia"
	}
	return "dias"
}
