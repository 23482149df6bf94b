package tasks

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gigwise/eventops/internal/models"
)

// Window is the time filter a task's run_when/age condition resolves to.
// Cutoff-style conditions (event_created, after_approval, after_event) match
// records older than Cutoff; before_event matches events dated between From
// and To.
type Window struct {
	Cutoff time.Time
	From   time.Time
	To     time.Time
}

// ParseAge converts a human age string such as "3 DAY" or "1 HOUR" into a
// duration. Month and year use the same fixed approximations as the
// frequency table.
func ParseAge(age string) (time.Duration, error) {
	fields := strings.Fields(strings.TrimSpace(age))
	if len(fields) != 2 {
		return 0, fmt.Errorf("malformed age %q", age)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("malformed age %q", age)
	}

	var unit time.Duration
	switch strings.ToUpper(strings.TrimSuffix(fields[1], "S")) {
	case "HOUR":
		unit = time.Hour
	case "DAY":
		unit = 24 * time.Hour
	case "WEEK":
		unit = 7 * 24 * time.Hour
	case "MONTH":
		unit = 30 * 24 * time.Hour
	case "YEAR":
		unit = 365 * 24 * time.Hour
	default:
		return 0, fmt.Errorf("unknown age unit %q", fields[1])
	}

	return time.Duration(n) * unit, nil
}

// BuildWindow translates a task condition into the concrete time filter for
// one run. Pure function of its arguments; executing the query is the
// caller's job.
func BuildWindow(runWhen models.RunWhen, age string, now time.Time) (Window, error) {
	d, err := ParseAge(age)
	if err != nil {
		return Window{}, err
	}

	switch runWhen {
	case models.RunWhenEventCreated, models.RunWhenAfterApproval, models.RunWhenAfterEvent:
		return Window{Cutoff: now.Add(-d)}, nil
	case models.RunWhenBeforeEvent:
		return Window{From: now, To: now.Add(d)}, nil
	default:
		return Window{}, fmt.Errorf("unknown run_when %q", runWhen)
	}
}
