package models

import "time"

type TaskFrequency string

const (
	FreqHourly     TaskFrequency = "Hourly"
	FreqTwiceDaily TaskFrequency = "Twice Daily"
	FreqDaily      TaskFrequency = "Daily"
	FreqWeekly     TaskFrequency = "Weekly"
	FreqMonthly    TaskFrequency = "Monthly"
	FreqYearly     TaskFrequency = "Yearly"
)

// Duration maps a frequency to the interval between runs. Unknown values
// fall back to hourly so a misconfigured task keeps running rather than
// silently stopping.
func (f TaskFrequency) Duration() time.Duration {
	switch f {
	case FreqHourly:
		return time.Hour
	case FreqTwiceDaily:
		return 12 * time.Hour
	case FreqDaily:
		return 24 * time.Hour
	case FreqWeekly:
		return 7 * 24 * time.Hour
	case FreqMonthly:
		return 30 * 24 * time.Hour
	case FreqYearly:
		return 365 * 24 * time.Hour
	default:
		return time.Hour
	}
}

type RunWhen string

const (
	RunWhenEventCreated  RunWhen = "event_created"
	RunWhenAfterApproval RunWhen = "after_approval"
	RunWhenBeforeEvent   RunWhen = "before_event"
	RunWhenAfterEvent    RunWhen = "after_event"
)

// Task is one schedulable maintenance job. Each task is its own row, and
// bookkeeping updates go through an optimistic version check so concurrent
// runs cannot clobber each other's state.
type Task struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Slug        string        `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string        `gorm:"not null" json:"name"`
	Description string        `json:"description,omitempty"`
	Active      bool          `gorm:"not null;default:false" json:"active"`
	Frequency   TaskFrequency `gorm:"type:varchar(15);not null" json:"frequency"`

	RunWhen RunWhen `gorm:"type:varchar(20);not null" json:"run_when"`
	// Age is a human duration such as "3 DAY" or "1 HOUR".
	Age string `gorm:"not null" json:"age"`

	EmailTemplate string `json:"email_template,omitempty"`
	EmailSubject  string `json:"email_subject,omitempty"`
	EmailFrom     string `json:"email_from,omitempty"`

	NextRun    *time.Time `json:"next_run,omitempty"`
	LastRan    *time.Time `json:"last_ran,omitempty"`
	TotalRuns  int        `gorm:"not null;default:0" json:"total_runs"`
	LastResult string     `json:"last_result,omitempty"`
	Default    bool       `gorm:"not null;default:false" json:"default"`

	Version int `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskLog marks a task as having run for one event. Its unique index is the
// per-entity idempotency guarantee: once a (slug, event) pair is recorded the
// runner skips that event on every later pass.
type TaskLog struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	TaskSlug string    `gorm:"not null;index:idx_task_event,unique" json:"task_slug"`
	EventID  uint      `gorm:"not null;index:idx_task_event,unique" json:"event_id"`
	RanAt    time.Time `gorm:"not null" json:"ran_at"`
}
