package tasks

import (
	"context"
	"fmt"

	"github.com/gigwise/eventops/internal/models"
	"github.com/gigwise/eventops/internal/repository"
)

const (
	SlugCompleteEvents       = "complete-events"
	SlugFailEnquiry          = "fail-enquiry"
	SlugRequestDeposit       = "request-deposit"
	SlugBalanceReminder      = "balance-reminder"
	SlugPlaylistNotification = "playlist-notification"
)

// DefaultTasks are the maintenance jobs created on first start. Existing
// rows are never overwritten, so operator changes to frequency, age or
// templates stick.
func DefaultTasks() []models.Task {
	return []models.Task{
		{
			Slug:        SlugCompleteEvents,
			Name:        "Complete Events",
			Description: "Marks approved events as completed once they have finished",
			Active:      true,
			Frequency:   models.FreqDaily,
			RunWhen:     models.RunWhenAfterEvent,
			Age:         "1 HOUR",
			Default:     true,
		},
		{
			Slug:        SlugFailEnquiry,
			Name:        "Fail Enquiry",
			Description: "Marks enquiries that received no response as lost",
			Active:      true,
			Frequency:   models.FreqDaily,
			RunWhen:     models.RunWhenEventCreated,
			Age:         "30 DAY",
			Default:     true,
		},
		{
			Slug:          SlugRequestDeposit,
			Name:          "Request Deposit",
			Description:   "Emails clients whose deposit remains due after approval",
			Active:        false,
			Frequency:     models.FreqDaily,
			RunWhen:       models.RunWhenAfterApproval,
			Age:           "3 DAY",
			EmailSubject:  "Your deposit for {{.EventName}} is due",
			EmailTemplate: "Dear {{.ClientName}},\n\nThe deposit of {{.Deposit}} for your event on {{.EventDate}} is now due.\n\nRegards,\n{{.Company}}",
			Default:       true,
		},
		{
			Slug:          SlugBalanceReminder,
			Name:          "Balance Reminder",
			Description:   "Emails clients whose balance remains due as the event approaches",
			Active:        false,
			Frequency:     models.FreqDaily,
			RunWhen:       models.RunWhenBeforeEvent,
			Age:           "14 DAY",
			EmailSubject:  "The balance for {{.EventName}} is due",
			EmailTemplate: "Dear {{.ClientName}},\n\nThe remaining balance of {{.Balance}} for your event on {{.EventDate}} is now due.\n\nRegards,\n{{.Company}}",
			Default:       true,
		},
		{
			Slug:          SlugPlaylistNotification,
			Name:          "Playlist Notification",
			Description:   "Reminds the assigned employee to review the playlist before the event",
			Active:        false,
			Frequency:     models.FreqWeekly,
			RunWhen:       models.RunWhenBeforeEvent,
			Age:           "14 DAY",
			EmailSubject:  "Playlist entries for {{.EventName}}",
			EmailTemplate: "Hi {{.EmployeeName}},\n\nThe playlist for {{.EventName}} on {{.EventDate}} has entries waiting for review.\n\n{{.Company}}",
			Default:       true,
		},
	}
}

// SeedDefaults inserts any missing default task rows.
func SeedDefaults(ctx context.Context, repo repository.TaskRepository) error {
	for _, task := range DefaultTasks() {
		t := task
		if err := repo.Seed(ctx, &t); err != nil {
			return fmt.Errorf("seed task %q: %w", t.Slug, err)
		}
	}
	return nil
}
