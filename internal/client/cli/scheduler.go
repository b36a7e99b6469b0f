package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Schedulers fetches and lists the auto-apply schedulers.
func (a *App) Schedulers(ctx context.Context) error {
	a.search.FetchSchedulers(ctx)

	snap := a.search.Snapshot()
	if snap.SchedulerError != "" {
		fmt.Println(snap.SchedulerError)
		return nil
	}

	schedulers := a.search.Schedulers()
	if len(schedulers) == 0 {
		fmt.Println("No schedulers yet, create one with 'screate'")
		return nil
	}

	for _, s := range schedulers {
		status := "off"
		if s.Enabled {
			status = "on"
		}
		fmt.Printf("%d  [%s]  %s  (created %s)\n", s.ID, status, s.Name, s.CreatedAt.Format(time.DateOnly))
	}
	return nil
}

// ShowScheduler prompts for an ID and prints the scheduler's stored params.
func (a *App) ShowScheduler(ctx context.Context) error {
	id, err := a.promptSchedulerID()
	if err != nil {
		return err
	}

	s := a.search.GetScheduler(ctx, id)
	if s == nil {
		if msg := a.search.Snapshot().SchedulerError; msg != "" {
			fmt.Println(msg)
		}
		return nil
	}

	fmt.Printf("id:          %d\n", s.ID)
	fmt.Printf("name:        %s\n", s.Name)
	fmt.Printf("enabled:     %v\n", s.Enabled)
	fmt.Printf("created:     %s\n", s.CreatedAt.Format(time.RFC3339))
	fmt.Printf("text:        %s\n", s.Params.Text)
	fmt.Printf("area:        %s\n", s.Params.Area)
	fmt.Printf("experience:  %s\n", s.Params.Experience)
	fmt.Printf("salary:      %s (only with salary: %v)\n", s.Params.Salary, s.Params.OnlyWithSalary)
	return nil
}

// CreateScheduler creates a scheduler from the current filters and the
// selected resume.
func (a *App) CreateScheduler(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter scheduler name", os.Stdout)
	if err != nil {
		return err
	}

	a.search.CreateScheduler(ctx, name)

	snap := a.search.Snapshot()
	if snap.SchedulerError != "" {
		fmt.Println(snap.SchedulerError)
		return nil
	}
	fmt.Println("Scheduler created")
	return nil
}

// ToggleScheduler flips a scheduler's enabled flag.
func (a *App) ToggleScheduler(ctx context.Context) error {
	id, err := a.promptSchedulerID()
	if err != nil {
		return err
	}

	a.search.ToggleScheduler(ctx, id)

	if msg := a.search.Snapshot().SchedulerError; msg != "" {
		fmt.Println(msg)
		return nil
	}
	for _, s := range a.search.Schedulers() {
		if s.ID == id {
			status := "disabled"
			if s.Enabled {
				status = "enabled"
			}
			fmt.Printf("Scheduler %d is now %s\n", id, status)
			break
		}
	}
	return nil
}

// DeleteScheduler removes a scheduler after confirmation.
func (a *App) DeleteScheduler(ctx context.Context) error {
	id, err := a.promptSchedulerID()
	if err != nil {
		return err
	}

	confirm, err := getSimpleText(a.reader, fmt.Sprintf("Delete scheduler %d? (y/n)", id), os.Stdout)
	if err != nil {
		return err
	}
	if confirm != "y" && confirm != "yes" {
		fmt.Println("Cancelled")
		return nil
	}

	a.search.DeleteScheduler(ctx, id)

	if msg := a.search.Snapshot().SchedulerError; msg != "" {
		fmt.Println(msg)
		return nil
	}
	fmt.Println("Scheduler deleted")
	return nil
}

func (a *App) promptSchedulerID() (int64, error) {
	raw, err := getSimpleText(a.reader, "Enter scheduler id", os.Stdout)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Println("Scheduler id must be a number")
		return 0, err
	}
	return id, nil
}
