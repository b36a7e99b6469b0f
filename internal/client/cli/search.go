package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rodion-stepanov/vaiti-web/internal/client/api"
	"github.com/rodion-stepanov/vaiti-web/internal/client/models"
)

// Resumes fetches the linked resumes and lists them. The resume used for
// search and apply is marked with an asterisk.
func (a *App) Resumes(ctx context.Context) error {
	a.search.FetchResumes(ctx)

	snap := a.search.Snapshot()
	if len(snap.Resumes) == 0 {
		fmt.Println("No resumes found. Link your HeadHunter account first (see 'link').")
		return nil
	}

	for _, r := range snap.Resumes {
		marker := " "
		if r.ID == snap.SelectedResumeID {
			marker = "*"
		}
		fmt.Printf("%s %s  %s\n", marker, r.ID, r.Title)
	}
	return nil
}

// SelectResume prompts for a resume ID and makes it the active one.
func (a *App) SelectResume(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter resume id", os.Stdout)
	if err != nil {
		return err
	}

	for _, r := range a.search.Snapshot().Resumes {
		if r.ID == id {
			a.search.SelectResume(id)
			fmt.Printf("Selected resume: %s\n", r.Title)
			return nil
		}
	}

	fmt.Println("Unknown resume id, run 'resumes' to list them")
	return nil
}

// ShowFilters prints the current search criteria.
func (a *App) ShowFilters(ctx context.Context) error {
	f := a.search.Snapshot().Filters

	fmt.Printf("text:        %s\n", f.Text)
	fmt.Printf("field:       %s\n", f.SearchField)
	fmt.Printf("area:        %s\n", f.Area)
	fmt.Printf("experience:  %s\n", f.Experience)
	fmt.Printf("salary:      %s (only with salary: %v)\n", f.Salary, f.OnlyWithSalary)
	fmt.Printf("employment:  %s\n", f.Employment)
	fmt.Printf("schedule:    %s\n", f.Schedule)
	fmt.Printf("order:       %s\n", f.OrderBy)
	fmt.Printf("exclude:     %s\n", f.KeywordsToExclude)
	if f.CoverLetter != "" {
		fmt.Printf("cover:       %d characters\n", len(f.CoverLetter))
	}
	return nil
}

// EditFilters prompts for a filter field and its new value. Changing any
// field clears the previous count preview and messages.
func (a *App) EditFilters(ctx context.Context) error {
	field, err := getSimpleText(a.reader,
		"Filter field (text, field, area, experience, salary, salary_only, employment, schedule, order, exclude, cover)", os.Stdout)
	if err != nil {
		return err
	}

	if field == "cover" {
		text, err := GetMultiline(a.reader, "Enter cover letter", os.Stdout)
		if err != nil {
			return err
		}
		a.search.UpdateFilters(func(f *models.Filters) { f.CoverLetter = text })
		return nil
	}

	value, err := getSimpleText(a.reader, "Enter value (empty to clear)", os.Stdout)
	if err != nil {
		return err
	}

	switch field {
	case "text":
		a.search.UpdateFilters(func(f *models.Filters) { f.Text = value })
	case "field":
		a.search.UpdateFilters(func(f *models.Filters) { f.SearchField = value })
	case "area":
		a.search.UpdateFilters(func(f *models.Filters) { f.Area = value })
	case "experience":
		a.search.UpdateFilters(func(f *models.Filters) { f.Experience = value })
	case "salary":
		a.search.UpdateFilters(func(f *models.Filters) { f.Salary = value })
	case "salary_only":
		a.search.UpdateFilters(func(f *models.Filters) { f.OnlyWithSalary = value == "on" || value == "true" })
	case "employment":
		a.search.UpdateFilters(func(f *models.Filters) { f.Employment = value })
	case "schedule":
		a.search.UpdateFilters(func(f *models.Filters) { f.Schedule = value })
	case "order":
		a.search.UpdateFilters(func(f *models.Filters) { f.OrderBy = value })
	case "exclude":
		a.search.UpdateFilters(func(f *models.Filters) { f.KeywordsToExclude = value })
	default:
		fmt.Println("Unknown filter field:", field)
	}
	return nil
}

// Areas fetches the hh.ru location tree and prints the first two levels.
func (a *App) Areas(ctx context.Context) error {
	areas, err := a.client.Areas(ctx)
	if err != nil {
		log.Printf("Failed to load areas: %s", api.ErrorMessage(err, err.Error()))
		return err
	}

	for _, area := range areas {
		printArea(area, 0, 2)
	}
	return nil
}

func printArea(area models.Area, depth, maxDepth int) {
	fmt.Printf("%s%s  %s\n", strings.Repeat("  ", depth), area.ID, area.Name)
	if depth+1 >= maxDepth {
		return
	}
	for _, child := range area.Areas {
		printArea(child, depth+1, maxDepth)
	}
}

// SearchVacancies runs a search with the current filters and prints the
// results.
func (a *App) SearchVacancies(ctx context.Context) error {
	a.search.FetchVacancies(ctx)

	snap := a.search.Snapshot()
	if snap.Error != "" {
		fmt.Println(snap.Error)
		return nil
	}

	if len(snap.Vacancies) == 0 {
		fmt.Println("Nothing found")
		return nil
	}

	for _, v := range snap.Vacancies {
		fmt.Printf("%s  %s | %s | %s\n", v.ID, v.Name, v.Employer.Name, v.Area.Name)
		if v.SalaryRange != nil {
			fmt.Printf("    salary: %s\n", formatSalary(v.SalaryRange))
		}
		if v.AlternateURL != "" {
			fmt.Printf("    %s\n", v.AlternateURL)
		}
	}
	fmt.Printf("Total: %d\n", len(snap.Vacancies))
	return nil
}

func formatSalary(s *models.SalaryRange) string {
	from, to := "...", "..."
	if s.From != nil {
		from = fmt.Sprintf("%d", *s.From)
	}
	if s.To != nil {
		to = fmt.Sprintf("%d", *s.To)
	}
	return fmt.Sprintf("%s - %s %s", from, to, s.Currency)
}

// Count previews how many vacancies match the current filters without
// fetching them.
func (a *App) Count(ctx context.Context) error {
	a.search.FetchFilteredCount(ctx)

	snap := a.search.Snapshot()
	if snap.Error != "" {
		fmt.Println(snap.Error)
		return nil
	}
	if snap.FilteredCount != nil {
		fmt.Printf("Matching vacancies: %d\n", *snap.FilteredCount)
	}
	return nil
}

// Apply sends bulk applications for the current filters after an explicit
// confirmation.
func (a *App) Apply(ctx context.Context) error {
	confirm, err := getSimpleText(a.reader, "Send applications to matching vacancies? (y/n)", os.Stdout)
	if err != nil {
		return err
	}
	if confirm != "y" && confirm != "yes" {
		fmt.Println("Cancelled")
		return nil
	}

	a.search.Apply(ctx)

	snap := a.search.Snapshot()
	if snap.Error != "" {
		fmt.Println(snap.Error)
		return nil
	}
	fmt.Println(snap.ApplySuccessMessage)
	return nil
}
