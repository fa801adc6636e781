// Package agenda derives calendar and list views from a loaded task
// collection. Everything here is a pure function: handlers fetch tasks once
// and slice them through these helpers, the way the index page derived its
// cards and calendar cells client-side.
package agenda

import (
	"time"

	"github.com/hOtoch/moment-midia/internal/models"
)

// TasksOnDate returns the tasks scheduled on the same local calendar day as
// date. Tasks with malformed scheduled dates are skipped rather than failing
// the whole view.
func TasksOnDate(tasks []models.Task, date time.Time) []models.Task {
	var result []models.Task
	for _, task := range tasks {
		if !task.IsScheduled() {
			continue
		}
		taskDate, err := ParseLocalDate(*task.ScheduledDate)
		if err != nil {
			continue
		}
		if SameDay(taskDate, date) {
			result = append(result, task)
		}
	}
	return result
}

// UnscheduledTasks returns the tasks with no scheduled date.
func UnscheduledTasks(tasks []models.Task) []models.Task {
	var result []models.Task
	for _, task := range tasks {
		if !task.IsScheduled() {
			result = append(result, task)
		}
	}
	return result
}

func CompletedCount(tasks []models.Task) int {
	count := 0
	for _, task := range tasks {
		if task.Completed {
			count++
		}
	}
	return count
}

func TotalCount(tasks []models.Task) int {
	return len(tasks)
}

// HighPriorityCountOnDate counts high-priority tasks on the given local
// calendar day, used to flag calendar cells.
func HighPriorityCountOnDate(tasks []models.Task, date time.Time) int {
	count := 0
	for _, task := range TasksOnDate(tasks, date) {
		if task.Priority == models.PriorityHigh {
			count++
		}
	}
	return count
}

// DaySummary is one calendar cell: how many tasks land on the day and how
// many of them are high priority.
type DaySummary struct {
	Date         string `json:"date"`
	TaskCount    int    `json:"task_count"`
	HighPriority int    `json:"high_priority_count"`
}

// MonthSummary returns a DaySummary for every day of the month that has at
// least one task, keyed for calendar rendering.
func MonthSummary(tasks []models.Task, year int, month time.Month) []DaySummary {
	days := daysInMonth(year, month)
	var summaries []DaySummary
	for day := 1; day <= days; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		onDate := TasksOnDate(tasks, date)
		if len(onDate) == 0 {
			continue
		}
		high := 0
		for _, task := range onDate {
			if task.Priority == models.PriorityHigh {
				high++
			}
		}
		summaries = append(summaries, DaySummary{
			Date:         FormatLocalDate(date),
			TaskCount:    len(onDate),
			HighPriority: high,
		})
	}
	return summaries
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}
