package handlers

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hOtoch/moment-midia/internal/agenda"
	"github.com/hOtoch/moment-midia/internal/models"
	"github.com/hOtoch/moment-midia/internal/services"
)

// AgendaHandler serves the derived views the index page renders: the
// overview with its stat cards, per-day lists, the unscheduled list, and
// the calendar month flags.
type AgendaHandler struct {
	taskService services.TaskService
	userService services.UserService
}

func NewAgendaHandler(taskService services.TaskService, userService services.UserService) *AgendaHandler {
	return &AgendaHandler{taskService: taskService, userService: userService}
}

type overviewResponse struct {
	Tasks            []models.Task `json:"tasks"`
	Users            []models.User `json:"users"`
	TotalTasks       int           `json:"total_tasks"`
	CompletedTasks   int           `json:"completed_tasks"`
	UnscheduledTasks int           `json:"unscheduled_tasks"`
	TasksError       string        `json:"tasks_error,omitempty"`
	UsersError       string        `json:"users_error,omitempty"`
}

// Overview loads both collections concurrently, the way the page fired its
// two initial fetches. A failure on one side leaves that collection empty
// and reports it without blocking the other.
func (h *AgendaHandler) Overview(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		wg       sync.WaitGroup
		tasks    []models.Task
		users    []models.User
		tasksErr error
		usersErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		tasks, tasksErr = h.taskService.List(ctx)
	}()
	go func() {
		defer wg.Done()
		users, usersErr = h.userService.List(ctx)
	}()
	wg.Wait()

	response := overviewResponse{
		Tasks:            tasks,
		Users:            users,
		TotalTasks:       agenda.TotalCount(tasks),
		CompletedTasks:   agenda.CompletedCount(tasks),
		UnscheduledTasks: len(agenda.UnscheduledTasks(tasks)),
	}
	if tasksErr != nil {
		response.Tasks = []models.Task{}
		response.TasksError = tasksErr.Error()
	}
	if usersErr != nil {
		response.Users = []models.User{}
		response.UsersError = usersErr.Error()
	}

	c.JSON(http.StatusOK, response)
}

func (h *AgendaHandler) TasksForDay(c *gin.Context) {
	date, err := agenda.ParseLocalDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	tasks, err := h.taskService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	onDate := agenda.TasksOnDate(tasks, date)
	if onDate == nil {
		onDate = []models.Task{}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":                agenda.FormatLocalDate(date),
		"tasks":               onDate,
		"high_priority_count": agenda.HighPriorityCountOnDate(tasks, date),
	})
}

func (h *AgendaHandler) UnscheduledTasks(c *gin.Context) {
	tasks, err := h.taskService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	unscheduled := agenda.UnscheduledTasks(tasks)
	if unscheduled == nil {
		unscheduled = []models.Task{}
	}

	c.JSON(http.StatusOK, gin.H{"tasks": unscheduled, "total": len(unscheduled)})
}

func (h *AgendaHandler) CalendarMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}

	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	tasks, err := h.taskService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	summaries := agenda.MonthSummary(tasks, year, time.Month(month))
	if summaries == nil {
		summaries = []agenda.DaySummary{}
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"days":  summaries,
	})
}
