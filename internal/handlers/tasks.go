package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"

	"github.com/hOtoch/moment-midia/internal/agenda"
	"github.com/hOtoch/moment-midia/internal/models"
	"github.com/hOtoch/moment-midia/internal/repositories"
	"github.com/hOtoch/moment-midia/internal/services"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var input services.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	tasks, err := h.taskService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"total": len(tasks),
	})
}

// taskResponse is the edit-form prefill shape: the task plus its scheduled
// date broken into local calendar components, so a client never re-parses
// the ISO string through a UTC-shifting path.
type taskResponse struct {
	models.Task
	ScheduledDateParts *dateParts `json:"scheduled_date_parts,omitempty"`
}

type dateParts struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response := taskResponse{Task: task}
	if task.ScheduledDate != nil {
		if date, err := agenda.ParseLocalDate(*task.ScheduledDate); err == nil {
			response.ScheduledDateParts = &dateParts{
				Year:  date.Year(),
				Month: int(date.Month()),
				Day:   date.Day(),
			}
		}
	}

	c.JSON(http.StatusOK, response)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}

	var input services.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.taskService.Update(c.Request.Context(), id, input); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task updated successfully"})
}

// ToggleCompletion flips the completed flag: the client sends the value it
// currently displays and the server persists its negation.
func (h *TaskHandler) ToggleCompletion(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}

	var body struct {
		Completed bool `json:"completed"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.taskService.ToggleCompletion(c.Request.Context(), id, body.Completed); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"completed": !body.Completed})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func parseID(c *gin.Context, raw string) (uuid.UUID, bool) {
	id, err := uuid.FromString(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// handleServiceError maps the service error taxonomy onto status codes.
// Persistence errors echo the underlying message so the notification the
// client shows carries the gateway's own text.
func handleServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"field":   validationErr.Field,
			"details": validationErr.Message,
		})
		return
	}

	if errors.Is(err, repositories.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var persistenceErr *services.PersistenceError
	if errors.As(err, &persistenceErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": persistenceErr.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process request"})
}
