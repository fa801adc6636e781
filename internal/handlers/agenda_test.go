package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"

	"github.com/hOtoch/moment-midia/internal/handlers"
	"github.com/hOtoch/moment-midia/internal/models"
	"github.com/hOtoch/moment-midia/internal/services"
)

func strPtr(s string) *string { return &s }

func setupAgendaHandler() (*handlers.AgendaHandler, *MockTaskService, *MockUserService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	taskService := NewMockTaskService()
	userService := &MockUserService{}
	handler := handlers.NewAgendaHandler(taskService, userService)
	router := gin.New()
	return handler, taskService, userService, router
}

func seedTask(m *MockTaskService, title, date string, priority models.Priority, completed bool) {
	task := models.Task{
		ID:       uuid.Must(uuid.NewV4()),
		Title:    title,
		Priority: priority,
		Completed: completed,
	}
	if date != "" {
		task.ScheduledDate = strPtr(date)
	}
	m.tasks[task.ID] = task
}

func TestOverview(t *testing.T) {
	handler, taskService, userService, router := setupAgendaHandler()

	router.GET("/agenda/overview", handler.Overview)

	seedTask(taskService, "Agendada", "2024-03-10", models.PriorityHigh, false)
	seedTask(taskService, "Sem data", "", models.PriorityLow, true)
	userService.Create(context.Background(), services.UserInput{Name: "Ana", Role: "manager"})

	req, _ := http.NewRequest("GET", "/agenda/overview", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response["total_tasks"] != float64(2) {
		t.Errorf("Expected total_tasks 2, got %v", response["total_tasks"])
	}
	if response["completed_tasks"] != float64(1) {
		t.Errorf("Expected completed_tasks 1, got %v", response["completed_tasks"])
	}
	if response["unscheduled_tasks"] != float64(1) {
		t.Errorf("Expected unscheduled_tasks 1, got %v", response["unscheduled_tasks"])
	}
	if _, present := response["tasks_error"]; present {
		t.Error("Expected no tasks_error on success")
	}
}

// A task load failure must not block the user list, and vice versa.
func TestOverview_PartialFailure(t *testing.T) {
	handler, taskService, userService, router := setupAgendaHandler()

	router.GET("/agenda/overview", handler.Overview)

	taskService.failWith = &services.PersistenceError{Op: "list tasks", Err: context.DeadlineExceeded}
	userService.Create(context.Background(), services.UserInput{Name: "Ana", Role: "manager"})

	req, _ := http.NewRequest("GET", "/agenda/overview", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response["tasks_error"] == nil || response["tasks_error"] == "" {
		t.Error("Expected tasks_error to be reported")
	}
	users, _ := response["users"].([]interface{})
	if len(users) != 1 {
		t.Errorf("Expected users to load despite task failure, got %v", response["users"])
	}
	tasks, _ := response["tasks"].([]interface{})
	if len(tasks) != 0 {
		t.Errorf("Expected empty task list on failure, got %v", response["tasks"])
	}
}

func TestTasksForDay(t *testing.T) {
	handler, taskService, _, router := setupAgendaHandler()

	router.GET("/agenda/day/:date", handler.TasksForDay)

	seedTask(taskService, "No dia", "2024-03-10", models.PriorityHigh, false)
	seedTask(taskService, "Outro dia", "2024-03-11", models.PriorityMedium, false)
	seedTask(taskService, "Sem data", "", models.PriorityMedium, false)

	req, _ := http.NewRequest("GET", "/agenda/day/2024-03-10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	tasks, _ := response["tasks"].([]interface{})
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task on 2024-03-10, got %d", len(tasks))
	}
	if response["high_priority_count"] != float64(1) {
		t.Errorf("Expected high_priority_count 1, got %v", response["high_priority_count"])
	}
}

func TestTasksForDayInvalidDate(t *testing.T) {
	handler, _, _, router := setupAgendaHandler()

	router.GET("/agenda/day/:date", handler.TasksForDay)

	req, _ := http.NewRequest("GET", "/agenda/day/10-03-2024", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestUnscheduledTasks(t *testing.T) {
	handler, taskService, _, router := setupAgendaHandler()

	router.GET("/agenda/unscheduled", handler.UnscheduledTasks)

	seedTask(taskService, "Agendada", "2024-03-10", models.PriorityMedium, false)
	seedTask(taskService, "Backlog", "", models.PriorityLow, false)

	req, _ := http.NewRequest("GET", "/agenda/unscheduled", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["total"] != float64(1) {
		t.Errorf("Expected total 1, got %v", response["total"])
	}
}

func TestCalendarMonth(t *testing.T) {
	handler, taskService, _, router := setupAgendaHandler()

	router.GET("/agenda/calendar/:year/:month", handler.CalendarMonth)

	seedTask(taskService, "Alta", "2024-03-10", models.PriorityHigh, false)
	seedTask(taskService, "Normal", "2024-03-10", models.PriorityMedium, false)

	req, _ := http.NewRequest("GET", "/agenda/calendar/2024/3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response struct {
		Year  int `json:"year"`
		Month int `json:"month"`
		Days  []struct {
			Date         string `json:"date"`
			TaskCount    int    `json:"task_count"`
			HighPriority int    `json:"high_priority_count"`
		} `json:"days"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response.Days) != 1 {
		t.Fatalf("Expected 1 flagged day, got %d", len(response.Days))
	}
	if response.Days[0].Date != "2024-03-10" || response.Days[0].TaskCount != 2 || response.Days[0].HighPriority != 1 {
		t.Errorf("Unexpected day summary: %+v", response.Days[0])
	}
}

func TestCalendarMonthInvalid(t *testing.T) {
	handler, _, _, router := setupAgendaHandler()

	router.GET("/agenda/calendar/:year/:month", handler.CalendarMonth)

	for _, path := range []string{"/agenda/calendar/2024/13", "/agenda/calendar/abc/3", "/agenda/calendar/2024/0"} {
		req, _ := http.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status %d, got %d", path, http.StatusBadRequest, w.Code)
		}
	}
}
