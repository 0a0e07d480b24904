package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ellery/crewdesk/internal/api/dto"
	"github.com/ellery/crewdesk/internal/database/models"
	"github.com/ellery/crewdesk/internal/tasks"
	"github.com/ellery/crewdesk/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskList(t *testing.T) {
	router, ts := setupTestRouter(t)

	testutil.CreateTestProfile(t, ts.DB, ts.Member.ID, "Casey Writer")
	todo := testutil.CreateTestTask(t, ts.DB, ts.Admin.ID, "Draft captions", &ts.Member.ID)
	done := testutil.CreateTestTask(t, ts.DB, ts.Admin.ID, "Publish reel", nil)
	require.NoError(t, ts.DB.Model(done).Update("status", models.TaskStatusDone).Error)

	t.Run("requires authentication", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, http.MethodGet, "/api/v1/tasks", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("returns all tasks with resolved assignees", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, http.MethodGet, "/api/v1/tasks", nil, ts.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var list []tasks.TaskWithAssignee
		testutil.ParseJSONResponse(t, rr, &list)
		require.Len(t, list, 2)

		for _, item := range list {
			if item.ID == todo.ID {
				require.NotNil(t, item.Assignee)
				assert.Equal(t, ts.Member.ID, item.Assignee.ID)
				require.NotNil(t, item.Assignee.FullName)
				assert.Equal(t, "Casey Writer", *item.Assignee.FullName)
			}
			if item.ID == done.ID {
				assert.Nil(t, item.Assignee)
			}
		}
	})

	t.Run("filters by exact status", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, http.MethodGet, "/api/v1/tasks?status=Done", nil, ts.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var list []tasks.TaskWithAssignee
		testutil.ParseJSONResponse(t, rr, &list)
		require.Len(t, list, 1)
		assert.Equal(t, done.ID, list[0].ID)
	})

	t.Run("searches across title and assignee name", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, http.MethodGet, "/api/v1/tasks?search=casey", nil, ts.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var list []tasks.TaskWithAssignee
		testutil.ParseJSONResponse(t, rr, &list)
		require.Len(t, list, 1)
		assert.Equal(t, todo.ID, list[0].ID)
	})

	t.Run("status all is a no-op filter", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, http.MethodGet, "/api/v1/tasks?status=all", nil, ts.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var list []tasks.TaskWithAssignee
		testutil.ParseJSONResponse(t, rr, &list)
		assert.Len(t, list, 2)
	})
}

func TestTaskCreate(t *testing.T) {
	router, ts := setupTestRouter(t)

	t.Run("creates a task with defaults and stamps the creator", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, http.MethodPost, "/api/v1/tasks", dto.CreateTaskRequest{
			Title:    "Schedule carousel",
			Platform: "instagram",
		}, ts.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)

		var created models.Task
		testutil.ParseJSONResponse(t, rr, &created)
		assert.Equal(t, models.TaskStatusToDo, created.Status)
		assert.Equal(t, models.PriorityMedium, created.Priority)
		assert.Equal(t, ts.Member.ID, created.CreatedBy)
		assert.False(t, created.Completed)
	})

	t.Run("parses the due date", func(t *testing.T) {
		due := "2026-10-15"
		req := testutil.AuthenticatedRequest(t, http.MethodPost, "/api/v1/tasks", dto.CreateTaskRequest{
			Title:    "Monthly recap video",
			Platform: "youtube",
			Status:   string(models.TaskStatusInProgress),
			Priority: string(models.PriorityHigh),
			DueDate:  &due,
		}, ts.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)

		var created models.Task
		testutil.ParseJSONResponse(t, rr, &created)
		require.NotNil(t, created.DueDate)
		assert.Equal(t, "2026-10-15", created.DueDate.Format("2006-01-02"))
		assert.Equal(t, models.TaskStatusInProgress, created.Status)
	})

	t.Run("rejects a malformed due date", func(t *testing.T) {
		due := "15/10/2026"
		req := testutil.AuthenticatedRequest(t, http.MethodPost, "/api/v1/tasks", dto.CreateTaskRequest{
			Title:    "Bad date",
			Platform: "instagram",
			DueDate:  &due,
		}, ts.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects an unknown platform", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, http.MethodPost, "/api/v1/tasks", dto.CreateTaskRequest{
			Title:    "Nowhere post",
			Platform: "myspace",
		}, ts.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, http.MethodPost, "/api/v1/tasks", dto.CreateTaskRequest{
			Title:    "Strange state",
			Platform: "instagram",
			Status:   "Archived",
		}, ts.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTaskToggleCompletion(t *testing.T) {
	router, ts := setupTestRouter(t)

	t.Run("flips completed and leaves status alone", func(t *testing.T) {
		task := testutil.CreateTestTask(t, ts.DB, ts.Admin.ID, "Review storyboard", nil)
		require.NoError(t, ts.DB.Model(task).Update("status", models.TaskStatusInReview).Error)

		req := testutil.AuthenticatedRequest(t, http.MethodPost, "/api/v1/tasks/"+task.ID.String()+"/toggle", nil, ts.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var toggled models.Task
		testutil.ParseJSONResponse(t, rr, &toggled)
		assert.True(t, toggled.Completed)
		assert.Equal(t, models.TaskStatusInReview, toggled.Status)

		var stored models.Task
		require.NoError(t, ts.DB.First(&stored, task.ID).Error)
		assert.True(t, stored.Completed)
		assert.Equal(t, models.TaskStatusInReview, stored.Status)
	})

	t.Run("returns 404 for an unknown task", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, http.MethodPost, "/api/v1/tasks/"+uuid.New().String()+"/toggle", nil, ts.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("rejects a malformed task id", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, http.MethodPost, "/api/v1/tasks/nope/toggle", nil, ts.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTaskAssignees(t *testing.T) {
	router, ts := setupTestRouter(t)

	testutil.CreateTestProfile(t, ts.DB, ts.Member.ID, "Casey Writer")

	req := testutil.AuthenticatedRequest(t, http.MethodGet, "/api/v1/tasks/assignees", nil, ts.Token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var options []tasks.AssigneeOption
	testutil.ParseJSONResponse(t, rr, &options)
	require.Len(t, options, 2)

	var member *tasks.AssigneeOption
	for i := range options {
		if options[i].ID == ts.Member.ID {
			member = &options[i]
		}
	}
	require.NotNil(t, member)
	require.NotNil(t, member.FullName)
	assert.Equal(t, "Casey Writer", *member.FullName)
}
