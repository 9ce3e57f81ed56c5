package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"capstone-collab-api/internal/database"
	"capstone-collab-api/internal/middleware"
	"capstone-collab-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newSubmissionRouter() *gin.Engine {
	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	api.POST("/tasks/:id/submissions", SubmitTask)
	api.GET("/tasks/:id/submissions", GetSubmissions)

	staff := api.Group("")
	staff.Use(middleware.StaffOnly())
	staff.POST("/submissions/:id/grade", GradeSubmission)
	return r
}

func seedHandlerTask(t *testing.T) models.Task {
	t.Helper()
	task := models.Task{ID: "task-1", Title: "Final report", CreatorID: "adviser-1",
		GroupID: "group-1", Priority: models.PriorityMedium, Status: models.StatusPending, MaxScore: 100}
	require.NoError(t, database.GetDB().Create(&task).Error)
	return task
}

func multipartBody(t *testing.T, fileNames ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range fileNames {
		fw, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("file content for " + name))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestSubmitTask_Success(t *testing.T) {
	store := setupHandlerTest(t)
	r := newSubmissionRouter()
	seedHandlerTask(t)

	body, contentType := multipartBody(t, "report.pdf", "appendix.xlsx")
	req := httptest.NewRequest(http.MethodPost, "/api/tasks/task-1/submissions", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+studentToken(t))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var sub models.Submission
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sub))
	require.Equal(t, 1, sub.VersionNumber)
	require.Equal(t, "student-1", sub.SubmittedBy)
	require.Len(t, sub.Attachments, 2)
	require.Equal(t, "pdf", sub.Attachments[0].FileType)
	require.Equal(t, 2, store.Len())
}

func TestSubmitTask_NoFiles(t *testing.T) {
	setupHandlerTest(t)
	r := newSubmissionRouter()
	seedHandlerTask(t)

	body, contentType := multipartBody(t)
	req := httptest.NewRequest(http.MethodPost, "/api/tasks/task-1/submissions", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+studentToken(t))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitTask_UploadFailureReportsBadGateway(t *testing.T) {
	store := setupHandlerTest(t)
	r := newSubmissionRouter()
	seedHandlerTask(t)
	store.FailPattern = "huge"

	body, contentType := multipartBody(t, "huge.bin")
	req := httptest.NewRequest(http.MethodPost, "/api/tasks/task-1/submissions", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+studentToken(t))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadGateway, w.Code)

	// The failed attempt left no submission behind.
	var count int64
	require.NoError(t, database.GetDB().Model(&models.Submission{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestGetSubmissions_NewestFirstWithNames(t *testing.T) {
	setupHandlerTest(t)
	r := newSubmissionRouter()
	seedHandlerTask(t)

	student := models.User{ID: "student-1", FullName: "Bob Student", Role: models.RoleStudent, GroupID: "group-1"}
	require.NoError(t, database.GetDB().Create(&student).Error)

	for _, name := range []string{"v1.pdf", "v2.pdf"} {
		body, contentType := multipartBody(t, name)
		req := httptest.NewRequest(http.MethodPost, "/api/tasks/task-1/submissions", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+studentToken(t))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/task-1/submissions", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Submissions []SubmissionResponse `json:"submissions"`
		Count       int                  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	require.Equal(t, 2, resp.Submissions[0].VersionNumber)
	require.Equal(t, 1, resp.Submissions[1].VersionNumber)
	require.Equal(t, "Bob Student", resp.Submissions[0].SubmitterName)
}

func TestGradeSubmission_StudentForbidden(t *testing.T) {
	setupHandlerTest(t)
	r := newSubmissionRouter()

	body, _ := json.Marshal(map[string]any{"is_accepted": true})
	req := httptest.NewRequest(http.MethodPost, "/api/submissions/s-1/grade", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+studentToken(t))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestGradeSubmission_AcceptCompletesTask(t *testing.T) {
	setupHandlerTest(t)
	r := newSubmissionRouter()
	seedHandlerTask(t)

	sub := models.Submission{ID: "s-1", TaskID: "task-1", SubmittedBy: "student-1", VersionNumber: 1}
	require.NoError(t, database.GetDB().Create(&sub).Error)

	body, _ := json.Marshal(map[string]any{
		"is_accepted": true,
		"feedback":    "solid work",
		"score":       92.5,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/submissions/s-1/grade", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+staffToken(t))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var task models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	require.Equal(t, models.StatusCompleted, task.Status)
	require.NotNil(t, task.FinalScore)
	require.Equal(t, 92.5, *task.FinalScore)
}
