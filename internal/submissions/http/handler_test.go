package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lovelifenow/admin-api/internal/errors"
	submissionsDomain "github.com/lovelifenow/admin-api/internal/submissions/domain"
	submissionsHTTPMocks "github.com/lovelifenow/admin-api/internal/submissions/http/mocks"
)

func newSubmissionsRouter(useCase *submissionsHTTPMocks.MockSubmissionUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewSubmissionHandler(useCase, logger)

	router := gin.New()
	router.GET("/api/submissions", handler.ListHandler)
	router.GET("/api/submissions/:type/:id", handler.GetHandler)
	router.PATCH("/api/submissions/:type/:id/status", handler.UpdateStatusHandler)
	router.POST("/api/groups/assign", handler.AssignGroupHandler)
	return router
}

func TestListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &submissionsHTTPMocks.MockSubmissionUseCase{}
		page := &submissionsDomain.Page{
			FormType: submissionsDomain.FormContact,
			Total:    1,
			Submissions: []*submissionsDomain.Submission{
				{ID: 101, Subject: "Hello", Constituent: nil},
			},
		}
		useCase.On("List", mock.Anything, submissionsDomain.FormContact, 25, 5).Return(page, nil)

		router := newSubmissionsRouter(useCase)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/submissions?type=contact&take=25&skip=5", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "contact", resp["formType"])
		assert.Equal(t, float64(1), resp["total"])
		useCase.AssertExpectations(t)
	})

	t.Run("Success_DefaultPagination", func(t *testing.T) {
		useCase := &submissionsHTTPMocks.MockSubmissionUseCase{}
		useCase.On("List", mock.Anything, submissionsDomain.FormDonate, 50, 0).
			Return(&submissionsDomain.Page{FormType: submissionsDomain.FormDonate}, nil)

		router := newSubmissionsRouter(useCase)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/submissions?type=donate", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		useCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidFormType", func(t *testing.T) {
		useCase := &submissionsHTTPMocks.MockSubmissionUseCase{}
		router := newSubmissionsRouter(useCase)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/submissions?type=unknown", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid form type")
		useCase.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_TakeTooLarge", func(t *testing.T) {
		useCase := &submissionsHTTPMocks.MockSubmissionUseCase{}
		router := newSubmissionsRouter(useCase)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/submissions?type=contact&take=500", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_UpstreamFailure", func(t *testing.T) {
		useCase := &submissionsHTTPMocks.MockSubmissionUseCase{}
		useCase.On("List", mock.Anything, submissionsDomain.FormContact, 50, 0).
			Return(nil, apperrors.NewUpstream("list interactions", "API key is not valid"))

		router := newSubmissionsRouter(useCase)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/submissions?type=contact", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Upstream request failed", resp["error"])
		assert.Equal(t, "API key is not valid", resp["details"])
	})
}

func TestGetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &submissionsHTTPMocks.MockSubmissionUseCase{}
		useCase.On("Get", mock.Anything, submissionsDomain.FormVolunteer, int64(42)).
			Return(&submissionsDomain.Submission{ID: 42, Subject: "Volunteer"}, nil)

		router := newSubmissionsRouter(useCase)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/submissions/volunteer/42", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":42`)
	})

	t.Run("Error_BadID", func(t *testing.T) {
		useCase := &submissionsHTTPMocks.MockSubmissionUseCase{}
		router := newSubmissionsRouter(useCase)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/submissions/volunteer/abc", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateStatusHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &submissionsHTTPMocks.MockSubmissionUseCase{}
		useCase.On("UpdateStatus", mock.Anything, submissionsDomain.FormContact, int64(1),
			mock.MatchedBy(func(patch *submissionsDomain.StatusPatch) bool {
				return patch.IsRead != nil && *patch.IsRead && patch.Notes == nil
			})).
			Return(&submissionsDomain.Status{FormType: submissionsDomain.FormContact, SubmissionID: 1, IsRead: true}, nil)

		router := newSubmissionsRouter(useCase)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/submissions/contact/1/status",
			strings.NewReader(`{"isRead": true}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"isRead":true`)
	})

	t.Run("Error_EmptyPatch", func(t *testing.T) {
		useCase := &submissionsHTTPMocks.MockSubmissionUseCase{}
		useCase.On("UpdateStatus", mock.Anything, submissionsDomain.FormContact, int64(1), mock.Anything).
			Return(nil, apperrors.Wrap(apperrors.ErrInvalidInput, "no status fields to update"))

		router := newSubmissionsRouter(useCase)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/submissions/contact/1/status", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAssignGroupHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &submissionsHTTPMocks.MockSubmissionUseCase{}
		useCase.On("AssignGroup", mock.Anything, int64(7), "newsletter").Return(int64(1302529), nil)

		router := newSubmissionsRouter(useCase)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/groups/assign",
			strings.NewReader(`{"constituentId": 7, "formName": "newsletter"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, float64(1302529), resp["groupId"])
	})

	t.Run("Error_MissingFields", func(t *testing.T) {
		useCase := &submissionsHTTPMocks.MockSubmissionUseCase{}
		router := newSubmissionsRouter(useCase)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/groups/assign", strings.NewReader(`{"formName": "newsletter"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		useCase.AssertNotCalled(t, "AssignGroup", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidFormName", func(t *testing.T) {
		useCase := &submissionsHTTPMocks.MockSubmissionUseCase{}
		useCase.On("AssignGroup", mock.Anything, int64(7), "bad-form").
			Return(int64(0), apperrors.Wrap(apperrors.ErrInvalidInput, "invalid form name"))

		router := newSubmissionsRouter(useCase)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/groups/assign",
			strings.NewReader(`{"constituentId": 7, "formName": "bad-form"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
