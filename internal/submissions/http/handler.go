// Package http provides HTTP handlers for the submissions dashboard API.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	apperrors "github.com/lovelifenow/admin-api/internal/errors"
	"github.com/lovelifenow/admin-api/internal/httputil"
	submissionsDomain "github.com/lovelifenow/admin-api/internal/submissions/domain"
	submissionsUseCase "github.com/lovelifenow/admin-api/internal/submissions/usecase"
)

// SubmissionHandler handles HTTP requests for submission listing, status
// updates, and group assignment.
type SubmissionHandler struct {
	submissionUseCase submissionsUseCase.SubmissionUseCase
	logger            *slog.Logger
}

// NewSubmissionHandler creates a new submission handler with required dependencies.
func NewSubmissionHandler(useCase submissionsUseCase.SubmissionUseCase, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissionUseCase: useCase,
		logger:            logger,
	}
}

// ListHandler returns one page of submissions for a form type.
// GET /api/submissions?type=contact&take=50&skip=0 - Requires valid session.
func (h *SubmissionHandler) ListHandler(c *gin.Context) {
	formType, err := submissionsDomain.ParseFormType(c.Query("type"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	take, skip, err := httputil.ParseTakeSkip(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	page, err := h.submissionUseCase.List(c.Request.Context(), formType, take, skip)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetHandler returns a single submission.
// GET /api/submissions/:type/:id - Requires valid session.
func (h *SubmissionHandler) GetHandler(c *gin.Context) {
	formType, id, ok := h.parseTypeAndID(c)
	if !ok {
		return
	}

	submission, err := h.submissionUseCase.Get(c.Request.Context(), formType, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// UpdateStatusHandler applies a partial status update to a submission.
// PATCH /api/submissions/:type/:id/status - Requires valid session.
func (h *SubmissionHandler) UpdateStatusHandler(c *gin.Context) {
	formType, id, ok := h.parseTypeAndID(c)
	if !ok {
		return
	}

	var patch submissionsDomain.StatusPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	status, err := h.submissionUseCase.UpdateStatus(c.Request.Context(), formType, id, &patch)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, status)
}

// AssignGroupRequest contains the parameters for assigning a constituent to
// the Bloomerang group of a form.
type AssignGroupRequest struct {
	ConstituentID int64  `json:"constituentId"`
	FormName      string `json:"formName"`
}

// Validate checks if the assign group request is valid.
func (r *AssignGroupRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ConstituentID, validation.Required),
		validation.Field(&r.FormName, validation.Required),
	)
}

// AssignGroupHandler adds a constituent to the group mapped to a form name.
// POST /api/groups/assign - Requires valid session.
func (h *SubmissionHandler) AssignGroupHandler(c *gin.Context) {
	var req AssignGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	groupID, err := h.submissionUseCase.AssignGroup(c.Request.Context(), req.ConstituentID, req.FormName)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"constituentId": req.ConstituentID,
		"formName":      req.FormName,
		"groupId":       groupID,
	})
}

// parseTypeAndID parses the :type and :id path parameters, responding with
// 400 on failure.
func (h *SubmissionHandler) parseTypeAndID(c *gin.Context) (submissionsDomain.FormType, int64, bool) {
	formType, err := submissionsDomain.ParseFormType(c.Param("type"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return "", 0, false
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.HandleBadRequestGin(c, errInvalidSubmissionID, h.logger)
		return "", 0, false
	}

	return formType, id, true
}

// errInvalidSubmissionID is the shared 400 for unparsable submission IDs.
var errInvalidSubmissionID = apperrors.New("submission id must be a positive integer")
