package http

import (
	"errors"
	"net/http"

	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/domain"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/service"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/logging"
	"github.com/gin-gonic/gin"
)

// Handler serves the issue endpoints of one resource path per project
type Handler struct {
	issues *service.IssueService
}

// NewHandler creates a new Handler
func NewHandler(issues *service.IssueService) *Handler {
	return &Handler{issues: issues}
}

// ListIssues returns the project's issues filtered by the query string
func (h *Handler) ListIssues(c *gin.Context) {
	project := c.Param("project")

	issues, err := h.issues.List(c.Request.Context(), project, queryParams(c))
	if err != nil {
		if errors.Is(err, domain.ErrMissingProject) {
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
			return
		}
		logging.New(c.Request.Context(), "issues").Errorf("list", "project=%q: %v", project, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, issues)
}

// CreateIssue appends a new issue to the project, creating the project on
// first use
func (h *Handler) CreateIssue(c *gin.Context) {
	project := c.Param("project")

	body, err := bodyParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody.Error()})
		return
	}

	issue, err := h.issues.Create(c.Request.Context(), project, body.fields)
	if err != nil {
		if errors.Is(err, domain.ErrMissingRequiredFields) || errors.Is(err, domain.ErrMissingProject) {
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
			return
		}
		logging.New(c.Request.Context(), "issues").Errorf("create", "project=%q: %v", project, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// UpdateIssue modifies the fields sent in the body on the issue named by _id
func (h *Handler) UpdateIssue(c *gin.Context) {
	project := c.Param("project")

	body, err := bodyParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody.Error()})
		return
	}

	_, err = h.issues.Modify(c.Request.Context(), project, body.fields)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, messageResponse{Result: "successfully updated", ID: body.echoID()})
	case errors.Is(err, domain.ErrMissingID):
		c.JSON(http.StatusOK, gin.H{"error": domain.ErrMissingID.Error()})
	case errors.Is(err, domain.ErrNoUpdateFields):
		c.JSON(http.StatusOK, messageResponse{Error: domain.ErrNoUpdateFields.Error(), ID: body.echoID()})
	default:
		c.JSON(http.StatusOK, messageResponse{Error: domain.ErrCouldNotUpdate.Error(), ID: body.echoID()})
	}
}

// DeleteIssue removes the issue named by _id
func (h *Handler) DeleteIssue(c *gin.Context) {
	project := c.Param("project")

	body, err := bodyParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody.Error()})
		return
	}

	_, err = h.issues.Remove(c.Request.Context(), project, body.fields)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, messageResponse{Result: "successfully deleted", ID: body.echoID()})
	case errors.Is(err, domain.ErrMissingID):
		c.JSON(http.StatusOK, gin.H{"error": domain.ErrMissingID.Error()})
	default:
		c.JSON(http.StatusOK, messageResponse{Error: domain.ErrCouldNotDelete.Error(), ID: body.echoID()})
	}
}
