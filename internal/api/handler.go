package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/tkmani91/khs-server/internal/models"
	"github.com/tkmani91/khs-server/internal/reports"
	"github.com/tkmani91/khs-server/internal/service"
)

// Handler holds the API handlers
type Handler struct {
	svc service.Service
}

// NewHandler creates a new Handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	apiGroup := router.Group("/api")

	auth := apiGroup.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/viewer", h.ViewerAccess)
	}

	// Reads require any session, mutations require the admin role
	session := apiGroup.Group("", AuthMiddleware())
	admin := apiGroup.Group("", AuthMiddleware(), AdminMiddleware())

	session.GET("/dashboard", h.Dashboard)
	session.GET("/sync/status", h.SyncStatus)
	admin.POST("/sync", h.SyncNow)

	admin.POST("/users", h.CreateUser)

	admin.POST("/settings/github", h.EnableGitHub)
	admin.DELETE("/settings/github", h.DisableGitHub)

	session.GET("/members", h.ListMembers)
	admin.POST("/members", h.CreateMember)
	admin.PUT("/members/:id", h.UpdateMember)
	admin.DELETE("/members/:id", h.DeleteMember)

	session.GET("/pujas", h.ListPujas)
	admin.POST("/pujas", h.CreatePuja)
	admin.PUT("/pujas/:id", h.UpdatePuja)
	admin.DELETE("/pujas/:id", h.DeletePuja)

	session.GET("/contributions", h.ListContributions)
	admin.POST("/contributions", h.CreateContribution)
	admin.PUT("/contributions/:id", h.UpdateContribution)
	admin.DELETE("/contributions/:id", h.DeleteContribution)

	session.GET("/income", h.ListIncome)
	admin.POST("/income", h.CreateIncome)
	admin.PUT("/income/:id", h.UpdateIncome)
	admin.DELETE("/income/:id", h.DeleteIncome)

	session.GET("/expenses", h.ListExpenses)
	admin.POST("/expenses", h.CreateExpense)
	admin.PUT("/expenses/:id", h.UpdateExpense)
	admin.DELETE("/expenses/:id", h.DeleteExpense)

	session.GET("/notices", h.ListNotices)
	admin.POST("/notices", h.CreateNotice)
	admin.PUT("/notices/:id", h.UpdateNotice)
	admin.DELETE("/notices/:id", h.DeleteNotice)

	session.GET("/contributions/summary", h.ContributionSummaries)
	session.GET("/reports/members", h.ReportMembers)
	session.GET("/reports/dues", h.ReportDues)
	session.GET("/reports/statement", h.ReportStatement)
	session.GET("/reports/summary", h.ReportSummary)
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		code = "UNAUTHORIZED"
	case errors.Is(err, service.ErrUsernameTaken):
		status = http.StatusConflict
		code = "CONFLICT"
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		code = "NOT_FOUND"
	case errors.Is(err, service.ErrNegativeAmount), errors.Is(err, service.ErrInvalidDate):
		status = http.StatusBadRequest
		code = "VALIDATION_ERROR"
	}

	c.JSON(status, models.ErrorResponse{
		Status:  "error",
		Code:    code,
		Message: err.Error(),
	})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:  "error",
		Code:    "INVALID_REQUEST",
		Message: err.Error(),
	})
}

// Authentication handlers

func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ViewerAccess(c *gin.Context) {
	resp, err := h.svc.ViewerSession()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	resp, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Dashboard and sync handlers

func (h *Handler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Dashboard())
}

func (h *Handler) SyncStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.SyncStatus())
}

func (h *Handler) SyncNow(c *gin.Context) {
	if err := h.svc.SyncNow(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Synced"})
}

func (h *Handler) EnableGitHub(c *gin.Context) {
	var req models.GitHubSetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.svc.EnableRemote(c.Request.Context(), req.Token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "GitHub sync enabled"})
}

func (h *Handler) DisableGitHub(c *gin.Context) {
	h.svc.DisableRemote()
	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "GitHub sync disabled"})
}

func (h *Handler) ContributionSummaries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "summaries": h.svc.ContributionSummaries()})
}

// Report handlers

func (h *Handler) ReportMembers(c *gin.Context) {
	h.sendReport(c, "সদস্য_তালিকা.xlsx", reports.MemberRoster)
}

func (h *Handler) ReportDues(c *gin.Context) {
	h.sendReport(c, "বকেয়া_চাঁদা.xlsx", reports.OverdueDues)
}

func (h *Handler) ReportStatement(c *gin.Context) {
	h.sendReport(c, "সম্পূর্ণ_হিসাব.xlsx", reports.FullStatement)
}

func (h *Handler) ReportSummary(c *gin.Context) {
	h.sendReport(c, "চাঁদা_সারাংশ.xlsx", reports.DuesSummary)
}

func (h *Handler) sendReport(c *gin.Context, filename string, generate func(*models.Database) (*excelize.File, error)) {
	f, err := generate(h.svc.Snapshot())
	if err != nil {
		respondError(c, err)
		return
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))
	c.Data(http.StatusOK, reports.ContentType, buf.Bytes())
}
