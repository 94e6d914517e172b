package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tkmani91/khs-server/internal/models"
)

// Member handlers

func (h *Handler) ListMembers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "members": h.svc.ListMembers(c.Query("q"))})
}

func (h *Handler) CreateMember(c *gin.Context) {
	var req models.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	m, err := h.svc.CreateMember(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "member": m})
}

func (h *Handler) UpdateMember(c *gin.Context) {
	var req models.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	m, err := h.svc.UpdateMember(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "member": m})
}

func (h *Handler) DeleteMember(c *gin.Context) {
	if err := h.svc.DeleteMember(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Member deleted"})
}

// Puja handlers

func (h *Handler) ListPujas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "pujas": h.svc.ListPujas(c.Query("q"))})
}

func (h *Handler) CreatePuja(c *gin.Context) {
	var req models.PujaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	p, err := h.svc.CreatePuja(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "puja": p})
}

func (h *Handler) UpdatePuja(c *gin.Context) {
	var req models.PujaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	p, err := h.svc.UpdatePuja(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "puja": p})
}

func (h *Handler) DeletePuja(c *gin.Context) {
	if err := h.svc.DeletePuja(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Puja deleted"})
}

// Contribution handlers

func (h *Handler) ListContributions(c *gin.Context) {
	contributions := h.svc.ListContributions(c.Query("pujaId"), c.Query("memberId"))
	c.JSON(http.StatusOK, gin.H{"status": "success", "contributions": contributions})
}

func (h *Handler) CreateContribution(c *gin.Context) {
	var req models.ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	contrib, err := h.svc.CreateContribution(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "contribution": contrib})
}

func (h *Handler) UpdateContribution(c *gin.Context) {
	var req models.ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	contrib, err := h.svc.UpdateContribution(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "contribution": contrib})
}

func (h *Handler) DeleteContribution(c *gin.Context) {
	if err := h.svc.DeleteContribution(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Contribution deleted"})
}

// Other income handlers

func (h *Handler) ListIncome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "income": h.svc.ListIncome(c.Query("q"))})
}

func (h *Handler) CreateIncome(c *gin.Context) {
	var req models.IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	in, err := h.svc.CreateIncome(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "income": in})
}

func (h *Handler) UpdateIncome(c *gin.Context) {
	var req models.IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	in, err := h.svc.UpdateIncome(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "income": in})
}

func (h *Handler) DeleteIncome(c *gin.Context) {
	if err := h.svc.DeleteIncome(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Income deleted"})
}

// Expense handlers

func (h *Handler) ListExpenses(c *gin.Context) {
	expenses := h.svc.ListExpenses(c.Query("q"), c.Query("pujaId"))
	c.JSON(http.StatusOK, gin.H{"status": "success", "expenses": expenses})
}

func (h *Handler) CreateExpense(c *gin.Context) {
	var req models.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	e, err := h.svc.CreateExpense(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "expense": e})
}

func (h *Handler) UpdateExpense(c *gin.Context) {
	var req models.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	e, err := h.svc.UpdateExpense(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "expense": e})
}

func (h *Handler) DeleteExpense(c *gin.Context) {
	if err := h.svc.DeleteExpense(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Expense deleted"})
}

// Notice handlers

func (h *Handler) ListNotices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "notices": h.svc.ListNotices(c.Query("q"))})
}

func (h *Handler) CreateNotice(c *gin.Context) {
	var req models.NoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	n, err := h.svc.CreateNotice(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "notice": n})
}

func (h *Handler) UpdateNotice(c *gin.Context) {
	var req models.NoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	n, err := h.svc.UpdateNotice(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "notice": n})
}

func (h *Handler) DeleteNotice(c *gin.Context) {
	if err := h.svc.DeleteNotice(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Notice deleted"})
}
