package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
)

// TopupHandler handles topup HTTP requests
type TopupHandler struct {
	service    TopupService
	logger     coreport.Logger
	newTopupNo func() string
}

// NewTopupHandler creates a new topup handler instance
func NewTopupHandler(service TopupService, logger coreport.Logger) *TopupHandler {
	return &TopupHandler{
		service:    service,
		logger:     logger,
		newTopupNo: func() string { return "TP-" + uuid.NewString() },
	}
}

// List handles GET /api/topups. search filters by topup_no prefix.
func (h *TopupHandler) List(c *gin.Context) {
	query, ok := pageQuery(c)
	if !ok {
		return
	}

	page, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginated("Topups retrieved successfully", page))
}

func (h *TopupHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	topup, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Topup retrieved successfully", topup))
}

func (h *TopupHandler) GetByUser(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	topup, err := h.service.GetByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Topup retrieved successfully", topup))
}

func (h *TopupHandler) GetByUsers(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	topups, err := h.service.GetByUsers(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Topups retrieved successfully", topups))
}

// Create handles POST /api/topups. A missing topup_no is generated.
func (h *TopupHandler) Create(c *gin.Context) {
	var req dto.CreateTopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.TopupNo == "" {
		req.TopupNo = h.newTopupNo()
	}

	topup, err := h.service.Create(c.Request.Context(), req.UserID, req.TopupNo, req.TopupAmount, req.TopupMethod)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewResponse("Topup created successfully", topup))
}

func (h *TopupHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateTopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	topup, err := h.service.Update(c.Request.Context(), id, req.TopupAmount, req.TopupMethod)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Topup updated successfully", topup))
}

// Delete handles DELETE /api/topups/:id where :id is the user whose latest topup is removed
func (h *TopupHandler) Delete(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Topup deleted successfully", nil))
}
