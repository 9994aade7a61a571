package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
)

// WithdrawHandler handles withdraw HTTP requests
type WithdrawHandler struct {
	service WithdrawService
	logger  coreport.Logger
	minimum int64
}

// NewWithdrawHandler creates a new withdraw handler. Amounts below minimum are rejected before the service.
func NewWithdrawHandler(service WithdrawService, logger coreport.Logger, minimum int64) *WithdrawHandler {
	return &WithdrawHandler{service: service, logger: logger, minimum: minimum}
}

func (h *WithdrawHandler) List(c *gin.Context) {
	query, ok := pageQuery(c)
	if !ok {
		return
	}

	page, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginated("Withdraws retrieved successfully", page))
}

func (h *WithdrawHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	withdraw, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Withdraw retrieved successfully", withdraw))
}

func (h *WithdrawHandler) GetByUser(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	withdraw, err := h.service.GetByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Withdraw retrieved successfully", withdraw))
}

func (h *WithdrawHandler) GetByUsers(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	withdraws, err := h.service.GetByUsers(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Withdraws retrieved successfully", withdraws))
}

func (h *WithdrawHandler) Create(c *gin.Context) {
	var req dto.CreateWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if belowMinimum(c, "withdraw_amount", req.WithdrawAmount, h.minimum) {
		return
	}

	withdraw, err := h.service.Create(c.Request.Context(), req.UserID, req.WithdrawAmount, req.WithdrawTime)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewResponse("Withdraw created successfully", withdraw))
}

func (h *WithdrawHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if belowMinimum(c, "withdraw_amount", req.WithdrawAmount, h.minimum) {
		return
	}

	withdraw, err := h.service.Update(c.Request.Context(), id, req.WithdrawAmount, req.WithdrawTime)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Withdraw updated successfully", withdraw))
}

// Delete handles DELETE /api/withdraws/:id where :id is the user whose latest withdrawal is removed
func (h *WithdrawHandler) Delete(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Withdraw deleted successfully", nil))
}
