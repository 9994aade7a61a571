package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
)

// SaldoHandler handles balance HTTP requests
type SaldoHandler struct {
	service SaldoService
	logger  coreport.Logger
	floor   int64
}

// NewSaldoHandler creates a new saldo handler instance. floor is the lowest total_balance an update accepts.
func NewSaldoHandler(service SaldoService, logger coreport.Logger, floor int64) *SaldoHandler {
	return &SaldoHandler{service: service, logger: logger, floor: floor}
}

// List handles GET /api/saldos
func (h *SaldoHandler) List(c *gin.Context) {
	query, ok := pageQuery(c)
	if !ok {
		return
	}

	page, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginated("Saldos retrieved successfully", page))
}

// Get handles GET /api/saldos/:id
func (h *SaldoHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	saldo, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Saldo retrieved successfully", saldo))
}

// GetByUser handles GET /api/saldos/user/:id
func (h *SaldoHandler) GetByUser(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	saldo, err := h.service.GetByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Saldo retrieved successfully", saldo))
}

// GetByUsers handles GET /api/saldos/users/:id
func (h *SaldoHandler) GetByUsers(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	saldos, err := h.service.GetByUsers(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Saldos retrieved successfully", saldos))
}

// Create handles POST /api/saldos
func (h *SaldoHandler) Create(c *gin.Context) {
	var req dto.CreateSaldoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	saldo, err := h.service.Create(c.Request.Context(), req.UserID, req.TotalBalance)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewResponse("Saldo created successfully", saldo))
}

// Update handles PUT /api/saldos/:id through the floor-checked update
func (h *SaldoHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateSaldoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if belowMinimum(c, "total_balance", *req.TotalBalance, h.floor) {
		return
	}

	saldo, err := h.service.ApplyFloorUpdate(c.Request.Context(), id, req.WithdrawAmount, req.WithdrawTime)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Saldo updated successfully", saldo))
}

// Withdraw handles POST /api/saldos/withdraw
func (h *SaldoHandler) Withdraw(c *gin.Context) {
	var req dto.SaldoWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	saldo, err := h.service.Withdraw(c.Request.Context(), req.UserID, req.WithdrawAmount, req.WithdrawTime)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Saldo withdraw applied successfully", saldo))
}

// Delete handles DELETE /api/saldos/:id
func (h *SaldoHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Saldo deleted successfully", nil))
}
