package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
)

// TransferHandler handles transfer HTTP requests
type TransferHandler struct {
	service TransferService
	logger  coreport.Logger
	minimum int64
}

// NewTransferHandler creates a new transfer handler. Amounts below minimum are rejected before the service.
func NewTransferHandler(service TransferService, logger coreport.Logger, minimum int64) *TransferHandler {
	return &TransferHandler{service: service, logger: logger, minimum: minimum}
}

// List handles GET /api/transfers. search filters by sender id prefix.
func (h *TransferHandler) List(c *gin.Context) {
	query, ok := pageQuery(c)
	if !ok {
		return
	}

	page, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginated("Transfers retrieved successfully", page))
}

func (h *TransferHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	transfer, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Transfer retrieved successfully", transfer))
}

func (h *TransferHandler) GetByUser(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	transfer, err := h.service.GetByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Transfer retrieved successfully", transfer))
}

func (h *TransferHandler) GetByUsers(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	transfers, err := h.service.GetByUsers(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Transfers retrieved successfully", transfers))
}

func (h *TransferHandler) Create(c *gin.Context) {
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if belowMinimum(c, "transfer_amount", req.TransferAmount, h.minimum) {
		return
	}

	transfer, err := h.service.Create(c.Request.Context(), req.TransferFrom, req.TransferTo, req.TransferAmount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewResponse("Transfer created successfully", transfer))
}

func (h *TransferHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if belowMinimum(c, "transfer_amount", req.TransferAmount, h.minimum) {
		return
	}

	transfer, err := h.service.Update(c.Request.Context(), id, req.TransferAmount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Transfer updated successfully", transfer))
}

// Delete handles DELETE /api/transfers/:id where :id is the sender whose latest transfer is removed
func (h *TransferHandler) Delete(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Transfer deleted successfully", nil))
}
