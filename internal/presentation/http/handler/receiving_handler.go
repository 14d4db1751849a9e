package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/warehouse-api/internal/application/service"
	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/sangkips/warehouse-api/internal/domain/enum"
	"github.com/sangkips/warehouse-api/internal/presentation/http/dto/request"
	"github.com/sangkips/warehouse-api/internal/presentation/http/dto/response"
	"github.com/sangkips/warehouse-api/pkg/apperror"
	"go.uber.org/zap"
)

// ReceivingHandler exposes the receiving workflow of the signed-in operator
type ReceivingHandler struct {
	registry      *service.WorkflowRegistry
	exportService *service.ExportService
	suppliers     []string
	logger        *zap.Logger
}

// NewReceivingHandler creates a new receiving handler
func NewReceivingHandler(registry *service.WorkflowRegistry, exportService *service.ExportService, suppliers []string, logger *zap.Logger) *ReceivingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceivingHandler{
		registry:      registry,
		exportService: exportService,
		suppliers:     suppliers,
		logger:        logger,
	}
}

// Catalog lists the choices offered by the add-item dialog
type Catalog struct {
	Categories []enum.ItemCategory `json:"categories"`
	Units      []enum.UnitType     `json:"units"`
	Suppliers  []string            `json:"suppliers"`
}

func (h *ReceivingHandler) workflow(c *gin.Context) (*service.ReceivingWorkflow, bool) {
	user, ok := GetUser(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return nil, false
	}
	return h.registry.For(user), true
}

// respond sends the state, and keeps it in the body of error responses so the banner reaches the client
func respond(c *gin.Context, message string, state service.WorkflowState, err error) {
	if err != nil {
		response.ErrorWithData(c, err, state)
		return
	}
	response.OK(c, message, state)
}

// Load refreshes the list from the store
// @Summary Load receiving transactions
// @Tags receiving
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /receiving [get]
func (h *ReceivingHandler) Load(c *gin.Context) {
	wf, ok := h.workflow(c)
	if !ok {
		return
	}
	respond(c, "Receiving transactions loaded", wf.Load(c.Request.Context()), nil)
}

// State returns the current workflow state without reloading
func (h *ReceivingHandler) State(c *gin.Context) {
	wf, ok := h.workflow(c)
	if !ok {
		return
	}
	respond(c, "Receiving state retrieved", wf.State(), nil)
}

// Catalog returns categories, units and known suppliers
func (h *ReceivingHandler) Catalog(c *gin.Context) {
	suppliers := h.suppliers
	if suppliers == nil {
		suppliers = []string{}
	}
	response.OK(c, "Catalog retrieved", Catalog{
		Categories: enum.ItemCategories,
		Units:      enum.ReceivingUnits,
		Suppliers:  suppliers,
	})
}

// OpenNew opens the form on a new transaction
func (h *ReceivingHandler) OpenNew(c *gin.Context) {
	wf, ok := h.workflow(c)
	if !ok {
		return
	}
	state, err := wf.OpenNew()
	respond(c, "Receiving form opened", state, err)
}

// OpenEdit opens the form on a listed transaction
func (h *ReceivingHandler) OpenEdit(c *gin.Context) {
	wf, ok := h.workflow(c)
	if !ok {
		return
	}
	state, err := wf.OpenEdit(c.Param("id"))
	respond(c, "Receiving form opened", state, err)
}

// UpdateDraft edits the header of the open form
func (h *ReceivingHandler) UpdateDraft(c *gin.Context) {
	var req request.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	wf, ok := h.workflow(c)
	if !ok {
		return
	}
	state, err := wf.UpdateHeader(service.HeaderUpdate{
		Supplier: req.Supplier,
		DateTime: req.DateTime,
		Remarks:  req.Remarks,
	})
	respond(c, "Draft updated", state, err)
}

// AddItem appends a line from the add-item dialog
func (h *ReceivingHandler) AddItem(c *gin.Context) {
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	wf, ok := h.workflow(c)
	if !ok {
		return
	}
	state, err := wf.AddItem(service.NewLineItem{
		Supplier:       req.Supplier,
		Category:       req.Category,
		SystemCode:     req.SystemCode,
		SupplierCode:   req.SupplierCode,
		ItemName:       req.ItemName,
		ShellQuantity:  req.ShellQuantity,
		BottleQuantity: req.BottleQuantity,
	})
	respond(c, "Item added", state, err)
}

// UpdateItem sets one field of a line
func (h *ReceivingHandler) UpdateItem(c *gin.Context) {
	index, err := intParam(c, "index")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	wf, ok := h.workflow(c)
	if !ok {
		return
	}
	state, err := wf.UpdateItem(index, req.Field, req.Value)
	respond(c, "Item updated", state, err)
}

// RemoveItem deletes a line
func (h *ReceivingHandler) RemoveItem(c *gin.Context) {
	index, err := intParam(c, "index")
	if err != nil {
		response.Error(c, err)
		return
	}
	wf, ok := h.workflow(c)
	if !ok {
		return
	}
	state, err := wf.RemoveItem(index)
	respond(c, "Item removed", state, err)
}

// AddReturnItem appends a returned line
func (h *ReceivingHandler) AddReturnItem(c *gin.Context) {
	var req request.AddReturnItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	wf, ok := h.workflow(c)
	if !ok {
		return
	}
	state, err := wf.AddReturnItem(entity.LineItem{
		SystemCode:    req.SystemCode,
		SupplierCode:  req.SupplierCode,
		ItemType:      req.ItemType,
		ItemName:      req.ItemName,
		SupplierPrice: req.SupplierPrice,
		Quantity:      req.Quantity,
	})
	respond(c, "Return item added", state, err)
}

// RemoveReturnItem deletes a returned line
func (h *ReceivingHandler) RemoveReturnItem(c *gin.Context) {
	index, err := intParam(c, "index")
	if err != nil {
		response.Error(c, err)
		return
	}
	wf, ok := h.workflow(c)
	if !ok {
		return
	}
	state, err := wf.RemoveReturnItem(index)
	respond(c, "Return item removed", state, err)
}

// Submit saves the open form
// @Summary Submit the receiving form
// @Tags receiving
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /receiving/draft/submit [post]
func (h *ReceivingHandler) Submit(c *gin.Context) {
	wf, ok := h.workflow(c)
	if !ok {
		return
	}
	state, err := wf.Submit(c.Request.Context())
	respond(c, "Receiving transaction saved", state, err)
}

// Cancel closes the form without saving
func (h *ReceivingHandler) Cancel(c *gin.Context) {
	wf, ok := h.workflow(c)
	if !ok {
		return
	}
	respond(c, "Receiving form closed", wf.Cancel(), nil)
}

// Delete removes a listed transaction. The query parameter confirm=true is the operator's confirmation.
// @Summary Delete a receiving transaction
// @Tags receiving
// @Security BearerAuth
// @Param id path string true "Transaction id"
// @Param confirm query bool true "Operator confirmed the deletion"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /receiving/{id} [delete]
func (h *ReceivingHandler) Delete(c *gin.Context) {
	wf, ok := h.workflow(c)
	if !ok {
		return
	}
	confirmed := c.Query("confirm") == "true"
	state, err := wf.Delete(c.Request.Context(), c.Param("id"), func(entity.ReceivingTransaction) bool {
		return confirmed
	})
	respond(c, "Receiving transaction deleted", state, err)
}

// DismissBanner hides the current banner
func (h *ReceivingHandler) DismissBanner(c *gin.Context) {
	wf, ok := h.workflow(c)
	if !ok {
		return
	}
	respond(c, "Banner dismissed", wf.DismissBanner(), nil)
}

// Export downloads the listed transactions as an XLSX workbook
func (h *ReceivingHandler) Export(c *gin.Context) {
	wf, ok := h.workflow(c)
	if !ok {
		return
	}

	f, filename, err := h.exportService.ExportReceiving(wf.Transactions(), time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	response.Attachment(c, filename, response.XLSXContentType)

	if err := f.Write(c.Writer); err != nil {
		h.logger.Error("write receiving export", zap.Error(err))
	}
}
