package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"proforma/internal/model"
	"proforma/internal/service"
	"proforma/pkg/pagination"
	"proforma/pkg/response"

	"github.com/gin-gonic/gin"
)

// InvoicePayload is the editing form's working copy of an invoice: client
// details, the selected line items and the adjustment knobs. Line totals sent
// by the client are ignored and recomputed server-side.
type InvoicePayload struct {
	ClientInfo  model.ClientInfo  `json:"client_info"`
	LineItems   []model.LineItem  `json:"line_items"`
	Adjustments model.Adjustments `json:"adjustments"`
}

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	settings       *service.SettingsService
	undo           *service.UndoManager
	undoWindow     time.Duration
}

func NewInvoiceHandler(invoiceService service.InvoiceService, settings *service.SettingsService, undo *service.UndoManager, undoWindow time.Duration) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		settings:       settings,
		undo:           undo,
		undoWindow:     undoWindow,
	}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/api/invoices")
	{
		invoices.POST("", h.CreateInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.POST("/preview", h.PreviewTotals)
		invoices.POST("/undo", h.UndoDelete)
		invoices.GET("/export/csv", h.ExportCSV)
		invoices.GET("/:id", h.GetInvoice)
		invoices.GET("/:id/pdf", h.ExportPDF)
		invoices.PUT("/:id", h.UpdateInvoice)
		invoices.DELETE("/:id", h.DeleteInvoice)
	}

	router.GET("/api/accessories", h.ListAccessories)
}

// CreateInvoice validates and saves a new invoice
// @Summary      Create invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        payload  body      InvoicePayload  true  "Invoice payload"
// @Success      201      {object}  response.Response{data=model.InvoiceRecord}
// @Failure      422      {object}  response.Response
// @Router       /api/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req InvoicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	record, err := h.invoiceService.Create(req.ClientInfo, req.LineItems, req.Adjustments)
	if err != nil && !isPersistenceWarning(err) {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saveResponse(http.StatusCreated, record, err))
}

// ListInvoices returns the history projection: filter by client name, stable
// sort, then one page of the result.
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Param        search  query  string  false  "Case-insensitive client name filter"
// @Param        sort    query  string  false  "date-newest, date-oldest, client-asc, client-desc, total-asc, total-desc"
// @Param        page    query  int     false  "Page number (default 1)"
// @Param        limit   query  int     false  "Items per page (default 20)"
// @Success      200     {object}  response.Response
// @Router       /api/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	projected := service.ProjectHistory(h.invoiceService.List(), c.Query("search"), c.Query("sort"))

	params := pagination.Parse(c)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"invoices": pagination.Window(projected, params),
		"total":    len(projected),
		"page":     params.Page,
		"limit":    params.Limit,
	}))
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	record, err := h.invoiceService.Get(c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	var req InvoicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	record, err := h.invoiceService.Update(c.Param("id"), req.ClientInfo, req.LineItems, req.Adjustments)
	if err != nil && !isPersistenceWarning(err) {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, saveResponse(http.StatusOK, record, err))
}

// DeleteInvoice removes an invoice and opens the undo grace window.
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	record, err := h.invoiceService.Remove(c.Param("id"))
	if err != nil && !isPersistenceWarning(err) {
		writeServiceError(c, err)
		return
	}

	h.undo.Track(record)

	resp := saveResponse(http.StatusOK, gin.H{
		"deleted":        record,
		"undo_window_ms": h.undoWindow.Milliseconds(),
	}, err)
	c.JSON(http.StatusOK, resp)
}

// UndoDelete reverses the most recent deletion while its window is open.
// After expiry this is a no-op and the record stays gone; if the id is
// already back in the collection the undo is reported as a conflict rather
// than a re-insertion.
func (h *InvoiceHandler) UndoDelete(c *gin.Context) {
	record, restored, ok := h.undo.Undo()
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "no deletion to undo"))
		return
	}
	if !restored {
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, "invoice "+record.ID+" already exists"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

// PreviewTotals computes the live totals for an in-progress form without
// saving anything.
func (h *InvoiceHandler) PreviewTotals(c *gin.Context) {
	var req InvoicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	totals := h.invoiceService.Preview(req.LineItems, req.Adjustments)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, totals))
}

// ExportCSV streams the whole collection as a CSV download.
func (h *InvoiceHandler) ExportCSV(c *gin.Context) {
	data, err := service.GenerateCSV(h.invoiceService.List())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	filename := fmt.Sprintf("invoices-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ExportPDF streams one invoice as a PDF download.
func (h *InvoiceHandler) ExportPDF(c *gin.Context) {
	record, err := h.invoiceService.Get(c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	settings := h.settings.Get()
	data, err := service.GeneratePDF(record.ClientInfo, record.LineItems, record.Totals, settings.CompanyProfile, settings.DefaultTaxRates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="invoice-`+record.ID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// ListAccessories returns the priced accessory catalog for the add dialog.
func (h *InvoiceHandler) ListAccessories(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, model.AccessoryCatalog()))
}

// --- Shared error mapping ---

func isPersistenceWarning(err error) bool {
	var perr *service.PersistenceError
	return errors.As(err, &perr)
}

// saveResponse wraps a mutation result; a persistence failure rides along as
// a warning because the in-memory collection already holds the change.
func saveResponse(status int, data interface{}, err error) response.Response {
	if err != nil && isPersistenceWarning(err) {
		return response.SuccessWithWarning(status, data, err.Error())
	}
	return response.Success(status, data)
}

func writeServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, response.ValidationFailed(http.StatusUnprocessableEntity, verr.Fields))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
	}
}
