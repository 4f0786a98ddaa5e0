package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/despacho-pro/internal/application/dispatch"
	"github.com/tu-usuario/despacho-pro/internal/application/dto"
	"github.com/tu-usuario/despacho-pro/internal/domain/repository"
	"github.com/tu-usuario/despacho-pro/internal/infrastructure/pdf"
)

// DispatchHandler maneja las peticiones HTTP del libro de despachos (protegido).
type DispatchHandler struct {
	uc  *dispatch.UseCase
	pdf *pdf.DeliveryNoteGenerator
}

// NewDispatchHandler construye el handler.
func NewDispatchHandler(uc *dispatch.UseCase, pdfGen *pdf.DeliveryNoteGenerator) *DispatchHandler {
	return &DispatchHandler{uc: uc, pdf: pdfGen}
}

// Create godoc
// @Summary      Registrar un despacho contra una orden de venta
// @Description  Reserva stock y registra el evento en una sola transacción. Con
//
//	cobertura total la orden pasa a Dispatch. Los 409 de cantidad
//	incluyen remaining/available para reintentar corregido.
//
// @Tags         dispatches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDispatchRequest  true  "sales_order_id, product_id, dispatch_qty"
// @Success      201   {object}  dto.CreateDispatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/dispatches [post]
func (h *DispatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Create(c.Context(), Identity(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateDispatchResponse{
		Message:      "despacho registrado",
		Data:         dto.ToDispatchResponse(result.Event),
		UpdatedStock: result.UpdatedStock,
	})
}

// Update godoc
// @Summary      Ajustar un despacho existente
// @Description  Re-aplica al stock el delta contra la cantidad anterior. Si la
//
//	cantidad cambió, despacho y orden vuelven a "Dispatch Pending".
//
// @Tags         dispatches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del despacho"
// @Param        body  body  dto.UpdateDispatchRequest  true  "dispatch_qty y campos editables"
// @Success      200   {object}  dto.UpdateDispatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/dispatches/{id} [put]
func (h *DispatchHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Update(c.Context(), Identity(c), c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.UpdateDispatchResponse{
		Message:      "despacho actualizado",
		Data:         dto.ToDispatchResponse(result.Event),
		UpdatedStock: result.UpdatedStock,
	})
}

// Delete godoc
// @Summary      Eliminar un despacho
// @Description  Restituye simétricamente el stock reservado; si la orden estaba
//
//	cubierta por completo regresa a "Dispatch Pending".
//
// @Tags         dispatches
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del despacho"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dispatches/{id} [delete]
func (h *DispatchHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), Identity(c), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "despacho eliminado, stock restituido"})
}

// List godoc
// @Summary      Listar despachos del tenant
// @Tags         dispatches
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página (default 1)"
// @Param        limit   query  int     false  "Tamaño (default 10)"
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        search  query  string  false  "Buscar por comercio, artículo u orden"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dispatches [get]
func (h *DispatchHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	filter := repository.DispatchListFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Limit:  page.Limit,
		Offset: page.Offset(),
	}
	events, total, err := h.uc.List(c.Context(), Identity(c), filter)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.DispatchResponse, 0, len(events))
	for _, e := range events {
		out = append(out, dto.ToDispatchResponse(e))
	}
	return c.JSON(fiber.Map{
		"data": out,
		"pagination": dto.PageResponse{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      total,
			TotalPages: (total + page.Limit - 1) / page.Limit,
		},
	})
}

// GetByID godoc
// @Summary      Obtener un despacho
// @Tags         dispatches
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del despacho"
// @Success      200  {object}  dto.DispatchResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dispatches/{id} [get]
func (h *DispatchHandler) GetByID(c *fiber.Ctx) error {
	event, err := h.uc.GetByID(c.Context(), Identity(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToDispatchResponse(event))
}

// Stats godoc
// @Summary      Conteos de despachos por estado
// @Description  Lectura eventual: puede servirse desde cache (TTL corto).
// @Tags         dispatches
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  repository.DispatchStats
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dispatches/stats [get]
func (h *DispatchHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.Context(), Identity(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(stats)
}

// QtyByOrder godoc
// @Summary      Despachos y total despachado de una orden
// @Tags         dispatches
// @Security     Bearer
// @Produce      json
// @Param        salesOrderId  path  string  true  "ID de la orden de venta"
// @Success      200  {object}  dto.OrderDispatchQtyResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dispatches/order/{salesOrderId}/qty [get]
func (h *DispatchHandler) QtyByOrder(c *fiber.Ctx) error {
	events, total, err := h.uc.QtyByOrder(c.Context(), Identity(c), c.Params("salesOrderId"))
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.DispatchResponse, 0, len(events))
	for _, e := range events {
		out = append(out, dto.ToDispatchResponse(e))
	}
	return c.JSON(dto.OrderDispatchQtyResponse{
		SalesOrderID:    c.Params("salesOrderId"),
		TotalDispatched: total,
		Data:            out,
	})
}

// DeliveryNote godoc
// @Summary      Descargar la remisión de un despacho en PDF
// @Tags         dispatches
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del despacho"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dispatches/{id}/delivery-note [get]
func (h *DispatchHandler) DeliveryNote(c *fiber.Ctx) error {
	data, err := h.uc.DeliveryNote(c.Context(), Identity(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	bytes, err := h.pdf.GenerateDeliveryNote(data.Event, data.Order, data.Product, data.TotalDispatched)
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="remision-%s.pdf"`, data.Event.ID))
	return c.Send(bytes)
}
