package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/ArowuTest/lottery-ticket-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// TicketAdminService lists and deletes tickets
type TicketAdminService interface {
	ListTickets(ctx context.Context, page, limit int) (*models.TicketPage, error)
	DeleteTicket(ctx context.Context, ticketID string) error
}

// ArtifactRenderer regenerates ticket images
type ArtifactRenderer interface {
	Rerender(ctx context.Context, ticketID string) (*models.Ticket, error)
}

// TicketExporter writes tickets as CSV
type TicketExporter interface {
	ExportTickets(ctx context.Context, schemeID string, w io.Writer) error
}

// AdminTicketHandler serves the admin ticket endpoints
type AdminTicketHandler struct {
	tickets   TicketAdminService
	artifacts ArtifactRenderer
	exporter  TicketExporter
	errors    ErrorRenderer
}

// NewAdminTicketHandler creates a new AdminTicketHandler
func NewAdminTicketHandler(tickets TicketAdminService, artifacts ArtifactRenderer, exporter TicketExporter, errors ErrorRenderer) *AdminTicketHandler {
	return &AdminTicketHandler{
		tickets:   tickets,
		artifacts: artifacts,
		exporter:  exporter,
		errors:    errors,
	}
}

// ListTickets handles GET /api/admin/tickets
func (h *AdminTicketHandler) ListTickets(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.tickets.ListTickets(c.Request.Context(), page, limit)
	if err != nil {
		h.errors.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteTicket handles DELETE /api/admin/tickets/:ticketId
func (h *AdminTicketHandler) DeleteTicket(c *gin.Context) {
	if err := h.tickets.DeleteTicket(c.Request.Context(), c.Param("ticketId")); err != nil {
		h.errors.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket deleted successfully"})
}

// RerenderArtifact handles POST /api/admin/tickets/:ticketId/artifact
func (h *AdminTicketHandler) RerenderArtifact(c *gin.Context) {
	ticket, err := h.artifacts.Rerender(c.Request.Context(), c.Param("ticketId"))
	if err != nil {
		h.errors.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadLink": ticket.DownloadLink, "ticket": ticket})
}

// ExportTickets handles GET /api/admin/tickets/export?schemeId=
func (h *AdminTicketHandler) ExportTickets(c *gin.Context) {
	schemeID := c.DefaultQuery("schemeId", "all")

	var buf bytes.Buffer
	if err := h.exporter.ExportTickets(c.Request.Context(), schemeID, &buf); err != nil {
		h.errors.Render(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+services.ExportFilename(schemeID)+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
