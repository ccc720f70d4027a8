package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	coordinator *appointment.Coordinator
	lists       *appointment.ListAppointments
	store       domain.Store
}

func NewAppointmentHandler(
	coordinator *appointment.Coordinator,
	lists *appointment.ListAppointments,
	store domain.Store,
) *AppointmentHandler {
	return &AppointmentHandler{
		coordinator: coordinator,
		lists:       lists,
		store:       store,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ProductID   uint   `json:"product_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD (UTC)
	Time        string `json:"time" binding:"required"` // HH:mm (UTC)
	DurationMin int    `json:"duration_min"`
	Notes       string `json:"notes"`
}

// ======================================================
// HELPERS
// ======================================================

// Todas as datas da API são UTC; o front converte para exibição.
func parseStartUTC(dateStr, timeStr string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04", dateStr+" "+timeStr)
}

// mapAppointmentError traduz erros do domínio para HTTP. Conflitos de
// horário e transições inválidas são 409; o resto segue o padrão.
func mapAppointmentError(c *gin.Context, err error) {
	var vErr domain.ValidationError
	var dbErr domain.DoubleBookingError
	var trErr domain.InvalidTransitionError
	var nsErr domain.NotStartedError

	switch {
	case errors.Is(err, domain.ErrAppointmentNotFound):
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")

	case errors.As(err, &dbErr):
		httperr.Conflict(c, "time_conflict", "Conflito de horário.")

	case errors.As(err, &trErr):
		httperr.Conflict(c, "invalid_transition", "Transição de status inválida.")

	case errors.As(err, &nsErr):
		httperr.Conflict(c, "appointment_not_started", "Agendamento ainda não começou.")

	case errors.As(err, &vErr):
		httperr.BadRequest(c, vErr.Code, "Dados inválidos.")

	default:
		httperr.Internal(c, "appointment_operation_failed", "Erro ao processar agendamento.")
	}
}

// ======================================================
// CREATE (PAINEL)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseStartUTC(req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	ap, err := h.coordinator.Create(c.Request.Context(), appointment.CreateInput{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ProductID:    req.ProductID,
		StartTime:    start,
		DurationMin:  req.DurationMin,
		Notes:        req.Notes,
	})

	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(201, ap)
}

// ======================================================
// TRANSIÇÕES DE STATUS
// ======================================================

// owns garante que o agendamento pertence ao barbeiro autenticado antes
// de qualquer mutação. Fora do tenant é indistinguível de inexistente.
func (h *AppointmentHandler) owns(c *gin.Context, id string) bool {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	ap, err := h.store.Get(c.Request.Context(), id)
	if err != nil || ap.BarberID != barberID {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return false
	}
	return true
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id := c.Param("id")
	if !h.owns(c, id) {
		return
	}

	ap, err := h.coordinator.Confirm(c.Request.Context(), id)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if !h.owns(c, id) {
		return
	}

	ap, err := h.coordinator.Cancel(c.Request.Context(), id)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id := c.Param("id")
	if !h.owns(c, id) {
		return
	}

	ap, err := h.coordinator.Complete(c.Request.Context(), id)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LISTAGENS
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	items, err := h.lists.ByDate(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	items, err := h.lists.ByMonth(c.Request.Context(), barberID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"appointments": items,
	})
}
