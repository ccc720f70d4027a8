package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	db           *gorm.DB
	coordinator  *appointment.Coordinator
	availability *appointment.GetAvailability
	windows      domain.WindowProvider
	clock        clock.Clock
}

func NewPublicHandler(
	db *gorm.DB,
	coordinator *appointment.Coordinator,
	availability *appointment.GetAvailability,
	windows domain.WindowProvider,
	clk clock.Clock,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		coordinator:  coordinator,
		availability: availability,
		windows:      windows,
		clock:        clk,
	}
}

// ======================================================
// DTOs
// ======================================================

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ProductID   uint   `json:"product_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD (UTC)
	Time        string `json:"time" binding:"required"` // HH:mm (UTC)
	Notes       string `json:"notes"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *PublicHandler) shopBySlug(c *gin.Context) (*models.Barbershop, bool) {
	slug := c.Param("slug")

	var shop models.Barbershop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return nil, false
	}
	return &shop, true
}

// A superfície pública só expõe a agenda do dono. Barbearias com mais
// de um barbeiro usam o painel autenticado.
func (h *PublicHandler) ownerOf(c *gin.Context, shopID uint) (*models.User, bool) {
	var barber models.User
	if err := h.db.
		Where("barbershop_id = ? AND role = ?", shopID, "owner").
		First(&barber).Error; err != nil {

		httperr.BadRequest(c, "barber_not_found", "Barbeiro não encontrado.")
		return nil, false
	}
	return &barber, true
}

// withinWorkingWindows verifica se [start, end) cabe inteiro em alguma
// janela de atendimento do dia. Janelas já vêm com o almoço descontado.
func (h *PublicHandler) withinWorkingWindows(
	c *gin.Context,
	barberID uint,
	start, end time.Time,
) (bool, error) {

	windows, err := h.windows.GetWorkingWindows(c.Request.Context(), barberID, start)
	if err != nil {
		return false, err
	}

	for _, w := range windows {
		if !start.Before(w.Start) && !end.After(w.End) {
			return true, nil
		}
	}
	return false, nil
}

// ======================================================
// PRODUCTS
// ======================================================

func (h *PublicHandler) ListProducts(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("barbershop_id = ? AND active = true", shop.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var products []models.BarberProduct
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "Erro ao listar produtos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": shop,
		"products":   products,
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

// AvailabilityForClient devolve os slots livres por dia num intervalo.
// Sem date_to a consulta cobre um único dia.
func (h *PublicHandler) AvailabilityForClient(c *gin.Context) {
	dateFromStr := c.Query("date_from")
	dateToStr := c.Query("date_to")
	productIDStr := c.Query("product_id")

	if dateFromStr == "" || productIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}
	if dateToStr == "" {
		dateToStr = dateFromStr
	}

	productID, err := strconv.ParseUint(productIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_product_id", "Serviço inválido.")
		return
	}

	dateFrom, err := time.Parse("2006-01-02", dateFromStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	dateTo, err := time.Parse("2006-01-02", dateToStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	barber, ok := h.ownerOf(c, shop.ID)
	if !ok {
		return
	}

	days, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BarbershopID: shop.ID,
			BarberID:     barber.ID,
			ProductID:    uint(productID),
			RangeStart:   dateFrom,
			RangeEnd:     dateTo,
		},
	)

	if err != nil {
		if domain.IsValidation(err, "product_not_found") {
			httperr.BadRequest(c, "product_not_found", "Serviço inválido.")
			return
		}

		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date_from": dateFromStr,
		"date_to":   dateToStr,
		"days":      days,
	})
}

// ======================================================
// CREATE APPOINTMENT (PÚBLICO)
// ======================================================

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	barber, ok := h.ownerOf(c, shop.ID)
	if !ok {
		return
	}

	start, err := parseStartUTC(req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	// Antecedência mínima só vale para o fluxo público; no painel o
	// barbeiro pode encaixar alguém para daqui a cinco minutos.
	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}
	if start.Before(h.clock.Now().Add(time.Duration(minAdvance) * time.Minute)) {
		httperr.BadRequest(c, "too_soon", "Horário inválido.")
		return
	}

	var product models.BarberProduct
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", req.ProductID, shop.ID).
		First(&product).Error; err != nil {
		httperr.BadRequest(c, "product_not_found", "Serviço não encontrado.")
		return
	}

	end := start.Add(time.Duration(product.DurationMin) * time.Minute)

	within, err := h.withinWorkingWindows(c, barber.ID, start, end)
	if err != nil {
		httperr.Internal(c, "working_hours_error", "Erro ao validar horário.")
		return
	}
	if !within {
		httperr.BadRequest(c, "outside_working_hours", "Fora do horário de atendimento.")
		return
	}

	ap, err := h.coordinator.Create(c.Request.Context(), appointment.CreateInput{
		BarbershopID: shop.ID,
		BarberID:     barber.ID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ProductID:    req.ProductID,
		StartTime:    start,
		Notes:        req.Notes,
	})

	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}
