package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/httpresp"
	"github.com/BruksfildServices01/barber-admin/internal/middleware"
	"github.com/BruksfildServices01/barber-admin/internal/timezone"
	"github.com/BruksfildServices01/barber-admin/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentUseCases struct {
	Availability *appointment.GetAvailability
	Create       *appointment.CreateAppointment
	Reschedule   *appointment.RescheduleAppointment
	Attendance   *appointment.MarkAttendance
	Lifecycle    *appointment.Lifecycle
	Active       *appointment.ListActive
	List         *appointment.ListAppointments
}

type AppointmentHandler struct {
	uc AppointmentUseCases
}

func NewAppointmentHandler(uc AppointmentUseCases) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

// BookingRequest só valida formato; campos obrigatórios são checados pelo
// use case, que devolve o código específico.
type BookingRequest struct {
	ProfessionalID uint   `json:"professional_id"`
	ClientName     string `json:"client_name"`
	ClientPhone    string `json:"client_phone" binding:"omitempty,phone"`
	ClientTaxID    string `json:"client_tax_id"`
	ServiceIDs     []uint `json:"service_ids"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Notes          string `json:"notes"`
}

func (r BookingRequest) input(barbershopID uint, userID *uint) appointment.BookingInput {
	return appointment.BookingInput{
		BarbershopID:   barbershopID,
		UserID:         userID,
		ProfessionalID: r.ProfessionalID,
		ClientName:     r.ClientName,
		ClientPhone:    r.ClientPhone,
		ClientTaxID:    r.ClientTaxID,
		ServiceIDs:     r.ServiceIDs,
		Date:           r.Date,
		Time:           r.Time,
		Notes:          r.Notes,
	}
}

type AttendanceRequest struct {
	Confirmed bool `json:"confirmed"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	in, ok := availabilityInput(c, middleware.BarbershopID(c))
	if !ok {
		return
	}
	in.ExcludeAppointmentID = c.Query("exclude_id")

	slots, err := h.uc.Availability.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, err, "availability_failed")
		return
	}

	httpresp.OK(c, gin.H{
		"date":  c.Query("date"),
		"slots": slots,
	})
}

// availabilityInput lê professional_id, service_ids (1,2,3) e date da query.
func availabilityInput(c *gin.Context, barbershopID uint) (domain.AvailabilityInput, bool) {
	profID, err := strconv.ParseUint(c.Query("professional_id"), 10, 64)
	if err != nil || profID == 0 {
		httperr.BadRequest(c, "professional_not_found", "Profissional inválido.")
		return domain.AvailabilityInput{}, false
	}

	date, err := time.Parse(timezone.DateLayout, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data inválida.")
		return domain.AvailabilityInput{}, false
	}

	ids, ok := parseIDList(c.Query("service_ids"))
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Serviços inválidos.")
		return domain.AvailabilityInput{}, false
	}

	return domain.AvailabilityInput{
		BarbershopID:   barbershopID,
		ProfessionalID: uint(profID),
		ServiceIDs:     ids,
		Date:           date,
	}, true
}

func parseIDList(raw string) ([]uint, bool) {
	ids := []uint{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, false
		}
		ids = append(ids, uint(id))
	}
	return ids, true
}

// ======================================================
// CREATE / RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.uc.Create.Execute(
		c.Request.Context(),
		req.input(middleware.BarbershopID(c), middleware.UserID(c)),
	)
	if err != nil {
		writeError(c, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.uc.Reschedule.Execute(
		c.Request.Context(),
		appointment.RescheduleInput{
			BookingInput:  req.input(middleware.BarbershopID(c), middleware.UserID(c)),
			AppointmentID: c.Param("id"),
		},
	)
	if err != nil {
		writeError(c, err, "failed_to_reschedule_appointment")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// ATTENDANCE
// ======================================================

func (h *AppointmentHandler) Attendance(c *gin.Context) {
	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.uc.Attendance.Execute(
		c.Request.Context(),
		middleware.BarbershopID(c),
		middleware.UserID(c),
		c.Param("id"),
		req.Confirmed,
	)
	if err != nil {
		writeError(c, err, "failed_to_update_attendance")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CONFIRM / CANCEL
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	res, err := h.uc.Lifecycle.Confirm(
		c.Request.Context(),
		middleware.BarbershopID(c),
		middleware.UserID(c),
		c.Param("id"),
	)
	if err != nil {
		writeError(c, err, "failed_to_confirm_appointment")
		return
	}

	httpresp.OK(c, res)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req CancelRequest
	// corpo opcional
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
			return
		}
	}

	res, err := h.uc.Lifecycle.Cancel(
		c.Request.Context(),
		middleware.BarbershopID(c),
		middleware.UserID(c),
		c.Param("id"),
		strings.TrimSpace(req.Reason),
	)
	if err != nil {
		writeError(c, err, "failed_to_cancel_appointment")
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// LIST
// ======================================================

// ListActive lê do espelho em memória; date é opcional.
func (h *AppointmentHandler) ListActive(c *gin.Context) {
	date := c.Query("date")
	if date != "" {
		if _, err := time.Parse(timezone.DateLayout, date); err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Data inválida.")
			return
		}
	}

	list, err := h.uc.Active.Execute(c.Request.Context(), middleware.BarbershopID(c), date)
	if err != nil {
		writeError(c, err, "failed_to_list_appointments")
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	list, err := h.uc.List.ByDate(c.Request.Context(), middleware.BarbershopID(c), date)
	if err != nil {
		writeError(c, err, "failed_to_list_appointments")
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	list, err := h.uc.List.ByMonth(c.Request.Context(), middleware.BarbershopID(c), year, month)
	if err != nil {
		writeError(c, err, "failed_to_list_appointments")
		return
	}

	httpresp.List(c, list)
}
