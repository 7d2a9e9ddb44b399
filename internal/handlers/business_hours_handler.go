package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/httpresp"
	"github.com/BruksfildServices01/barber-admin/internal/middleware"
	"github.com/BruksfildServices01/barber-admin/internal/models"
	"github.com/BruksfildServices01/barber-admin/internal/timezone"
)

type BusinessHoursHandler struct {
	db *gorm.DB
}

func NewBusinessHoursHandler(db *gorm.DB) *BusinessHoursHandler {
	return &BusinessHoursHandler{db: db}
}

type BusinessDayConfig struct {
	Weekday        *int   `json:"weekday" binding:"required,min=0,max=6"`
	Active         bool   `json:"active"`
	MorningStart   string `json:"morning_start" binding:"omitempty,hhmm"`
	MorningEnd     string `json:"morning_end" binding:"omitempty,hhmm"`
	AfternoonStart string `json:"afternoon_start" binding:"omitempty,hhmm"`
	AfternoonEnd   string `json:"afternoon_end" binding:"omitempty,hhmm"`
}

type BusinessHoursUpdateRequest struct {
	Days []BusinessDayConfig `json:"days" binding:"required,dive"`
}

// validPeriod aceita período vazio (desligado) ou início antes do fim.
func validPeriod(start, end string) bool {
	if start == "" && end == "" {
		return true
	}
	s, ok1 := timezone.ParseHM(start)
	e, ok2 := timezone.ParseHM(end)
	return ok1 && ok2 && s < e
}

func (h *BusinessHoursHandler) Get(c *gin.Context) {
	var hours []models.BusinessHours
	if err := h.db.
		Where("barbershop_id = ?", middleware.BarbershopID(c)).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_business_hours", "Erro ao buscar horários.")
		return
	}

	httpresp.List(c, hours)
}

// Update grava os dias enviados; dias ausentes ficam como estão.
func (h *BusinessHoursHandler) Update(c *gin.Context) {
	barbershopID := middleware.BarbershopID(c)

	var req BusinessHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	rows := make([]models.BusinessHours, 0, len(req.Days))
	for _, d := range req.Days {
		if !validPeriod(d.MorningStart, d.MorningEnd) || !validPeriod(d.AfternoonStart, d.AfternoonEnd) {
			httperr.BadRequest(c, "invalid_hours", "Horário de início deve ser antes do fim.")
			return
		}
		rows = append(rows, models.BusinessHours{
			BarbershopID:   barbershopID,
			Weekday:        *d.Weekday,
			Active:         d.Active,
			MorningStart:   d.MorningStart,
			MorningEnd:     d.MorningEnd,
			AfternoonStart: d.AfternoonStart,
			AfternoonEnd:   d.AfternoonEnd,
		})
	}

	if len(rows) > 0 {
		if err := h.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "barbershop_id"}, {Name: "weekday"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"active", "morning_start", "morning_end",
				"afternoon_start", "afternoon_end", "updated_at",
			}),
		}).Create(&rows).Error; err != nil {

			httperr.Internal(c, "failed_to_save_business_hours", "Erro ao salvar horários.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
