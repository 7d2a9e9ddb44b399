package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-admin/internal/audit"
	"github.com/BruksfildServices01/barber-admin/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/httpresp"
	"github.com/BruksfildServices01/barber-admin/internal/middleware"
	"github.com/BruksfildServices01/barber-admin/internal/models"
	"github.com/BruksfildServices01/barber-admin/internal/storage"
)

type ProfessionalHandler struct {
	db     *gorm.DB
	photos *storage.PhotoStore
	audit  *audit.Dispatcher
}

func NewProfessionalHandler(db *gorm.DB, photos *storage.PhotoStore, audit *audit.Dispatcher) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, photos: photos, audit: audit}
}

// --------- Requests ---------

type ProfessionalRequest struct {
	Name           *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Services       []string `json:"services"`
	MorningStart   *string  `json:"morning_start" binding:"omitempty,hhmm"`
	MorningEnd     *string  `json:"morning_end" binding:"omitempty,hhmm"`
	AfternoonStart *string  `json:"afternoon_start" binding:"omitempty,hhmm"`
	AfternoonEnd   *string  `json:"afternoon_end" binding:"omitempty,hhmm"`
	PhotoKey       *string  `json:"photo_key" binding:"omitempty,max=255"`
	Active         *bool    `json:"active"`
}

// validPhoto aceita só chaves dentro da pasta da própria barbearia.
func (r ProfessionalRequest) validPhoto(barbershopID uint) bool {
	if r.PhotoKey == nil || *r.PhotoKey == "" {
		return true
	}
	return storage.OwnedBy(barbershopID, *r.PhotoKey)
}

func (r ProfessionalRequest) apply(p *models.Professional) {
	if r.Name != nil {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.Services != nil {
		// normaliza pelo mesmo parser usado na leitura
		p.Services = catalog.EncodeServiceNames(
			catalog.ParseServiceNames(catalog.EncodeServiceNames(r.Services)),
		)
	}
	if r.MorningStart != nil {
		p.MorningStart = *r.MorningStart
	}
	if r.MorningEnd != nil {
		p.MorningEnd = *r.MorningEnd
	}
	if r.AfternoonStart != nil {
		p.AfternoonStart = *r.AfternoonStart
	}
	if r.AfternoonEnd != nil {
		p.AfternoonEnd = *r.AfternoonEnd
	}
	if r.PhotoKey != nil {
		p.PhotoKey = *r.PhotoKey
	}
	if r.Active != nil {
		p.Active = *r.Active
	}
}

// --------- Response ---------

type ProfessionalView struct {
	models.Professional
	Services []string `json:"services"`
	PhotoURL string   `json:"photo_url,omitempty"`
}

func professionalViews(ctx context.Context, photos *storage.PhotoStore, pros []models.Professional) []ProfessionalView {
	out := make([]ProfessionalView, 0, len(pros))
	for _, p := range pros {
		out = append(out, professionalView(ctx, photos, p))
	}
	return out
}

func professionalView(ctx context.Context, photos *storage.PhotoStore, p models.Professional) ProfessionalView {
	v := ProfessionalView{
		Professional: p,
		Services:     catalog.ParseServiceNames(p.Services),
	}
	url, err := photos.URL(ctx, p.BarbershopID, p.PhotoKey)
	if err != nil && !errors.Is(err, storage.ErrDisabled) {
		log.Printf("photo url error: professional=%d err=%v", p.ID, err)
	}
	v.PhotoURL = url
	return v
}

// --------- Handlers ---------

func (h *ProfessionalHandler) List(c *gin.Context) {
	barbershopID := middleware.BarbershopID(c)

	q := h.db.Where("barbershop_id = ?", barbershopID)
	switch c.Query("active") {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	var pros []models.Professional
	if err := q.Order("name ASC").Find(&pros).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, professionalViews(c.Request.Context(), h.photos, pros))
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	barbershopID := middleware.BarbershopID(c)

	var req ProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if !req.validPhoto(barbershopID) {
		httperr.BadRequest(c, "invalid_photo_key", "Foto inválida.")
		return
	}

	p := models.Professional{
		BarbershopID: barbershopID,
		Services:     catalog.EncodeServiceNames(nil),
		Active:       true,
	}
	req.apply(&p)

	if err := h.db.Create(&p).Error; err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Erro ao criar profissional.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       middleware.UserID(c),
		Action:       "professional_created",
		Entity:       "professional",
		EntityID:     strconv.FormatUint(uint64(p.ID), 10),
	})

	httpresp.Created(c, professionalView(c.Request.Context(), h.photos, p))
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	var req ProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		httperr.BadRequest(c, "invalid_request", "Nome obrigatório.")
		return
	}
	if !req.validPhoto(middleware.BarbershopID(c)) {
		httperr.BadRequest(c, "invalid_photo_key", "Foto inválida.")
		return
	}

	p, ok := h.find(c)
	if !ok {
		return
	}

	oldPhoto := p.PhotoKey
	req.apply(p)

	if err := h.db.Save(p).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao atualizar profissional.")
		return
	}

	if oldPhoto != "" && oldPhoto != p.PhotoKey {
		h.deletePhoto(c.Request.Context(), p.BarbershopID, oldPhoto)
	}

	httpresp.OK(c, professionalView(c.Request.Context(), h.photos, *p))
}

// Delete remove de vez o profissional e a foto dele. Recusa enquanto houver
// agendamentos ativos.
func (h *ProfessionalHandler) Delete(c *gin.Context) {
	p, ok := h.find(c)
	if !ok {
		return
	}

	var active int64
	if err := h.db.
		Model(&models.Appointment{}).
		Where("barbershop_id = ? AND professional_id = ?", p.BarbershopID, p.ID).
		Count(&active).Error; err != nil {

		httperr.Internal(c, "failed_to_delete_professional", "Erro ao excluir profissional.")
		return
	}
	if active > 0 {
		httperr.Conflict(c, "professional_has_appointments", "Profissional possui agendamentos ativos.")
		return
	}

	if err := h.db.Delete(p).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_professional", "Erro ao excluir profissional.")
		return
	}

	h.deletePhoto(c.Request.Context(), p.BarbershopID, p.PhotoKey)

	h.audit.Dispatch(audit.Event{
		BarbershopID: p.BarbershopID,
		UserID:       middleware.UserID(c),
		Action:       "professional_deleted",
		Entity:       "professional",
		EntityID:     strconv.FormatUint(uint64(p.ID), 10),
		Metadata:     map[string]any{"name": p.Name},
	})

	httpresp.NoContent(c)
}

func (h *ProfessionalHandler) find(c *gin.Context) (*models.Professional, bool) {
	var p models.Professional
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", c.Param("id"), middleware.BarbershopID(c)).
		First(&p).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_professional", "Erro ao buscar profissional.")
		return nil, false
	}
	return &p, true
}

// deletePhoto não falha a requisição: a linha já foi gravada.
func (h *ProfessionalHandler) deletePhoto(ctx context.Context, barbershopID uint, key string) {
	if err := h.photos.Delete(ctx, barbershopID, key); err != nil && !errors.Is(err, storage.ErrDisabled) {
		log.Printf("photo delete error: key=%s err=%v", key, err)
	}
}
