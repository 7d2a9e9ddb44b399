package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-admin/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/httpresp"
	"github.com/BruksfildServices01/barber-admin/internal/middleware"
	"github.com/BruksfildServices01/barber-admin/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

// ServiceRequest: em combos, duração e preço omitidos são preenchidos com a
// soma dos componentes. Valores informados prevalecem.
type ServiceRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Description     *string          `json:"description" binding:"omitempty,max=255"`
	DurationMinutes *int             `json:"duration_minutes" binding:"omitempty,min=1"`
	Price           *decimal.Decimal `json:"price"`
	Tier            *string          `json:"tier" binding:"omitempty,tier"`
	ComponentIDs    []uint           `json:"component_ids"`
	Active          *bool            `json:"active"`
}

func (r ServiceRequest) apply(s *models.Service) {
	if r.Name != nil {
		s.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		s.Description = *r.Description
	}
	if r.DurationMinutes != nil {
		s.DurationMinutes = *r.DurationMinutes
	}
	if r.Price != nil {
		s.Price = *r.Price
	}
	if r.Tier != nil {
		tier, _ := catalog.ParseTier(*r.Tier)
		s.Tier = string(tier)
	}
	if r.Active != nil {
		s.Active = *r.Active
	}
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.Where("barbershop_id = ?", middleware.BarbershopID(c))

	switch c.Query("active") {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}
	sortServices(services)

	httpresp.List(c, services)
}

// ComboDefaults sugere duração e preço para um combo a partir dos
// componentes (?ids=1,2,3).
func (h *ServiceHandler) ComboDefaults(c *gin.Context) {
	ids, ok := parseIDList(c.Query("ids"))
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Serviços inválidos.")
		return
	}

	components, err := h.components(middleware.BarbershopID(c), ids)
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	minutes, price := catalog.ComboDefaults(components)
	httpresp.OK(c, gin.H{
		"duration_minutes": minutes,
		"price":            price,
	})
}

func (h *ServiceHandler) Create(c *gin.Context) {
	barbershopID := middleware.BarbershopID(c)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	s := models.Service{
		BarbershopID: barbershopID,
		Tier:         string(catalog.TierService),
		Active:       true,
	}
	req.apply(&s)

	if catalog.Tier(s.Tier).IsCombo() && len(req.ComponentIDs) > 0 &&
		(req.DurationMinutes == nil || req.Price == nil) {

		components, err := h.components(barbershopID, req.ComponentIDs)
		if err != nil {
			httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
			return
		}
		minutes, price := catalog.ComboDefaults(components)
		if req.DurationMinutes == nil {
			s.DurationMinutes = minutes
		}
		if req.Price == nil {
			s.Price = price
		}
	}

	if !validService(&s) {
		httperr.BadRequest(c, "invalid_request", "Duração e preço são obrigatórios.")
		return
	}

	if err := h.db.Create(&s).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	httpresp.Created(c, s)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	s, ok := h.find(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	req.apply(s)

	if s.Name == "" || !validService(s) {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := h.db.Save(s).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	httpresp.OK(c, s)
}

// Delete remove o serviço. Agendamentos que o referenciam continuam com a
// descrição e o valor gravados na reserva.
func (h *ServiceHandler) Delete(c *gin.Context) {
	s, ok := h.find(c)
	if !ok {
		return
	}

	if err := h.db.Delete(s).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Erro ao excluir serviço.")
		return
	}

	httpresp.NoContent(c)
}

func (h *ServiceHandler) find(c *gin.Context) (*models.Service, bool) {
	var s models.Service
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", c.Param("id"), middleware.BarbershopID(c)).
		First(&s).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_service", "Erro ao buscar serviço.")
		return nil, false
	}
	return &s, true
}

func (h *ServiceHandler) components(barbershopID uint, ids []uint) ([]models.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.Service
	err := h.db.
		Where("barbershop_id = ? AND id IN ?", barbershopID, ids).
		Find(&out).Error
	return out, err
}

func validService(s *models.Service) bool {
	return s.DurationMinutes > 0 && !s.Price.IsNegative()
}
