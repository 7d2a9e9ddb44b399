package handlers

import (
	"sort"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-admin/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/httpresp"
	"github.com/BruksfildServices01/barber-admin/internal/models"
	"github.com/BruksfildServices01/barber-admin/internal/storage"
	"github.com/BruksfildServices01/barber-admin/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler atende a página de agendamento do cliente, sem login.
// A barbearia é resolvida pelo slug da URL.
type PublicHandler struct {
	db           *gorm.DB
	photos       *storage.PhotoStore
	availability *appointment.GetAvailability
	create       *appointment.CreateAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	photos *storage.PhotoStore,
	availability *appointment.GetAvailability,
	create *appointment.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		photos:       photos,
		availability: availability,
		create:       create,
	}
}

func (h *PublicHandler) shop(c *gin.Context) (*models.Barbershop, bool) {
	var shop models.Barbershop
	if err := h.db.
		WithContext(c.Request.Context()).
		Where("slug = ?", c.Param("slug")).
		First(&shop).Error; err != nil {

		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return nil, false
	}
	return &shop, true
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) Catalog(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	var pros []models.Professional
	if err := h.db.
		Where("barbershop_id = ? AND active = true", shop.ID).
		Order("name ASC").
		Find(&pros).Error; err != nil {

		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("barbershop_id = ? AND active = true", shop.ID).
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}
	sortServices(services)

	httpresp.OK(c, gin.H{
		"barbershop":    shop,
		"professionals": professionalViews(c.Request.Context(), h.photos, pros),
		"services":      services,
	})
}

// sortServices ordena avulsos primeiro e depois combos por nível.
func sortServices(services []models.Service) {
	sort.SliceStable(services, func(i, j int) bool {
		ri := catalog.Tier(services[i].Tier).Rank()
		rj := catalog.Tier(services[j].Tier).Rank()
		if ri != rj {
			return ri < rj
		}
		return services[i].Name < services[j].Name
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	in, ok := availabilityInput(c, shop.ID)
	if !ok {
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, err, "availability_failed")
		return
	}

	httpresp.OK(c, gin.H{
		"date":  c.Query("date"),
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), req.input(shop.ID, nil))
	if err != nil {
		writeError(c, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, ap)
}
