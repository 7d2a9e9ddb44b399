package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-admin/internal/audit"
	"github.com/BruksfildServices01/barber-admin/internal/domain/client"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/httpresp"
	"github.com/BruksfildServices01/barber-admin/internal/middleware"
	"github.com/BruksfildServices01/barber-admin/internal/models"
)

type SettingHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewSettingHandler(db *gorm.DB, audit *audit.Dispatcher) *SettingHandler {
	return &SettingHandler{db: db, audit: audit}
}

type SettingRequest struct {
	Value string `json:"value" binding:"max=255"`
}

// validators por chave conhecida; chaves livres aceitam qualquer texto
var settingValidators = map[string]func(string) bool{
	client.SettingActivationThreshold: func(v string) bool {
		n, err := strconv.Atoi(v)
		return err == nil && n > 0
	},
}

func (h *SettingHandler) List(c *gin.Context) {
	var settings []models.Setting
	if err := h.db.
		Where("barbershop_id = ?", middleware.BarbershopID(c)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).
		Find(&settings).Error; err != nil {

		httperr.Internal(c, "failed_to_list_settings", "Erro ao listar configurações.")
		return
	}

	httpresp.List(c, settings)
}

func (h *SettingHandler) Get(c *gin.Context) {
	var s models.Setting
	err := h.db.
		Where(map[string]any{"barbershop_id": middleware.BarbershopID(c), "key": c.Param("key")}).
		Limit(1).
		Find(&s).Error
	if err != nil {
		httperr.Internal(c, "failed_to_get_setting", "Erro ao buscar configuração.")
		return
	}
	if s.ID == 0 {
		httperr.NotFound(c, "setting_not_found", "Configuração não encontrada.")
		return
	}

	httpresp.OK(c, s)
}

// Put grava ou substitui o valor da chave.
func (h *SettingHandler) Put(c *gin.Context) {
	barbershopID := middleware.BarbershopID(c)
	key := c.Param("key")

	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil || key == "" || len(key) > 64 {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if valid, ok := settingValidators[key]; ok && !valid(req.Value) {
		httperr.BadRequest(c, "invalid_setting_value", "Valor inválido para a configuração.")
		return
	}

	s := models.Setting{
		BarbershopID: barbershopID,
		Key:          key,
		Value:        req.Value,
	}
	if err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "barbershop_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&s).Error; err != nil {

		httperr.Internal(c, "failed_to_save_setting", "Erro ao salvar configuração.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       middleware.UserID(c),
		Action:       "setting_updated",
		Entity:       "setting",
		EntityID:     key,
		Metadata:     map[string]any{"value": req.Value},
	})

	httpresp.OK(c, s)
}
