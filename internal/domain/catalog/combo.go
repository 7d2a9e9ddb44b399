package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-admin/internal/models"
)

// ComboDefaults soma duração e preço dos serviços componentes. É só o valor
// sugerido: duração e preço gravados no combo prevalecem quando informados.
func ComboDefaults(components []models.Service) (int, decimal.Decimal) {
	minutes := 0
	price := decimal.Zero
	for _, s := range components {
		minutes += s.DurationMinutes
		price = price.Add(s.Price)
	}
	return minutes, price
}
