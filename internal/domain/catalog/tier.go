package catalog

// Tier classifica um serviço: avulso ou um dos níveis de combo.
type Tier string

const (
	TierService  Tier = "Serviço"
	TierBronze   Tier = "Bronze"
	TierPrata    Tier = "Prata"
	TierOuro     Tier = "Ouro"
	TierDiamante Tier = "Diamante"
	TierCobre    Tier = "Cobre"
)

var tierOrder = []Tier{TierService, TierBronze, TierPrata, TierOuro, TierDiamante, TierCobre}

func ParseTier(s string) (Tier, bool) {
	if s == "" {
		return TierService, true
	}
	for _, t := range tierOrder {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

func (t Tier) IsCombo() bool {
	return t != TierService
}

// Rank é a posição do nível na ordem fixa; desconhecidos vão para o fim.
func (t Tier) Rank() int {
	for i, o := range tierOrder {
		if o == t {
			return i
		}
	}
	return len(tierOrder)
}
