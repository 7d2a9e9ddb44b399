package timezone

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHM converte "HH:MM" (ou "HH:MM:SS", como o Postgres devolve colunas
// time) em minutos desde a meia-noite.
func ParseHM(hm string) (int, bool) {
	hm = strings.TrimSpace(hm)
	if len(hm) < 5 || hm[2] != ':' {
		return 0, false
	}
	h, err := strconv.Atoi(hm[:2])
	if err != nil || h < 0 || h > 24 {
		return 0, false
	}
	m, err := strconv.Atoi(hm[3:5])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	total := h*60 + m
	if total > 24*60 {
		return 0, false
	}
	return total, true
}

func FormatHM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
