package validators

import (
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/barber-admin/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-admin/internal/timezone"
)

// Register adiciona as tags usadas nos requests:
//
//	hhmm    "08:30"
//	isodate "2026-03-09"
//	tier    uma das categorias de combo
//	phone   só dígitos (e "+"), 10 a 13 dígitos
func Register(v *validator.Validate) error {
	for tag, fn := range map[string]validator.Func{
		"hhmm":    isHHMM,
		"isodate": isISODate,
		"tier":    isTier,
		"phone":   isPhone,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// RegisterGin liga as tags ao validador do binding do gin.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}

func isHHMM(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 5 {
		return false
	}
	_, ok := timezone.ParseHM(s)
	return ok
}

func isISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(timezone.DateLayout, fl.Field().String())
	return err == nil
}

func isTier(fl validator.FieldLevel) bool {
	_, ok := catalog.ParseTier(fl.Field().String())
	return ok
}

func isPhone(fl validator.FieldLevel) bool {
	s := strings.TrimPrefix(strings.TrimSpace(fl.Field().String()), "+")
	if len(s) < 10 || len(s) > 13 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
