package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Time  string `validate:"omitempty,hhmm"`
	Date  string `validate:"omitempty,isodate"`
	Tier  string `validate:"omitempty,tier"`
	Phone string `validate:"omitempty,phone"`
}

func TestRegister(t *testing.T) {
	v := validator.New()
	if err := Register(v); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name string
		in   sample
		ok   bool
	}{
		{"valid", sample{Time: "08:30", Date: "2026-03-09", Tier: "Ouro", Phone: "5511999990000"}, true},
		{"time without zero", sample{Time: "8:30"}, false},
		{"time out of range", sample{Time: "25:00"}, false},
		{"time with seconds", sample{Time: "08:30:00"}, false},
		{"date br format", sample{Date: "09/03/2026"}, false},
		{"unknown tier", sample{Tier: "Platina"}, false},
		{"phone with letters", sample{Phone: "55119abc0000"}, false},
		{"phone too short", sample{Phone: "12345"}, false},
		{"phone with plus", sample{Phone: "+5511999990000"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("ok=%v, err=%v", tt.ok, err)
			}
		})
	}
}
