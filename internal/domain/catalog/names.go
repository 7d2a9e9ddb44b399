package catalog

import (
	"encoding/json"
	"strings"
)

// ParseServiceNames lê a lista de serviços de um profissional gravada como
// texto JSON. Valor vazio vira lista vazia; valor que não é array JSON de
// strings vira uma lista com o próprio texto.
func ParseServiceNames(raw []byte) []string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return []string{}
	}

	var names []string
	if err := json.Unmarshal([]byte(s), &names); err == nil {
		out := make([]string, 0, len(names))
		for _, n := range names {
			if n = strings.TrimSpace(n); n != "" {
				out = append(out, n)
			}
		}
		return out
	}

	var str string
	if err := json.Unmarshal([]byte(s), &str); err == nil {
		s = strings.TrimSpace(str)
		if s == "" {
			return []string{}
		}
	}

	return []string{s}
}

func EncodeServiceNames(names []string) []byte {
	if names == nil {
		names = []string{}
	}
	b, _ := json.Marshal(names)
	return b
}
