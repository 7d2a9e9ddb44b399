package appointment

import "encoding/json"

func encodeIDs(ids []uint) []byte {
	if ids == nil {
		ids = []uint{}
	}
	b, _ := json.Marshal(ids)
	return b
}

// DecodeServiceIDs lê a coluna service_ids; conteúdo inválido vira lista vazia.
func DecodeServiceIDs(raw []byte) []uint {
	var ids []uint
	if err := json.Unmarshal(raw, &ids); err != nil {
		return []uint{}
	}
	return ids
}
