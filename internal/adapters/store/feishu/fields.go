package feishu

import (
	"encoding/json"

	"baby-care-log/internal/domain/records"
)

// Nombres de campo de la tabla Bitable. La tabla se arma con estos nombres
// (ver admin.go); el campo primario 记录 repite el tipo como texto.
const (
	fieldPrimary = "记录"
	fieldType    = "事件类型"
	fieldTime    = "时间"
	fieldNote    = "备注"
	fieldCreated = "创建时间"
)

// Opciones del single-select 事件类型, mapeadas al set cerrado del dominio.
var typeToOption = map[records.EventType]string{
	records.EventTypeFeeding:       "喂奶",
	records.EventTypeDiaperChange:  "换尿布",
	records.EventTypeBowelMovement: "拉屎",
	records.EventTypeBath:          "洗澡",
}

var optionToType = map[string]records.EventType{
	"喂奶":  records.EventTypeFeeding,
	"换尿布": records.EventTypeDiaperChange,
	"拉屎":  records.EventTypeBowelMovement,
	"洗澡":  records.EventTypeBath,
}

// fieldValue es el union de representaciones que Bitable puede devolver
// para un campo: escalar crudo (string o número), objeto envuelto
// ({text}/{value}) o array de fragmentos de rich text. Se decodifica acá
// y nunca sale de este paquete: hacia afuera solo van valores planos.
type fieldValue struct {
	kind fieldKind

	text      string
	num       float64
	wrapped   wrappedValue
	fragments []richTextFragment
}

type fieldKind int

const (
	kindAbsent fieldKind = iota
	kindText
	kindNumber
	kindWrapped
	kindRichText
)

type wrappedValue struct {
	Text  string          `json:"text"`
	Value json.RawMessage `json:"value"`
}

type richTextFragment struct {
	Text string `json:"text"`
}

func (v *fieldValue) UnmarshalJSON(b []byte) error {
	// Probar cada forma en orden; el API no declara cuál viene.
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v.kind = kindText
		v.text = s
		return nil
	}

	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		v.kind = kindNumber
		v.num = n
		return nil
	}

	var frags []richTextFragment
	if err := json.Unmarshal(b, &frags); err == nil {
		v.kind = kindRichText
		v.fragments = frags
		return nil
	}

	var w wrappedValue
	if err := json.Unmarshal(b, &w); err == nil {
		v.kind = kindWrapped
		v.wrapped = w
		return nil
	}

	// Forma desconocida: se trata como ausente en vez de fallar la página.
	v.kind = kindAbsent
	return nil
}

// asText normaliza a string plano: escalar tal cual, objeto => .text,
// rich text => texto del primer fragmento, resto => "".
func (v fieldValue) asText() string {
	switch v.kind {
	case kindText:
		return v.text
	case kindWrapped:
		return v.wrapped.Text
	case kindRichText:
		if len(v.fragments) > 0 {
			return v.fragments[0].Text
		}
		return ""
	default:
		return ""
	}
}

// asMillis normaliza a epoch millis: número crudo, u objeto cuyo .value
// es número o array de números (formato de campos fórmula/lookup).
func (v fieldValue) asMillis() int64 {
	switch v.kind {
	case kindNumber:
		return int64(v.num)
	case kindWrapped:
		if len(v.wrapped.Value) == 0 {
			return 0
		}
		var n float64
		if err := json.Unmarshal(v.wrapped.Value, &n); err == nil {
			return int64(n)
		}
		var ns []float64
		if err := json.Unmarshal(v.wrapped.Value, &ns); err == nil && len(ns) > 0 {
			return int64(ns[0])
		}
		return 0
	default:
		return 0
	}
}

// buildFields arma el payload de escritura (siempre valores planos).
func buildFields(rec records.CareRecord) map[string]any {
	option := typeToOption[rec.Type]
	return map[string]any{
		fieldPrimary: option,
		fieldType:    option,
		fieldTime:    rec.Time,
		fieldNote:    rec.Note,
	}
}

// decodeRecord traduce una fila de Bitable al modelo de dominio,
// desenvolviendo cada campo a su valor plano.
func decodeRecord(item bitableRecord) records.CareRecord {
	return records.CareRecord{
		ID:          item.RecordID,
		Type:        optionToType[item.Fields[fieldType].asText()],
		Time:        item.Fields[fieldTime].asMillis(),
		Note:        item.Fields[fieldNote].asText(),
		CreatedTime: item.CreatedTime,
	}
}
