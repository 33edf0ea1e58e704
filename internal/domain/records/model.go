package records

// CareRecord es la única entidad del dominio: una actividad de cuidado
// registrada, con timestamp en epoch millis (así lo guarda el store externo).
type CareRecord struct {
	ID   string
	Type EventType

	// Time es el momento del evento en epoch millis.
	Time int64

	// Note es la anotación libre opcional ("" si no hay).
	Note string

	// CreatedTime lo asigna el store al crear la fila; solo presente
	// en registros leídos (0 si no vino).
	CreatedTime int64
}

// Page es una página de registros tal como la devuelve el store,
// ya re-ordenada time-descending.
type Page struct {
	Records   []CareRecord
	HasMore   bool
	PageToken string
	Total     int
}

// LatestFeed es el resultado del cómputo "tiempo desde la última toma".
type LatestFeed struct {
	// Record es nil cuando no hay ninguna toma registrada.
	Record *CareRecord

	// MinutesSince son los minutos (floor) desde la última toma.
	// Con Record nil vale NoFeedOnRecord (el equivalente a +infinito).
	MinutesSince int64

	// NextFeedIn son los minutos que faltan para la próxima toma según
	// el intervalo configurado. Negativo significa atrasada.
	NextFeedIn int64
}
