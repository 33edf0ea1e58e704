package records

import "context"

// Store es el puerto hacia el registro durable (Bitable en producción,
// in-memory en modo dev y tests). El store externo es el system of record;
// acá no hay persistencia local.
type Store interface {
	// Create inserta una fila y devuelve el registro con el id asignado
	// por el store.
	Create(ctx context.Context, rec CareRecord) (CareRecord, error)

	// List trae una página. El orden nativo del store no se respeta;
	// el service re-ordena después.
	List(ctx context.Context, limit int, pageToken string) (Page, error)

	// Fetch trae hasta pageSize filas recientes sin filtro (el store no
	// tiene filtrado rico server-side); lo usa el escaneo de latest-feed.
	Fetch(ctx context.Context, pageSize int) ([]CareRecord, error)

	// Delete borra la fila. Irreversible desde este sistema.
	Delete(ctx context.Context, id string) error
}
