package records

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"
)

var (
	ErrInvalidType = errors.New("invalid event type")
)

// NoFeedOnRecord es el centinela de MinutesSince cuando no existe
// ninguna toma registrada (el "+infinito" del cómputo).
const NoFeedOnRecord int64 = math.MaxInt64

// StoreError envuelve una respuesta no-success del store externo.
// El mensaje upstream se propaga tal cual al caller (sin retry).
type StoreError struct {
	Msg string
}

func (e *StoreError) Error() string { return e.Msg }

const (
	defaultListLimit = 20
	maxListLimit     = 100

	// latestFeedScanSize es cuántas filas recientes (de cualquier tipo) se
	// escanean para buscar la última toma. Limitación conocida: una toma
	// más vieja que las 50 filas más recientes queda invisible para el
	// cómputo de atraso.
	latestFeedScanSize = 50
)

type Service struct {
	store Store

	// feedInterval es el intervalo configurado entre tomas, en minutos.
	feedInterval int64

	now func() time.Time
}

func NewService(store Store, feedIntervalMinutes int) *Service {
	return &Service{
		store:        store,
		feedInterval: int64(feedIntervalMinutes),
		now:          time.Now,
	}
}

type CreateInput struct {
	Type EventType
	Time int64 // epoch millis; 0 => ahora
	Note string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (CareRecord, error) {
	// Validar antes de tocar el store: un type fuera del set cerrado
	// no genera ninguna escritura.
	if !in.Type.IsValid() {
		return CareRecord{}, ErrInvalidType
	}

	t := in.Time
	if t <= 0 {
		t = s.now().UnixMilli()
	}

	return s.store.Create(ctx, CareRecord{
		Type: in.Type,
		Time: t,
		Note: in.Note,
	})
}

func (s *Service) List(ctx context.Context, limit int, pageToken string) (Page, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	page, err := s.store.List(ctx, limit, pageToken)
	if err != nil {
		return Page{}, err
	}

	// El orden de paginación nativo del store no es confiable;
	// siempre re-ordenamos time-descending.
	sort.SliceStable(page.Records, func(i, j int) bool {
		return page.Records[i].Time > page.Records[j].Time
	})

	return page, nil
}

// LatestFeed escanea las filas recientes buscando la toma de mayor Time.
// Sin tomas registradas devuelve el centinela NoFeedOnRecord.
func (s *Service) LatestFeed(ctx context.Context) (LatestFeed, error) {
	items, err := s.store.Fetch(ctx, latestFeedScanSize)
	if err != nil {
		return LatestFeed{}, err
	}

	var latest *CareRecord
	for i := range items {
		if items[i].Type != EventTypeFeeding {
			continue
		}
		if latest == nil || items[i].Time > latest.Time {
			latest = &items[i]
		}
	}

	if latest == nil {
		return LatestFeed{
			Record:       nil,
			MinutesSince: NoFeedOnRecord,
			NextFeedIn:   0,
		}, nil
	}

	minutesSince := (s.now().UnixMilli() - latest.Time) / 60000

	return LatestFeed{
		Record:       latest,
		MinutesSince: minutesSince,
		// Puede ser negativo: toma atrasada.
		NextFeedIn: s.feedInterval - minutesSince,
	}, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
