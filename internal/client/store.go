package client

import (
	"context"
	"sync"
	"time"

	"baby-care-log/internal/domain/records"
	"baby-care-log/internal/platform/logger"

	"github.com/google/uuid"
)

// recordAPI es lo que el store necesita del backend (mockeable en tests).
type recordAPI interface {
	CreateRecord(ctx context.Context, t records.EventType, note string, timeMs int64) (records.CareRecord, error)
	DeleteRecord(ctx context.Context, id string) error
}

// RecordStore es la lista reactiva del cliente: una colección ordenada
// (más nuevo primero) con mutaciones optimistas. Los inserts provisorios
// llevan un id temporal que nunca se persiste: o se reemplaza con la
// respuesta del server o se descarta.
type RecordStore struct {
	mu sync.Mutex

	api recordAPI
	log logger.Logger

	list    []records.CareRecord
	version uint64

	now func() time.Time
}

func NewRecordStore(api recordAPI, log logger.Logger) *RecordStore {
	if log == nil {
		log = logger.New(logger.Options{})
	}
	return &RecordStore{
		api: api,
		log: log,
		now: time.Now,
	}
}

// Get devuelve una copia de la lista actual.
func (s *RecordStore) Get() []records.CareRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]records.CareRecord, len(s.list))
	copy(out, s.list)
	return out
}

// Version se incrementa en cada mutación (para que una UI sepa redibujar).
func (s *RecordStore) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// SetRecords reemplaza la lista completa (después de un fetch del server,
// que ya viene ordenado del más nuevo al más viejo).
func (s *RecordStore) SetRecords(recs []records.CareRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = make([]records.CareRecord, len(recs))
	copy(s.list, recs)
	s.version++
}

// InsertSorted inserta preservando el orden descendente por Time:
// antes del primer elemento con Time estrictamente menor, o al final.
// Con timestamps empatados el nuevo queda detrás del existente.
func (s *RecordStore) InsertSorted(rec records.CareRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertSortedLocked(rec)
	s.version++
}

func (s *RecordStore) insertSortedLocked(rec records.CareRecord) {
	idx := -1
	for i := range s.list {
		if s.list[i].Time < rec.Time {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.list = append(s.list, rec)
		return
	}
	s.list = append(s.list, records.CareRecord{})
	copy(s.list[idx+1:], s.list[idx:])
	s.list[idx] = rec
}

// Replace cambia la entrada con id tempID por el registro confirmado.
func (s *RecordStore) Replace(tempID string, real records.CareRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.list {
		if s.list[i].ID == tempID {
			s.list[i] = real
			s.version++
			return true
		}
	}
	return false
}

// Remove saca la entrada con ese id.
func (s *RecordStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.list {
		if s.list[i].ID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			s.version++
			return true
		}
	}
	return false
}

func (s *RecordStore) snapshot() []records.CareRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]records.CareRecord, len(s.list))
	copy(out, s.list)
	return out
}

func (s *RecordStore) restore(snap []records.CareRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = snap
	s.version++
}

// AddRecord inserta un provisorio, dispara el create y reconcilia:
// éxito => el provisorio se reemplaza por el registro del server;
// fallo => el provisorio se saca entero y devuelve false.
func (s *RecordStore) AddRecord(ctx context.Context, t records.EventType, note string, timeMs int64) bool {
	if timeMs <= 0 {
		timeMs = s.now().UnixMilli()
	}

	temp := records.CareRecord{
		ID:   "temp_" + uuid.NewString(),
		Type: t,
		Time: timeMs,
		Note: note,
	}
	s.InsertSorted(temp)

	real, err := s.api.CreateRecord(ctx, t, note, timeMs)
	if err != nil {
		s.Remove(temp.ID)
		s.log.Error("failed to add record", map[string]any{"err": err.Error()})
		return false
	}

	s.Replace(temp.ID, real)
	return true
}

// RemoveRecord saca el registro de una, dispara el delete y si falla
// restaura el snapshot completo previo (rollback simple, no merge).
func (s *RecordStore) RemoveRecord(ctx context.Context, id string) bool {
	backup := s.snapshot()
	s.Remove(id)

	if err := s.api.DeleteRecord(ctx, id); err != nil {
		s.restore(backup)
		s.log.Error("failed to delete record", map[string]any{"err": err.Error(), "id": id})
		return false
	}
	return true
}
