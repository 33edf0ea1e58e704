package client

import (
	"context"
	"sync"
	"time"

	"baby-care-log/internal/domain/records"
)

const (
	// Ventanas del quick-log: 800ms de cooldown por tipo y
	// 1200ms de flash de éxito.
	cooldownWindow = 800 * time.Millisecond
	successWindow  = 1200 * time.Millisecond
)

// QuickLogger envuelve al RecordStore con el anti-doble-tap del
// cliente web: un tap por tipo dentro de la ventana de cooldown.
type QuickLogger struct {
	mu sync.Mutex

	store *RecordStore

	cooldownUntil map[records.EventType]time.Time
	successUntil  map[records.EventType]time.Time

	now func() time.Time
}

func NewQuickLogger(store *RecordStore) *QuickLogger {
	return &QuickLogger{
		store:         store,
		cooldownUntil: make(map[records.EventType]time.Time),
		successUntil:  make(map[records.EventType]time.Time),
		now:           time.Now,
	}
}

// Log registra la actividad con time=ahora. Devuelve false si el tipo
// está en cooldown o si el create falló.
func (q *QuickLogger) Log(ctx context.Context, t records.EventType, note string) bool {
	q.mu.Lock()
	now := q.now()
	if now.Before(q.cooldownUntil[t]) {
		q.mu.Unlock()
		return false
	}
	q.cooldownUntil[t] = now.Add(cooldownWindow)
	q.mu.Unlock()

	ok := q.store.AddRecord(ctx, t, note, 0)

	if ok {
		q.mu.Lock()
		q.successUntil[t] = q.now().Add(successWindow)
		q.mu.Unlock()
	}
	return ok
}

// InCooldown indica si el tipo todavía no acepta otro tap.
func (q *QuickLogger) InCooldown(t records.EventType) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.now().Before(q.cooldownUntil[t])
}

// ShowingSuccess indica si el flash de éxito del tipo sigue activo.
func (q *QuickLogger) ShowingSuccess(t records.EventType) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.now().Before(q.successUntil[t])
}
