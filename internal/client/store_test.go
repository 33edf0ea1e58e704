package client

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"baby-care-log/internal/domain/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI simula el backend para el store optimista.
type fakeAPI struct {
	createErr error
	deleteErr error

	nextID int
}

func (f *fakeAPI) CreateRecord(ctx context.Context, t records.EventType, note string, timeMs int64) (records.CareRecord, error) {
	if f.createErr != nil {
		return records.CareRecord{}, f.createErr
	}
	f.nextID++
	return records.CareRecord{
		ID:          "srv-" + string(rune('0'+f.nextID)),
		Type:        t,
		Note:        note,
		Time:        timeMs,
		CreatedTime: timeMs,
	}, nil
}

func (f *fakeAPI) DeleteRecord(ctx context.Context, id string) error {
	return f.deleteErr
}

func seedStore(api recordAPI, times ...int64) *RecordStore {
	s := NewRecordStore(api, nil)
	recs := make([]records.CareRecord, 0, len(times))
	for i, ts := range times {
		recs = append(recs, records.CareRecord{
			ID:   "r" + string(rune('0'+i)),
			Type: records.EventTypeDiaperChange,
			Time: ts,
		})
	}
	s.SetRecords(recs)
	return s
}

func assertDescending(t *testing.T, recs []records.CareRecord) {
	t.Helper()
	for i := 1; i < len(recs); i++ {
		require.GreaterOrEqual(t, recs[i-1].Time, recs[i].Time,
			"list not sorted descending at %d", i)
	}
}

func TestRecordStore_InsertSorted_PreservesDescendingOrder(t *testing.T) {
	// Lista base ordenada descendente; insertar en todas las posiciones
	// relevantes: más nuevo que todos, más viejo que todos, medio, empate.
	cases := []struct {
		name       string
		insertTime int64
		wantIndex  int
	}{
		{"newest goes first", 500, 0},
		{"oldest goes last", 50, 3},
		{"middle slot", 250, 1},
		// Empate: el nuevo queda después del existente con el mismo Time
		// (se inserta antes del primer elemento estrictamente menor).
		{"tied goes after equal", 200, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := seedStore(&fakeAPI{}, 300, 200, 100)

			s.InsertSorted(records.CareRecord{ID: "new", Time: tc.insertTime})

			got := s.Get()
			require.Len(t, got, 4)
			assertDescending(t, got)
			assert.Equal(t, "new", got[tc.wantIndex].ID)
		})
	}
}

func TestRecordStore_AddRecord_ReplacesTempWithServerRecord(t *testing.T) {
	api := &fakeAPI{}
	s := seedStore(api, 300, 100)

	ok := s.AddRecord(context.Background(), records.EventTypeFeeding, "left side", 200)
	require.True(t, ok)

	got := s.Get()
	require.Len(t, got, 3)
	assertDescending(t, got)

	// El provisorio quedó reemplazado: nada con id temporal, y el
	// registro confirmado trae id y created_time del server.
	for _, rec := range got {
		assert.False(t, strings.HasPrefix(rec.ID, "temp_"), "temp id leaked: %s", rec.ID)
	}
	assert.Equal(t, "srv-1", got[1].ID)
	assert.Equal(t, int64(200), got[1].CreatedTime)
}

func TestRecordStore_AddRecord_FailureRestoresExactPreCallState(t *testing.T) {
	api := &fakeAPI{createErr: errors.New("upstream down")}
	s := seedStore(api, 300, 200, 100)
	before := s.Get()

	ok := s.AddRecord(context.Background(), records.EventTypeBath, "", 250)
	require.False(t, ok)

	assert.Equal(t, before, s.Get())
}

func TestRecordStore_AddRecord_DefaultsTimeToNow(t *testing.T) {
	api := &fakeAPI{}
	s := seedStore(api)
	now := time.Date(2025, 11, 3, 15, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	ok := s.AddRecord(context.Background(), records.EventTypeFeeding, "", 0)
	require.True(t, ok)

	got := s.Get()
	require.Len(t, got, 1)
	assert.Equal(t, now.UnixMilli(), got[0].Time)
}

func TestRecordStore_RemoveRecord_OptimisticThenConfirmed(t *testing.T) {
	api := &fakeAPI{}
	s := seedStore(api, 300, 200, 100)

	ok := s.RemoveRecord(context.Background(), "r1")
	require.True(t, ok)

	got := s.Get()
	require.Len(t, got, 2)
	for _, rec := range got {
		assert.NotEqual(t, "r1", rec.ID)
	}
}

func TestRecordStore_RemoveRecord_FailureRollsBackSnapshot(t *testing.T) {
	api := &fakeAPI{deleteErr: errors.New("upstream down")}
	s := seedStore(api, 300, 200, 100)
	before := s.Get()

	ok := s.RemoveRecord(context.Background(), "r1")
	require.False(t, ok)

	assert.Equal(t, before, s.Get())
}

func TestRecordStore_VersionBumpsOnMutation(t *testing.T) {
	s := seedStore(&fakeAPI{}, 300)
	v := s.Version()

	s.InsertSorted(records.CareRecord{ID: "x", Time: 400})
	assert.Greater(t, s.Version(), v)
}
