package records

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test store (in-memory)
// -------------------------

type testStore struct {
	rows    []CareRecord
	creates int
	nextID  int

	listErr error
}

func (s *testStore) Create(ctx context.Context, rec CareRecord) (CareRecord, error) {
	s.creates++
	s.nextID++
	rec.ID = "rec-" + string(rune('a'+s.nextID-1))
	s.rows = append(s.rows, rec)
	return rec, nil
}

func (s *testStore) List(ctx context.Context, limit int, pageToken string) (Page, error) {
	if s.listErr != nil {
		return Page{}, s.listErr
	}
	out := s.rows
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	cp := make([]CareRecord, len(out))
	copy(cp, out)
	return Page{Records: cp, Total: len(s.rows)}, nil
}

func (s *testStore) Fetch(ctx context.Context, pageSize int) ([]CareRecord, error) {
	page, err := s.List(ctx, pageSize, "")
	if err != nil {
		return nil, err
	}
	return page.Records, nil
}

func (s *testStore) Delete(ctx context.Context, id string) error {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

// -------------------------
// Tests
// -------------------------

func fixedNow() time.Time {
	return time.Date(2025, 11, 3, 15, 0, 0, 0, time.UTC)
}

func TestService_Create_RejectsInvalidType_WithoutStoreWrite(t *testing.T) {
	store := &testStore{}
	svc := NewService(store, 180)

	_, err := svc.Create(context.Background(), CreateInput{Type: EventType("NAP")})
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	if store.creates != 0 {
		t.Fatalf("expected no store write, got %d", store.creates)
	}
}

func TestService_Create_DefaultsTimeToNow(t *testing.T) {
	store := &testStore{}
	svc := NewService(store, 180)
	svc.now = fixedNow

	rec, err := svc.Create(context.Background(), CreateInput{Type: EventTypeFeeding, Note: "left side"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Time != fixedNow().UnixMilli() {
		t.Fatalf("expected time defaulted to now, got %d", rec.Time)
	}
	if rec.Note != "left side" {
		t.Fatalf("expected note preserved, got %q", rec.Note)
	}
	if rec.ID == "" {
		t.Fatalf("expected store-assigned id")
	}
}

func TestService_Create_KeepsExplicitTime(t *testing.T) {
	store := &testStore{}
	svc := NewService(store, 180)
	svc.now = fixedNow

	rec, err := svc.Create(context.Background(), CreateInput{Type: EventTypeBath, Time: 1234567890000})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Time != 1234567890000 {
		t.Fatalf("expected explicit time kept, got %d", rec.Time)
	}
}

func TestService_List_ResortsPageDescending(t *testing.T) {
	now := fixedNow().UnixMilli()

	// El store devuelve la página desordenada a propósito.
	store := &testStore{rows: []CareRecord{
		{ID: "r1", Type: EventTypeBath, Time: now - 3000},
		{ID: "r2", Type: EventTypeFeeding, Time: now - 1000},
		{ID: "r3", Type: EventTypeDiaperChange, Time: now - 2000},
	}}
	svc := NewService(store, 180)

	page, err := svc.List(context.Background(), 20, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(page.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(page.Records))
	}
	for i := 1; i < len(page.Records); i++ {
		if page.Records[i-1].Time < page.Records[i].Time {
			t.Fatalf("records not sorted descending at %d: %v", i, page.Records)
		}
	}
	if page.Records[0].ID != "r2" {
		t.Fatalf("expected newest first, got %s", page.Records[0].ID)
	}
}

func TestService_List_ClampsLimit(t *testing.T) {
	store := &testStore{}
	for i := 0; i < 150; i++ {
		store.rows = append(store.rows, CareRecord{ID: "x", Time: int64(i)})
	}
	svc := NewService(store, 180)

	page, err := svc.List(context.Background(), 500, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(page.Records) != 100 {
		t.Fatalf("expected limit clamped to 100, got %d", len(page.Records))
	}

	page, err = svc.List(context.Background(), 0, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(page.Records) != 20 {
		t.Fatalf("expected default limit 20, got %d", len(page.Records))
	}
}

func TestService_LatestFeed_PicksNewestFeeding(t *testing.T) {
	now := fixedNow()
	t1 := now.Add(-5 * time.Hour).UnixMilli()
	t2 := now.Add(-3 * time.Hour).UnixMilli()
	t3 := now.Add(-90 * time.Minute).UnixMilli()

	// Tomas en t1 < t2 < t3, más eventos no-toma posteriores a t3.
	store := &testStore{rows: []CareRecord{
		{ID: "f1", Type: EventTypeFeeding, Time: t1},
		{ID: "d1", Type: EventTypeDiaperChange, Time: now.Add(-10 * time.Minute).UnixMilli()},
		{ID: "f3", Type: EventTypeFeeding, Time: t3},
		{ID: "b1", Type: EventTypeBath, Time: now.Add(-5 * time.Minute).UnixMilli()},
		{ID: "f2", Type: EventTypeFeeding, Time: t2},
	}}
	svc := NewService(store, 180)
	svc.now = fixedNow

	lf, err := svc.LatestFeed(context.Background())
	if err != nil {
		t.Fatalf("LatestFeed returned error: %v", err)
	}
	if lf.Record == nil || lf.Record.ID != "f3" {
		t.Fatalf("expected feeding at t3, got %+v", lf.Record)
	}
	if lf.MinutesSince != 90 {
		t.Fatalf("expected 90 minutes since, got %d", lf.MinutesSince)
	}
	if lf.NextFeedIn != 90 {
		t.Fatalf("expected next feed in 90, got %d", lf.NextFeedIn)
	}
}

func TestService_LatestFeed_FloorsMinutes(t *testing.T) {
	now := fixedNow()
	store := &testStore{rows: []CareRecord{
		{ID: "f1", Type: EventTypeFeeding, Time: now.Add(-119 * time.Second).UnixMilli()},
	}}
	svc := NewService(store, 180)
	svc.now = fixedNow

	lf, err := svc.LatestFeed(context.Background())
	if err != nil {
		t.Fatalf("LatestFeed returned error: %v", err)
	}
	// 119s => 1 minuto (floor, no round)
	if lf.MinutesSince != 1 {
		t.Fatalf("expected floor to 1 minute, got %d", lf.MinutesSince)
	}
}

func TestService_LatestFeed_OverdueGoesNegative(t *testing.T) {
	now := fixedNow()
	store := &testStore{rows: []CareRecord{
		{ID: "f1", Type: EventTypeFeeding, Time: now.Add(-4 * time.Hour).UnixMilli()},
	}}
	svc := NewService(store, 180)
	svc.now = fixedNow

	lf, err := svc.LatestFeed(context.Background())
	if err != nil {
		t.Fatalf("LatestFeed returned error: %v", err)
	}
	if lf.NextFeedIn != -60 {
		t.Fatalf("expected -60 (overdue), got %d", lf.NextFeedIn)
	}
}

func TestService_LatestFeed_NoFeedSentinel(t *testing.T) {
	store := &testStore{rows: []CareRecord{
		{ID: "d1", Type: EventTypeDiaperChange, Time: fixedNow().UnixMilli()},
		{ID: "b1", Type: EventTypeBath, Time: fixedNow().UnixMilli()},
	}}
	svc := NewService(store, 180)
	svc.now = fixedNow

	lf, err := svc.LatestFeed(context.Background())
	if err != nil {
		t.Fatalf("LatestFeed returned error: %v", err)
	}
	if lf.Record != nil {
		t.Fatalf("expected nil record, got %+v", lf.Record)
	}
	if lf.MinutesSince != NoFeedOnRecord {
		t.Fatalf("expected NoFeedOnRecord sentinel, got %d", lf.MinutesSince)
	}
	if lf.NextFeedIn != 0 {
		t.Fatalf("expected nextFeedIn 0, got %d", lf.NextFeedIn)
	}
}
