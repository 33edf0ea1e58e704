package feishu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"baby-care-log/internal/domain/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFeishu emula los endpoints del Open API que usa el adapter.
type fakeFeishu struct {
	mux *http.ServeMux

	tokenCalls   atomic.Int64
	lastAuth     string
	lastCreBody  map[string]any
	listResponse string
}

func newFakeFeishu() *fakeFeishu {
	f := &fakeFeishu{mux: http.NewServeMux()}

	f.mux.HandleFunc("POST /open-apis/auth/v3/tenant_access_token/internal", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 0, "msg": "ok",
			"tenant_access_token": "t-xyz",
			"expire":              7200,
		})
	})

	f.mux.HandleFunc("POST /open-apis/bitable/v1/apps/app-1/tables/tbl-1/records", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&f.lastCreBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 0, "msg": "ok",
			"data": map[string]any{
				"record": map[string]any{
					"record_id":    "rec-001",
					"created_time": 1700000001000,
				},
			},
		})
	})

	f.mux.HandleFunc("GET /open-apis/bitable/v1/apps/app-1/tables/tbl-1/records", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(f.listResponse))
	})

	f.mux.HandleFunc("DELETE /open-apis/bitable/v1/apps/app-1/tables/tbl-1/records/rec-bad", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 1254043, "msg": "RecordIdNotFound",
		})
	})

	return f
}

func newTestStore(t *testing.T) (*Store, *fakeFeishu) {
	t.Helper()

	fake := newFakeFeishu()
	ts := httptest.NewServer(fake.mux)
	t.Cleanup(ts.Close)

	client, err := NewClient(Config{
		AppID:     "cli_app",
		AppSecret: "secret",
		BaseURL:   ts.URL,
	})
	require.NoError(t, err)

	return NewStore(client, "app-1", "tbl-1"), fake
}

func TestStore_Create_TranslatesFields(t *testing.T) {
	store, fake := newTestStore(t)

	rec, err := store.Create(context.Background(), records.CareRecord{
		Type: records.EventTypeFeeding,
		Time: 1700000000000,
		Note: "left side",
	})
	require.NoError(t, err)

	assert.Equal(t, "rec-001", rec.ID)
	assert.Equal(t, int64(1700000001000), rec.CreatedTime)
	assert.Equal(t, "Bearer t-xyz", fake.lastAuth)

	fields, ok := fake.lastCreBody["fields"].(map[string]any)
	require.True(t, ok, "payload missing fields: %v", fake.lastCreBody)
	assert.Equal(t, "喂奶", fields["记录"])
	assert.Equal(t, "喂奶", fields["事件类型"])
	assert.Equal(t, float64(1700000000000), fields["时间"])
	assert.Equal(t, "left side", fields["备注"])
}

func TestStore_List_DecodesScalarAndWrappedFields(t *testing.T) {
	store, fake := newTestStore(t)

	// Mezcla deliberada: escalares crudos, objetos {text}/{value} y
	// rich text en fragmentos.
	fake.listResponse = `{
		"code": 0, "msg": "ok",
		"data": {
			"has_more": true,
			"page_token": "pt-2",
			"total": 12,
			"items": [
				{
					"record_id": "rec-a",
					"created_time": 1700000005000,
					"fields": {
						"事件类型": "喂奶",
						"时间": 1700000000000,
						"备注": "plain note"
					}
				},
				{
					"record_id": "rec-b",
					"fields": {
						"事件类型": {"text": "换尿布"},
						"时间": {"value": 1700000002000},
						"备注": [{"type": "text", "text": "rich note"}, {"type": "text", "text": "ignored"}]
					}
				},
				{
					"record_id": "rec-c",
					"fields": {
						"事件类型": {"text": "洗澡"},
						"时间": {"value": [1700000003000]}
					}
				}
			]
		}
	}`

	page, err := store.List(context.Background(), 20, "")
	require.NoError(t, err)

	assert.True(t, page.HasMore)
	assert.Equal(t, "pt-2", page.PageToken)
	assert.Equal(t, 12, page.Total)
	require.Len(t, page.Records, 3)

	assert.Equal(t, records.CareRecord{
		ID: "rec-a", Type: records.EventTypeFeeding,
		Time: 1700000000000, Note: "plain note", CreatedTime: 1700000005000,
	}, page.Records[0])

	assert.Equal(t, records.EventTypeDiaperChange, page.Records[1].Type)
	assert.Equal(t, int64(1700000002000), page.Records[1].Time)
	assert.Equal(t, "rich note", page.Records[1].Note)

	// Nota ausente => "", value como array => primer elemento.
	assert.Equal(t, records.EventTypeBath, page.Records[2].Type)
	assert.Equal(t, int64(1700000003000), page.Records[2].Time)
	assert.Equal(t, "", page.Records[2].Note)
}

func TestStore_List_NonZeroCodeIsStoreError(t *testing.T) {
	store, fake := newTestStore(t)
	fake.listResponse = `{"code": 91402, "msg": "NOTEXIST"}`

	_, err := store.List(context.Background(), 20, "")
	require.Error(t, err)

	var storeErr *records.StoreError
	require.ErrorAs(t, err, &storeErr)
	// El msg upstream viaja tal cual.
	assert.Equal(t, "Feishu API error: NOTEXIST", storeErr.Msg)
}

func TestStore_Delete_NonZeroCodeIsStoreError(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Delete(context.Background(), "rec-bad")
	var storeErr *records.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Contains(t, storeErr.Msg, "RecordIdNotFound")
}

func TestStore_TokenIsCachedAcrossCalls(t *testing.T) {
	store, fake := newTestStore(t)
	fake.listResponse = `{"code": 0, "msg": "ok", "data": {"items": []}}`

	_, err := store.List(context.Background(), 20, "")
	require.NoError(t, err)
	_, err = store.List(context.Background(), 20, "")
	require.NoError(t, err)

	assert.Equal(t, int64(1), fake.tokenCalls.Load())
}
