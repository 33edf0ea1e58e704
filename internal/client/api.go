package client

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"baby-care-log/internal/domain/records"
	"baby-care-log/internal/platform/httpclient"
	"baby-care-log/internal/ports/auth"
)

// APIClient habla con el backend y adjunta el código de invitación como
// Bearer en cada request (igual que hacía el cliente web).
type APIClient struct {
	http *httpclient.Client
	code string
}

func NewAPIClient(baseURL string, timeout time.Duration) (*APIClient, error) {
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &APIClient{http: hc}, nil
}

// SetCode define el código que viaja como Bearer.
func (c *APIClient) SetCode(code string) { c.code = code }

func (c *APIClient) headers() map[string]string {
	if c.code == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + c.code}
}

// apiError extrae el {error} del body si el server lo mandó.
func apiError(err error) error {
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) && httpErr.Body != "" {
		return errors.New(httpErr.Body)
	}
	return err
}

type wireRecord struct {
	RecordID    string            `json:"record_id"`
	Type        records.EventType `json:"type"`
	Time        int64             `json:"time"`
	Note        string            `json:"note"`
	CreatedTime int64             `json:"created_time"`
}

func (w wireRecord) toDomain() records.CareRecord {
	return records.CareRecord{
		ID:          w.RecordID,
		Type:        w.Type,
		Time:        w.Time,
		Note:        w.Note,
		CreatedTime: w.CreatedTime,
	}
}

// Login valida el código; si es válido lo deja seteado para los
// requests siguientes.
func (c *APIClient) Login(ctx context.Context, code string) (auth.Role, error) {
	var out struct {
		Success bool      `json:"success"`
		Role    auth.Role `json:"role"`
	}
	err := c.http.DoJSON(ctx, http.MethodPost, "/api/auth/login", nil, nil,
		map[string]string{"code": code}, &out)
	if err != nil {
		return "", apiError(err)
	}

	c.code = code
	return out.Role, nil
}

// CreateRecord crea un registro. time en epoch millis; 0 => el server usa ahora.
func (c *APIClient) CreateRecord(ctx context.Context, t records.EventType, note string, timeMs int64) (records.CareRecord, error) {
	body := map[string]any{"type": t}
	if note != "" {
		body["note"] = note
	}
	if timeMs > 0 {
		body["time"] = timeMs
	}

	var out struct {
		Success bool       `json:"success"`
		Record  wireRecord `json:"record"`
	}
	err := c.http.DoJSON(ctx, http.MethodPost, "/api/records", nil, c.headers(), body, &out)
	if err != nil {
		return records.CareRecord{}, apiError(err)
	}
	return out.Record.toDomain(), nil
}

// ListRecords trae una página ya ordenada del más nuevo al más viejo.
func (c *APIClient) ListRecords(ctx context.Context, limit int) ([]records.CareRecord, error) {
	query := map[string]string{}
	if limit > 0 {
		query["limit"] = strconv.Itoa(limit)
	}

	var out struct {
		Records []wireRecord `json:"records"`
		HasMore bool         `json:"hasMore"`
	}
	err := c.http.DoJSON(ctx, http.MethodGet, "/api/records", query, c.headers(), nil, &out)
	if err != nil {
		return nil, apiError(err)
	}

	recs := make([]records.CareRecord, 0, len(out.Records))
	for _, w := range out.Records {
		recs = append(recs, w.toDomain())
	}
	return recs, nil
}

// LatestFeedResult refleja el wire format: record y minutesSince en nil
// cuando no hay ninguna toma registrada.
type LatestFeedResult struct {
	Record       *records.CareRecord
	MinutesSince *int64
	NextFeedIn   int64
}

func (c *APIClient) LatestFeed(ctx context.Context) (LatestFeedResult, error) {
	var out struct {
		Record       *wireRecord `json:"record"`
		MinutesSince *int64      `json:"minutesSince"`
		NextFeedIn   int64       `json:"nextFeedIn"`
	}
	err := c.http.DoJSON(ctx, http.MethodGet, "/api/records/latest-feed", nil, c.headers(), nil, &out)
	if err != nil {
		return LatestFeedResult{}, apiError(err)
	}

	res := LatestFeedResult{
		MinutesSince: out.MinutesSince,
		NextFeedIn:   out.NextFeedIn,
	}
	if out.Record != nil {
		rec := out.Record.toDomain()
		res.Record = &rec
	}
	return res, nil
}

func (c *APIClient) DeleteRecord(ctx context.Context, id string) error {
	err := c.http.DoJSON(ctx, http.MethodDelete, "/api/records/"+id, nil, c.headers(), nil, nil)
	if err != nil {
		return apiError(err)
	}
	return nil
}
