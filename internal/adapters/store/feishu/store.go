package feishu

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"baby-care-log/internal/domain/records"
)

// Store implementa records.Store contra una tabla de Bitable.
// Una llamada HTTP por operación, sin retry ni idempotency key: un create
// repetido por retry de red puede duplicar fila (riesgo aceptado).
type Store struct {
	client   *Client
	appToken string
	tableID  string
}

func NewStore(client *Client, appToken, tableID string) *Store {
	return &Store{
		client:   client,
		appToken: appToken,
		tableID:  tableID,
	}
}

func (s *Store) recordsPath() string {
	return fmt.Sprintf("/open-apis/bitable/v1/apps/%s/tables/%s/records", s.appToken, s.tableID)
}

// Envelope genérico del Open API: code != 0 es fallo aunque el HTTP sea 200.
type bitableRecord struct {
	RecordID    string                `json:"record_id"`
	Fields      map[string]fieldValue `json:"fields"`
	CreatedTime int64                 `json:"created_time"`
}

type createResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Record bitableRecord `json:"record"`
	} `json:"data"`
}

type listResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Items     []bitableRecord `json:"items"`
		HasMore   bool            `json:"has_more"`
		PageToken string          `json:"page_token"`
		Total     int             `json:"total"`
	} `json:"data"`
}

type deleteResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// storeErr propaga el mensaje upstream tal cual hasta el caller.
func storeErr(msg string) error {
	return &records.StoreError{Msg: "Feishu API error: " + msg}
}

func (s *Store) Create(ctx context.Context, rec records.CareRecord) (records.CareRecord, error) {
	var out createResponse
	err := s.client.do(ctx, http.MethodPost, s.recordsPath(), nil,
		map[string]any{"fields": buildFields(rec)}, &out)
	if err != nil {
		return records.CareRecord{}, err
	}
	if out.Code != 0 {
		return records.CareRecord{}, storeErr(out.Msg)
	}

	// El store solo aporta el id (y created_time); el resto ya lo tenemos.
	rec.ID = out.Data.Record.RecordID
	rec.CreatedTime = out.Data.Record.CreatedTime
	return rec, nil
}

func (s *Store) List(ctx context.Context, limit int, pageToken string) (records.Page, error) {
	query := map[string]string{
		"page_size": strconv.Itoa(limit),
	}
	if pageToken != "" {
		query["page_token"] = pageToken
	}

	var out listResponse
	if err := s.client.do(ctx, http.MethodGet, s.recordsPath(), query, nil, &out); err != nil {
		return records.Page{}, err
	}
	if out.Code != 0 {
		return records.Page{}, storeErr(out.Msg)
	}

	page := records.Page{
		Records:   make([]records.CareRecord, 0, len(out.Data.Items)),
		HasMore:   out.Data.HasMore,
		PageToken: out.Data.PageToken,
		Total:     out.Data.Total,
	}
	for _, item := range out.Data.Items {
		page.Records = append(page.Records, decodeRecord(item))
	}
	return page, nil
}

func (s *Store) Fetch(ctx context.Context, pageSize int) ([]records.CareRecord, error) {
	page, err := s.List(ctx, pageSize, "")
	if err != nil {
		return nil, err
	}
	return page.Records, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	var out deleteResponse
	err := s.client.do(ctx, http.MethodDelete, s.recordsPath()+"/"+id, nil, nil, &out)
	if err != nil {
		return err
	}
	if out.Code != 0 {
		return storeErr(out.Msg)
	}
	return nil
}
