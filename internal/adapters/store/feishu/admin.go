package feishu

import (
	"context"
	"fmt"
	"net/http"

	"baby-care-log/internal/domain/records"
)

// Admin provisiona la app/tabla de Bitable: deja la tabla con los cuatro
// campos que el Store espera y limpia los defaults que crea Feishu.
type Admin struct {
	client *Client
}

func NewAdmin(client *Client) *Admin {
	return &Admin{client: client}
}

// SetupResult son los identificadores que van al .env después del setup.
type SetupResult struct {
	AppToken string
	TableID  string
	URL      string
}

// Tipos de campo de Bitable (numéricos en el API).
const (
	fieldTypeText        = 1
	fieldTypeSingleSel   = 3
	fieldTypeDateTime    = 5
	fieldTypeCreatedTime = 1001
)

type fieldOption struct {
	Name  string `json:"name"`
	Color int    `json:"color"`
}

type fieldProperty struct {
	Options []fieldOption `json:"options,omitempty"`
}

type fieldSpec struct {
	FieldName string         `json:"field_name"`
	Type      int            `json:"type"`
	Property  *fieldProperty `json:"property,omitempty"`
}

// Setup crea la app, renombra el campo primario, borra campos y filas
// default, y crea los campos de la tabla. Cada paso reporta por el
// callback log (el CLI imprime el progreso).
func (a *Admin) Setup(ctx context.Context, appName string, log func(msg string)) (SetupResult, error) {
	if log == nil {
		log = func(string) {}
	}

	appToken, appURL, err := a.createApp(ctx, appName)
	if err != nil {
		return SetupResult{}, err
	}
	log(fmt.Sprintf("app creada: %s", appToken))

	tableID, err := a.defaultTable(ctx, appToken)
	if err != nil {
		return SetupResult{}, err
	}
	log(fmt.Sprintf("tabla default: %s", tableID))

	if err := a.resetDefaultFields(ctx, appToken, tableID); err != nil {
		return SetupResult{}, err
	}
	log("campo primario renombrado a " + fieldPrimary)

	if n, err := a.cleanDefaultRows(ctx, appToken, tableID); err == nil && n > 0 {
		log(fmt.Sprintf("%d filas default limpiadas", n))
	}

	for _, spec := range tableFieldSpecs() {
		if err := a.createField(ctx, appToken, tableID, spec); err != nil {
			// Un campo que falla no aborta el resto del setup.
			log(fmt.Sprintf("campo %s: %v", spec.FieldName, err))
			continue
		}
		log("campo creado: " + spec.FieldName)
	}

	return SetupResult{AppToken: appToken, TableID: tableID, URL: appURL}, nil
}

// tableFieldSpecs define los campos custom; el color de cada opción
// del single-select sigue su índice en el set de tipos.
func tableFieldSpecs() []fieldSpec {
	options := make([]fieldOption, 0, len(typeToOption))
	for i, t := range records.AllEventTypes() {
		options = append(options, fieldOption{Name: typeToOption[t], Color: i})
	}

	return []fieldSpec{
		{FieldName: fieldType, Type: fieldTypeSingleSel, Property: &fieldProperty{Options: options}},
		{FieldName: fieldTime, Type: fieldTypeDateTime},
		{FieldName: fieldNote, Type: fieldTypeText},
		{FieldName: fieldCreated, Type: fieldTypeCreatedTime},
	}
}

func (a *Admin) createApp(ctx context.Context, name string) (token, url string, err error) {
	var out struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
		Data struct {
			App struct {
				AppToken string `json:"app_token"`
				URL      string `json:"url"`
			} `json:"app"`
		} `json:"data"`
	}

	err = a.client.do(ctx, http.MethodPost, "/open-apis/bitable/v1/apps", nil,
		map[string]string{"name": name}, &out)
	if err != nil {
		return "", "", err
	}
	if out.Code != 0 {
		return "", "", storeErr(out.Msg)
	}
	return out.Data.App.AppToken, out.Data.App.URL, nil
}

func (a *Admin) defaultTable(ctx context.Context, appToken string) (string, error) {
	var out struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
		Data struct {
			Items []struct {
				TableID string `json:"table_id"`
			} `json:"items"`
		} `json:"data"`
	}

	path := fmt.Sprintf("/open-apis/bitable/v1/apps/%s/tables", appToken)
	if err := a.client.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return "", err
	}
	if out.Code != 0 {
		return "", storeErr(out.Msg)
	}
	if len(out.Data.Items) == 0 {
		return "", storeErr("app has no default table")
	}
	return out.Data.Items[0].TableID, nil
}

type tableField struct {
	FieldID   string `json:"field_id"`
	FieldName string `json:"field_name"`
	IsPrimary bool   `json:"is_primary"`
}

// resetDefaultFields renombra el campo primario y borra los demás
// campos que vienen por default en la tabla nueva.
func (a *Admin) resetDefaultFields(ctx context.Context, appToken, tableID string) error {
	var out struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
		Data struct {
			Items []tableField `json:"items"`
		} `json:"data"`
	}

	base := fmt.Sprintf("/open-apis/bitable/v1/apps/%s/tables/%s/fields", appToken, tableID)
	if err := a.client.do(ctx, http.MethodGet, base, nil, nil, &out); err != nil {
		return err
	}
	if out.Code != 0 {
		return storeErr(out.Msg)
	}

	for _, f := range out.Data.Items {
		if f.IsPrimary {
			var upd struct {
				Code int    `json:"code"`
				Msg  string `json:"msg"`
			}
			err := a.client.do(ctx, http.MethodPut, base+"/"+f.FieldID, nil,
				fieldSpec{FieldName: fieldPrimary, Type: fieldTypeText}, &upd)
			if err != nil {
				return err
			}
			if upd.Code != 0 {
				return storeErr(upd.Msg)
			}
			continue
		}

		// Borrado best-effort: si el campo default no se puede borrar, queda.
		var del struct {
			Code int `json:"code"`
		}
		_ = a.client.do(ctx, http.MethodDelete, base+"/"+f.FieldID, nil, nil, &del)
	}

	return nil
}

// cleanDefaultRows borra las filas vacías que trae la tabla nueva.
func (a *Admin) cleanDefaultRows(ctx context.Context, appToken, tableID string) (int, error) {
	recordsPath := fmt.Sprintf("/open-apis/bitable/v1/apps/%s/tables/%s/records", appToken, tableID)

	var out listResponse
	err := a.client.do(ctx, http.MethodGet, recordsPath, map[string]string{"page_size": "100"}, nil, &out)
	if err != nil {
		return 0, err
	}
	if out.Code != 0 {
		return 0, storeErr(out.Msg)
	}

	ids := make([]string, 0, len(out.Data.Items))
	for _, item := range out.Data.Items {
		if item.RecordID != "" {
			ids = append(ids, item.RecordID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var del struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	err = a.client.do(ctx, http.MethodPost, recordsPath+"/batch_delete", nil,
		map[string][]string{"records": ids}, &del)
	if err != nil {
		return 0, err
	}
	if del.Code != 0 {
		return 0, storeErr(del.Msg)
	}

	return len(ids), nil
}

func (a *Admin) createField(ctx context.Context, appToken, tableID string, spec fieldSpec) error {
	var out struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}

	path := fmt.Sprintf("/open-apis/bitable/v1/apps/%s/tables/%s/fields", appToken, tableID)
	if err := a.client.do(ctx, http.MethodPost, path, nil, spec, &out); err != nil {
		return err
	}
	if out.Code != 0 {
		return storeErr(out.Msg)
	}
	return nil
}
