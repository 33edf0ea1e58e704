package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"baby-care-log/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/records", createRecordHandler(svc))
	r.Get("/records", listRecordsHandler(svc))
	r.Get("/records/latest-feed", latestFeedHandler(svc))
	r.Delete("/records/{id}", deleteRecordHandler(svc))
}

// Mensajes de auth que el cliente muestra tal cual (copy del producto).
const (
	msgUnauthorized = "未授权，请输入邀请码"
	msgEditorOnly   = "仅编辑权限可执行此操作"
)

// createRecordRequest es el cuerpo para registrar una actividad.
type createRecordRequest struct {
	Type EventType `json:"type" enums:"FEEDING,DIAPER_CHANGE,BOWEL_MOVEMENT,BATH"`
	Time int64     `json:"time,omitempty"` // epoch millis; omitido => ahora
	Note string    `json:"note,omitempty"`
}

// recordResponse representa un registro devuelto por la API.
type recordResponse struct {
	RecordID    string    `json:"record_id"`
	Type        EventType `json:"type"`
	Time        int64     `json:"time"`
	Note        string    `json:"note"`
	CreatedTime int64     `json:"created_time,omitempty"`
}

type createRecordResponse struct {
	Success bool           `json:"success"`
	Record  recordResponse `json:"record"`
}

type listRecordsResponse struct {
	Records   []recordResponse `json:"records"`
	HasMore   bool             `json:"hasMore"`
	PageToken string           `json:"pageToken,omitempty"`
	Total     int              `json:"total,omitempty"`
}

// latestFeedResponse usa punteros en record/minutesSince: sin tomas
// registradas ambos van como null (el +infinito no viaja en JSON).
type latestFeedResponse struct {
	Record       *recordResponse `json:"record"`
	MinutesSince *int64          `json:"minutesSince"`
	NextFeedIn   int64           `json:"nextFeedIn"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// createRecordHandler godoc
// @Summary Registrar actividad
// @Description Crea un registro de cuidado (toma, cambio de pañal, caca, baño). Requiere rol editor. El time es epoch millis; si se omite, se usa ahora.
// @Tags records
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <código de invitación>"
// @Param payload body createRecordRequest true "Datos del registro"
// @Success 201 {object} createRecordResponse
// @Failure 400 {object} errorResponse "type fuera del set permitido"
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse "rol viewer"
// @Failure 500 {object} errorResponse "error del store externo"
// @Router /records [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		if !claims.CanEdit() {
			writeError(w, http.StatusForbidden, msgEditorOnly)
			return
		}

		var req createRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		rec, err := svc.Create(r.Context(), CreateInput{
			Type: req.Type,
			Time: req.Time,
			Note: req.Note,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidType) {
				writeError(w, http.StatusBadRequest, "type must be one of: "+joinTypes())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusCreated, createRecordResponse{
			Success: true,
			Record:  toRecordResponse(rec),
		})
	}
}

// listRecordsHandler godoc
// @Summary Listar registros
// @Description Lista registros ordenados del más nuevo al más viejo (el orden de paginación del store no se respeta). Cualquier rol autenticado.
// @Tags records
// @Produce json
// @Param Authorization header string true "Bearer <código de invitación>"
// @Param limit query int false "Máximo de registros (1-100). Por defecto 20"
// @Param page_token query string false "Token de la página siguiente"
// @Success 200 {object} listRecordsResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse "error del store externo"
// @Router /records [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}
		pageToken := r.URL.Query().Get("page_token")

		page, err := svc.List(r.Context(), limit, pageToken)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		out := listRecordsResponse{
			Records:   make([]recordResponse, 0, len(page.Records)),
			HasMore:   page.HasMore,
			PageToken: page.PageToken,
			Total:     page.Total,
		}
		for _, rec := range page.Records {
			out.Records = append(out.Records, toRecordResponse(rec))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// latestFeedHandler godoc
// @Summary Última toma
// @Description Devuelve la última toma registrada, los minutos transcurridos y cuántos faltan para la próxima (negativo = atrasada). Sin tomas registradas, record y minutesSince van en null.
// @Tags records
// @Produce json
// @Param Authorization header string true "Bearer <código de invitación>"
// @Success 200 {object} latestFeedResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse "error del store externo"
// @Router /records/latest-feed [get]
func latestFeedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		lf, err := svc.LatestFeed(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		out := latestFeedResponse{NextFeedIn: lf.NextFeedIn}
		if lf.Record != nil {
			rr := toRecordResponse(*lf.Record)
			out.Record = &rr
			out.MinutesSince = &lf.MinutesSince
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// deleteRecordHandler godoc
// @Summary Borrar registro
// @Description Borra un registro por id. Requiere rol editor. Sin soft-delete: el borrado es inmediato e irreversible desde este sistema.
// @Tags records
// @Produce json
// @Param Authorization header string true "Bearer <código de invitación>"
// @Param id path string true "ID del registro"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse "rol viewer"
// @Failure 500 {object} errorResponse "error del store externo"
// @Router /records/{id} [delete]
func deleteRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		if !claims.CanEdit() {
			writeError(w, http.StatusForbidden, msgEditorOnly)
			return
		}

		id := chi.URLParam(r, "id")
		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func toRecordResponse(rec CareRecord) recordResponse {
	return recordResponse{
		RecordID:    rec.ID,
		Type:        rec.Type,
		Time:        rec.Time,
		Note:        rec.Note,
		CreatedTime: rec.CreatedTime,
	}
}

func joinTypes() string {
	all := AllEventTypes()
	parts := make([]string, 0, len(all))
	for _, t := range all {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ", ")
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
