package router

import (
	"encoding/json"
	"net/http"
	"strings"

	"baby-care-log/internal/ports/auth"
)

type loginRequest struct {
	Code string `json:"code"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	Role    auth.Role `json:"role"`
}

// loginHandler godoc
// @Summary Validar código de invitación
// @Description Valida el código y devuelve el rol (editor o viewer). No crea sesión: el cliente guarda el código y lo manda como Bearer en cada request.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Código de invitación"
// @Success 200 {object} loginResponse
// @Failure 400 {object} map[string]string "código faltante"
// @Failure 401 {object} map[string]string "código inválido"
// @Router /auth/login [post]
func loginHandler(resolver auth.RoleResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Code) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "请输入邀请码"})
			return
		}

		role, ok := resolver.Resolve(req.Code)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "邀请码无效"})
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{Success: true, Role: role})
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
