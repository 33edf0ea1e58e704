package codes

import (
	"strings"

	"baby-care-log/internal/ports/auth"
)

// Resolver implementa auth.RoleResolver comparando contra los dos
// códigos compartidos configurados por env. Chequeo puro y stateless;
// el rol se deriva del código en cada request.
type Resolver struct {
	editorCode string
	viewerCode string
}

func NewResolver(editorCode, viewerCode string) *Resolver {
	return &Resolver{
		editorCode: strings.TrimSpace(editorCode),
		viewerCode: strings.TrimSpace(viewerCode),
	}
}

func (r *Resolver) Resolve(code string) (auth.Role, bool) {
	if r == nil {
		return "", false
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}

	switch code {
	case r.editorCode:
		return auth.RoleEditor, true
	case r.viewerCode:
		return auth.RoleViewer, true
	default:
		return "", false
	}
}
