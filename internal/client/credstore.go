package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"baby-care-log/internal/ports/auth"
)

// authFileName es el mismo nombre fijo que usaba el cliente web en
// localStorage; acá es un archivo en el config dir del usuario.
const authFileName = "uu_auth.json"

// Credentials es lo que se persiste: el código y el rol resuelto.
type Credentials struct {
	Code string    `json:"code"`
	Role auth.Role `json:"role"`
}

// CredStore guarda/carga las credenciales del CLI.
type CredStore struct {
	path string
}

// NewCredStore usa el config dir del usuario (~/.config/baby-care-log).
func NewCredStore() (*CredStore, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &CredStore{path: filepath.Join(base, "baby-care-log", authFileName)}, nil
}

// NewCredStoreAt permite fijar el path (tests).
func NewCredStoreAt(path string) *CredStore {
	return &CredStore{path: path}
}

// Load devuelve ok=false si no hay credenciales guardadas o no se
// pueden parsear (mismo comportamiento tolerante que el cliente web).
func (s *CredStore) Load() (Credentials, bool) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return Credentials{}, false
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil || creds.Code == "" {
		return Credentials{}, false
	}
	return creds, true
}

func (s *CredStore) Save(creds Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	raw, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	// Solo lectura para el dueño: es una credencial.
	return os.WriteFile(s.path, raw, 0o600)
}

func (s *CredStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
