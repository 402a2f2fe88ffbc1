// Package storage implementa el almacenamiento durable local de la sesión
// (equivalente a un key-value persistente entre ejecuciones).
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStorage guarda las claves en un archivo JSON. Cada escritura reemplaza el
// archivo completo mediante un rename atómico.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage construye el almacenamiento sobre path; el directorio se crea en la primera escritura.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Get devuelve el valor de key; false si no existe.
func (s *FileStorage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

// Set guarda value bajo key.
func (s *FileStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.read()
	if err != nil {
		return err
	}
	data[key] = value
	return s.write(data)
}

// Delete elimina las claves indicadas; no falla si no existen.
func (s *FileStorage) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.read()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(data, k)
	}
	return s.write(data)
}

func (s *FileStorage) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: leer %s: %w", s.path, err)
	}
	data := map[string]string{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("storage: archivo corrupto %s: %w", s.path, err)
	}
	return data, nil
}

func (s *FileStorage) write(data map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("storage: crear directorio: %w", err)
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: serializar: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("storage: escribir: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("storage: reemplazar %s: %w", s.path, err)
	}
	return nil
}
