// Package memory implementa los puertos de lectura en memoria. Lo usan los tests
// y el modo DATA_SOURCE=csv, donde los datos se cargan una vez desde un archivo exportado.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var (
	_ repository.ResidentRepository   = (*Store)(nil)
	_ repository.MedicationRepository = (*Store)(nil)
)

// Store residentes y medicamentos en memoria, seguro para uso concurrente.
type Store struct {
	mu          sync.RWMutex
	residents   map[string]entity.Resident
	medications map[string]entity.Medication
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		residents:   make(map[string]entity.Resident),
		medications: make(map[string]entity.Medication),
	}
}

// PutResident agrega o reemplaza un residente.
func (s *Store) PutResident(r entity.Resident) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.residents[r.ID] = r
}

// PutMedication agrega o reemplaza un medicamento.
func (s *Store) PutMedication(m entity.Medication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.medications[m.ID] = m
}

// Replace reemplaza todo el contenido (recarga del archivo de datos).
func (s *Store) Replace(residents []entity.Resident, medications []entity.Medication) {
	rs := make(map[string]entity.Resident, len(residents))
	for _, r := range residents {
		rs[r.ID] = r
	}
	ms := make(map[string]entity.Medication, len(medications))
	for _, m := range medications {
		ms[m.ID] = m
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.residents = rs
	s.medications = ms
}

// GetByID devuelve el residente o nil si no existe.
func (s *Store) GetByID(ctx context.Context, id string) (*entity.Resident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.residents[strings.TrimSpace(id)]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// List residentes ordenados por nombre.
func (s *Store) List(ctx context.Context) ([]*entity.Resident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Resident, 0, len(s.residents))
	for _, r := range s.residents {
		r := r
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListByResident medicamentos del residente, activos y suspendidos.
func (s *Store) ListByResident(ctx context.Context, residentID string) ([]*entity.Medication, error) {
	return s.filter(func(m entity.Medication) bool { return m.ResidentID == residentID }), nil
}

// ListActive medicamentos activos de todos los residentes.
func (s *Store) ListActive(ctx context.Context) ([]*entity.Medication, error) {
	return s.filter(func(m entity.Medication) bool { return m.IsActive() }), nil
}

func (s *Store) filter(keep func(entity.Medication) bool) []*entity.Medication {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Medication, 0)
	for _, m := range s.medications {
		if !keep(m) {
			continue
		}
		m := m
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ResidentID != out[j].ResidentID {
			return out[i].ResidentID < out[j].ResidentID
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
