package borrowermock

import (
	"context"

	domain "creditpath-backend/internal/domain/borrower"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo serves lookups from an in-memory map; Err, when set, fails every call.
type Repo struct {
	ByID map[uint64]domain.Borrower
	Err  error
}

func (m *Repo) CreateBatch(_ context.Context, bs []domain.Borrower) error {
	if m.Err != nil {
		return m.Err
	}
	if m.ByID == nil {
		m.ByID = make(map[uint64]domain.Borrower, len(bs))
	}
	for _, b := range bs {
		m.ByID[b.ID] = b
	}
	return nil
}

func (m *Repo) GetByID(_ context.Context, id uint64) (*domain.Borrower, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	b, ok := m.ByID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (m *Repo) ListAll(context.Context) ([]domain.Borrower, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]domain.Borrower, 0, len(m.ByID))
	for _, b := range m.ByID {
		out = append(out, b)
	}
	return out, nil
}

func (m *Repo) ExistingIDs(_ context.Context, ids []uint64) (map[uint64]struct{}, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[uint64]struct{})
	for _, id := range ids {
		if _, ok := m.ByID[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out, nil
}
