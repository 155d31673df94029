package postgres

import (
	"context"
	"fmt"

	"github.com/uips-online/edutrack-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contadores atómicos sobre la tabla counters (usable con pool o tx).
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y lee el contador en una sola sentencia. El upsert con
// RETURNING hace el increment-and-fetch atómico en el servidor: dos llamadas
// concurrentes sobre el mismo nombre jamás reciben el mismo número.
func (r *SequenceRepo) Next(name string) (int64, error) {
	const query = `
		INSERT INTO counters (name, seq) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
		RETURNING seq`
	var seq int64
	if err := r.q.QueryRow(context.Background(), query, name).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence %q: %w", name, err)
	}
	return seq, nil
}
