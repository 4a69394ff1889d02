package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/poetry/internal/domain"
	"github.com/MrSnakeDoc/poetry/internal/logger"
)

// Snapshots reads and writes the whole collection under KeyData.
type Snapshots struct {
	kv  KV
	log logger.Logger
}

func NewSnapshots(kv KV, log logger.Logger) *Snapshots {
	return &Snapshots{kv: kv, log: log}
}

// Save serialises poems as a JSON array and overwrites the stored snapshot.
func (s *Snapshots) Save(ctx context.Context, poems []domain.Poem) error {
	if poems == nil {
		poems = []domain.Poem{}
	}
	data, err := json.Marshal(poems)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, KeyData, string(data)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load returns the stored collection. ok is false when nothing usable is
// stored: a missing key, an empty value, JSON null, or anything that is not
// a JSON array of records. Those cases never produce an error; err is only
// set when the backend itself cannot be read.
func (s *Snapshots) Load(ctx context.Context) (poems []domain.Poem, ok bool, err error) {
	raw, err := s.kv.Get(ctx, KeyData)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load snapshot: %w", err)
	}

	poems, ok = decodeSnapshot(raw)
	if !ok && strings.TrimSpace(raw) != "" {
		s.log.Warn("stored snapshot is malformed, treating as absent",
			logger.String("key", KeyData),
			logger.Int("bytes", len(raw)))
	}
	return poems, ok, nil
}

func decodeSnapshot(raw string) ([]domain.Poem, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}
	var poems []domain.Poem
	if err := json.Unmarshal([]byte(raw), &poems); err != nil {
		return nil, false
	}
	// "null" decodes without error into a nil slice.
	if poems == nil {
		return nil, false
	}
	return poems, true
}
