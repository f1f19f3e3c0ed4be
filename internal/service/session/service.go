// Package session issues the stable anonymous identifier that keys a guest's
// cart. The id lives in the injected key-value store for the lifetime of that
// store, mirroring the local-storage behavior of the web client.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"maqha/internal/domain"
	"maqha/internal/kvstore"
)

const storageKey = "session:id"

type Service struct {
	store kvstore.Store
	now   func() time.Time
}

func New(store kvstore.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// GetOrCreate returns the persisted session id, minting and persisting a new
// one on first use. Repeated calls against the same store return the same id.
func (s *Service) GetOrCreate(ctx context.Context) (string, error) {
	raw, err := s.store.Get(ctx, storageKey)
	if err == nil {
		if id := strings.TrimSpace(string(raw)); id != "" {
			return id, nil
		}
		// An empty stored value is corrupted state; fall through and remint.
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	id, err := s.Mint()
	if err != nil {
		return "", err
	}
	if err := s.store.Put(ctx, storageKey, []byte(id)); err != nil {
		return "", err
	}
	return id, nil
}

// Mint composes a fresh session id from the current time and a random suffix.
// The time component keeps ids roughly sortable; the suffix makes collisions
// across devices practically impossible.
func (s *Service) Mint() (string, error) {
	var buf [6]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return fmt.Sprintf("S%d-%s", s.now().UnixMilli(), hex.EncodeToString(buf[:])), nil
}
