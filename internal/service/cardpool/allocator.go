// Package cardpool hands out loyalty card numbers from a finite seed pool,
// synthesizing new ones once the pool runs dry. A number is never issued
// twice.
package cardpool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"maqha/internal/domain"
	"maqha/internal/kvstore"
)

const stateKey = "cardpool:state"

// synthBase sits well beyond the seed range so synthesized numbers can never
// collide with seeded ones.
const synthBase = 6000

// seedNumbers is the fixed initial pool. Assign pops from the end, so the
// first registrations receive M-1050 downwards; support staff rely on that
// predictable ordering when reading numbers back to customers.
var seedNumbers = []string{
	"M-1001", "M-1002", "M-1003", "M-1004", "M-1005",
	"M-1006", "M-1007", "M-1008", "M-1009", "M-1010",
	"M-1011", "M-1012", "M-1013", "M-1014", "M-1015",
	"M-1016", "M-1017", "M-1018", "M-1019", "M-1020",
	"M-1021", "M-1022", "M-1023", "M-1024", "M-1025",
	"M-1026", "M-1027", "M-1028", "M-1029", "M-1030",
	"M-1031", "M-1032", "M-1033", "M-1034", "M-1035",
	"M-1036", "M-1037", "M-1038", "M-1039", "M-1040",
	"M-1041", "M-1042", "M-1043", "M-1044", "M-1045",
	"M-1046", "M-1047", "M-1048", "M-1049", "M-1050",
}

type state struct {
	Available []string `json:"available"`
	Assigned  []string `json:"assigned"`
}

type Allocator struct {
	store kvstore.Store
}

func New(store kvstore.Store) *Allocator {
	return &Allocator{store: store}
}

// Assign pops one number from the available pool and records it as assigned.
// When the pool is exhausted it synthesizes a number deterministically from
// the assigned count. Initialization is lazy: the first call seeds the pool.
func (a *Allocator) Assign(ctx context.Context) (string, error) {
	st, err := a.load(ctx)
	if err != nil {
		return "", err
	}

	var card string
	if n := len(st.Available); n > 0 {
		card = st.Available[n-1]
		st.Available = st.Available[:n-1]
	} else {
		card = fmt.Sprintf("M-%04d", synthBase+len(st.Assigned))
	}
	st.Assigned = append(st.Assigned, card)

	if err := a.save(ctx, st); err != nil {
		return "", err
	}
	return card, nil
}

func (a *Allocator) load(ctx context.Context) (*state, error) {
	raw, err := a.store.Get(ctx, stateKey)
	if errors.Is(err, domain.ErrNotFound) {
		return seeded(), nil
	}
	if err != nil {
		return nil, err
	}
	var st state
	if err := json.Unmarshal(raw, &st); err != nil {
		return seeded(), nil
	}
	return &st, nil
}

func (a *Allocator) save(ctx context.Context, st *state) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return a.store.Put(ctx, stateKey, raw)
}

func seeded() *state {
	available := make([]string, len(seedNumbers))
	copy(available, seedNumbers)
	return &state{Available: available}
}
