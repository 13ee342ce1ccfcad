package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var ErrAlreadyExists = errors.New("already exists")

type accountSlot struct {
	mu   sync.Mutex
	acc  Account
	gone bool
}

type sessionSlot struct {
	mu   sync.Mutex
	sess Session
	gone bool
}

// MemoryStore keeps everything in process. Each account and session has its
// own mutex. Outside WithinTx it is held for a single read-modify-write;
// inside, from the first touch until the unit of work commits or rolls back,
// so other callers never observe uncommitted state.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*accountSlot
	sessions map[string]*sessionSlot
	byOwner  map[string][]string

	ledgerMu sync.Mutex
	ledger   []LedgerEntry

	now func() time.Time
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		accounts: map[string]*accountSlot{},
		sessions: map[string]*sessionSlot{},
		byOwner:  map[string][]string{},
		now:      time.Now,
	}
}

type journalKey struct{}

// journal is the state of one unit of work. It is used by a single goroutine.
type journal struct {
	held    []*sync.Mutex
	holding map[*sync.Mutex]bool
	undo    []func()
	pending []LedgerEntry
}

func journalFrom(ctx context.Context) *journal {
	j, _ := ctx.Value(journalKey{}).(*journal)
	return j
}

// acquire locks mu for the rest of the unit of work. It reports false when
// mu was already held.
func (j *journal) acquire(mu *sync.Mutex) bool {
	if j.holding[mu] {
		return false
	}
	mu.Lock()
	j.hold(mu)
	return true
}

func (j *journal) hold(mu *sync.Mutex) {
	j.holding[mu] = true
	j.held = append(j.held, mu)
}

func (j *journal) owns(mu *sync.Mutex) bool {
	return j != nil && j.holding[mu]
}

func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
	j.pending = nil
}

func (j *journal) release() {
	for i := len(j.held) - 1; i >= 0; i-- {
		j.held[i].Unlock()
	}
	j.held = nil
	j.holding = nil
}

func (s *MemoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if journalFrom(ctx) != nil {
		return fn(ctx)
	}
	j := &journal{holding: map[*sync.Mutex]bool{}}
	committed := false
	defer func() {
		if !committed {
			j.rollback()
		}
		j.release()
	}()

	if err := fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		return err
	}
	if len(j.pending) > 0 {
		s.ledgerMu.Lock()
		s.ledger = append(s.ledger, j.pending...)
		s.ledgerMu.Unlock()
	}
	committed = true
	return nil
}

func (s *MemoryStore) CreateAccount(ctx context.Context, acc Account) error {
	now := s.now()
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = now
	}
	acc.UpdatedAt = now

	j := journalFrom(ctx)
	slot := &accountSlot{acc: acc}
	if j != nil {
		slot.mu.Lock()
	}
	s.mu.Lock()
	if _, ok := s.accounts[acc.ID]; ok {
		s.mu.Unlock()
		if j != nil {
			slot.mu.Unlock()
		}
		return ErrAlreadyExists
	}
	s.accounts[acc.ID] = slot
	s.mu.Unlock()

	if j != nil {
		j.hold(&slot.mu)
		j.undo = append(j.undo, func() {
			slot.gone = true
			s.mu.Lock()
			delete(s.accounts, acc.ID)
			s.mu.Unlock()
		})
	}
	return nil
}

func (s *MemoryStore) accountSlot(id string) (*accountSlot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot, ok := s.accounts[id]
	return slot, ok
}

func (s *MemoryStore) GetAccount(ctx context.Context, id string) (*Account, error) {
	slot, ok := s.accountSlot(id)
	if !ok {
		return nil, ErrNotFound
	}
	if !journalFrom(ctx).owns(&slot.mu) {
		slot.mu.Lock()
		defer slot.mu.Unlock()
	}
	if slot.gone {
		return nil, ErrNotFound
	}
	acc := slot.acc
	return &acc, nil
}

func (s *MemoryStore) UpdateAccount(ctx context.Context, id string, fn func(*Account) error) (*Account, error) {
	slot, ok := s.accountSlot(id)
	if !ok {
		return nil, ErrNotFound
	}
	j := journalFrom(ctx)
	if j == nil {
		slot.mu.Lock()
		defer slot.mu.Unlock()
	} else if j.acquire(&slot.mu) {
		prev := slot.acc
		j.undo = append(j.undo, func() { slot.acc = prev })
	}
	if slot.gone {
		return nil, ErrNotFound
	}

	next := slot.acc
	if err := fn(&next); err != nil {
		return nil, err
	}
	next.ID = id
	next.UpdatedAt = s.now()
	slot.acc = next
	out := next
	return &out, nil
}

func (s *MemoryStore) CreateSession(ctx context.Context, sess Session) error {
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = s.now()
	}
	j := journalFrom(ctx)
	slot := &sessionSlot{sess: sess.Clone()}
	if j != nil {
		slot.mu.Lock()
	}
	s.mu.Lock()
	_, dup := s.sessions[sess.ID]
	_, owner := s.accounts[sess.AccountID]
	if dup || !owner {
		s.mu.Unlock()
		if j != nil {
			slot.mu.Unlock()
		}
		if dup {
			return ErrAlreadyExists
		}
		return ErrNotFound
	}
	s.sessions[sess.ID] = slot
	s.byOwner[sess.AccountID] = append(s.byOwner[sess.AccountID], sess.ID)
	s.mu.Unlock()

	if j != nil {
		j.hold(&slot.mu)
		j.undo = append(j.undo, func() {
			slot.gone = true
			s.mu.Lock()
			delete(s.sessions, sess.ID)
			ids := s.byOwner[sess.AccountID]
			for i, id := range ids {
				if id == sess.ID {
					s.byOwner[sess.AccountID] = append(ids[:i:i], ids[i+1:]...)
					break
				}
			}
			s.mu.Unlock()
		})
	}
	return nil
}

func (s *MemoryStore) sessionSlot(id string) (*sessionSlot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot, ok := s.sessions[id]
	return slot, ok
}

func (s *MemoryStore) GetSession(ctx context.Context, id string) (*Session, error) {
	slot, ok := s.sessionSlot(id)
	if !ok {
		return nil, ErrNotFound
	}
	if !journalFrom(ctx).owns(&slot.mu) {
		slot.mu.Lock()
		defer slot.mu.Unlock()
	}
	if slot.gone {
		return nil, ErrNotFound
	}
	out := slot.sess.Clone()
	return &out, nil
}

func (s *MemoryStore) UpdateSession(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	slot, ok := s.sessionSlot(id)
	if !ok {
		return nil, ErrNotFound
	}
	j := journalFrom(ctx)
	if j == nil {
		slot.mu.Lock()
		defer slot.mu.Unlock()
	} else if j.acquire(&slot.mu) {
		prev := slot.sess.Clone()
		j.undo = append(j.undo, func() { slot.sess = prev })
	}
	if slot.gone {
		return nil, ErrNotFound
	}

	next := slot.sess.Clone()
	if err := fn(&next); err != nil {
		return nil, err
	}
	next.ID = id
	slot.sess = next
	out := next.Clone()
	return &out, nil
}

func (s *MemoryStore) ListSessionsByAccount(ctx context.Context, accountID string, limit, offset int) ([]Session, error) {
	limit, offset = clampPage(limit, offset)
	s.mu.RLock()
	ids := append([]string(nil), s.byOwner[accountID]...)
	s.mu.RUnlock()

	// ULIDs sort by creation time; newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	if offset >= len(ids) {
		return []Session{}, nil
	}
	ids = ids[offset:]
	if len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]Session, 0, len(ids))
	for _, id := range ids {
		sess, err := s.GetSession(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, *sess)
	}
	return out, nil
}

// AppendLedgerEntry inside WithinTx buffers the entry until commit.
func (s *MemoryStore) AppendLedgerEntry(ctx context.Context, e LedgerEntry) error {
	if e.ID == "" {
		e.ID = NewID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	if j := journalFrom(ctx); j != nil {
		j.pending = append(j.pending, e)
		return nil
	}
	s.ledgerMu.Lock()
	s.ledger = append(s.ledger, e)
	s.ledgerMu.Unlock()
	return nil
}

func (s *MemoryStore) ListLedgerEntries(_ context.Context, f LedgerFilter, limit, offset int) ([]LedgerEntry, error) {
	limit, offset = clampPage(limit, offset)
	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()

	out := make([]LedgerEntry, 0)
	skipped := 0
	for i := len(s.ledger) - 1; i >= 0 && len(out) < limit; i-- {
		e := s.ledger[i]
		if f.AccountID != "" && e.AccountID != f.AccountID {
			continue
		}
		if f.RefID != "" && e.RefID != f.RefID {
			continue
		}
		if f.From != nil && e.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && e.CreatedAt.After(*f.To) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() {}
