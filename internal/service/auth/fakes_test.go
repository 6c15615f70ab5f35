package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/openmargin/annotations-backend/internal/domain"
)

// memTokenRepo is an in-memory token store with the same semantics as the
// PostgreSQL repository: keyed hash lookups, not-found on zero-row deletes,
// unique value hashes.
type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]domain.Token
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[uuid.UUID]domain.Token)}
}

func (r *memTokenRepo) Create(_ context.Context, token *domain.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.AccessHash == token.AccessHash || t.RefreshHash == token.RefreshHash {
			return domain.ErrAlreadyExists
		}
	}
	r.tokens[token.ID] = *token
	return nil
}

func (r *memTokenRepo) GetByAccessHash(_ context.Context, accessHash string) (*domain.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.AccessHash == accessHash {
			tok := t
			return &tok, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memTokenRepo) GetByRefreshHash(_ context.Context, refreshHash string) (*domain.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.RefreshHash == refreshHash {
			tok := t
			return &tok, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memTokenRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tokens, id)
	return nil
}

func (r *memTokenRepo) DeleteByUserAuthority(_ context.Context, userID uuid.UUID, authority string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.tokens {
		if t.UserID == userID && t.Authority == authority {
			delete(r.tokens, id)
		}
	}
	return nil
}

func (r *memTokenRepo) DeleteAllByUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, id)
		}
	}
	return nil
}

func (r *memTokenRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

// memDirectory is an in-memory user/group directory.
type memDirectory struct {
	users  map[uuid.UUID]domain.User
	groups map[uuid.UUID][]uuid.UUID
}

func newMemDirectory() *memDirectory {
	return &memDirectory{
		users:  make(map[uuid.UUID]domain.User),
		groups: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (d *memDirectory) addUser(user domain.User, groupIDs ...uuid.UUID) {
	d.users[user.ID] = user
	d.groups[user.ID] = groupIDs
}

func (d *memDirectory) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (d *memDirectory) GetByLogin(_ context.Context, login, authority string) (*domain.User, error) {
	for _, u := range d.users {
		if u.Login == login && u.Authority == authority {
			usr := u
			return &usr, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (d *memDirectory) GroupsOfUser(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return d.groups[userID], nil
}

// passTx runs the callback without a real transaction; the in-memory repos
// apply each mutation atomically on their own.
type passTx struct{}

func (passTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
