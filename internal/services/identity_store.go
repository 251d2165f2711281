package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"artisan/internal/catalog"
	"artisan/internal/models"
	"artisan/internal/validation"
	apperrors "artisan/pkg/errors"
	"artisan/pkg/logger"
	"artisan/pkg/storage"

	"github.com/google/uuid"
)

// UserStorageKey is the key holding the current identity snapshot.
const UserStorageKey = "artisan_user"

// ErrNoIdentity is returned by UpdateProfile when nobody is signed in.
var ErrNoIdentity = apperrors.Unauthorized("Not signed in", nil)

// ErrIdentityBusy is returned while another operation of the same store is
// still in its delay.
var ErrIdentityBusy = apperrors.Conflict("IDENTITY_BUSY", "Another account operation is in progress")

// IdentityDelays are the simulated backend latencies.
type IdentityDelays struct {
	Login    time.Duration
	Register time.Duration
	Update   time.Duration
}

// DefaultIdentityDelays match the demo backend.
var DefaultIdentityDelays = IdentityDelays{
	Login:    1000 * time.Millisecond,
	Register: 1200 * time.Millisecond,
	Update:   800 * time.Millisecond,
}

// IdentityStore holds at most one signed-in user and mirrors every change
// to the key-value store. There is no credential check: any well-formed
// email/password pair signs in.
type IdentityStore struct {
	mu       sync.RWMutex
	current  *models.User
	store    *storage.Store
	validate *validation.Validator
	sleep    Sleeper
	delays   IdentityDelays
	loading  atomic.Bool
	newID    func() string
}

// NewIdentityStore hydrates the current identity from store when a
// well-formed snapshot is present.
func NewIdentityStore(ctx context.Context, store *storage.Store, validate *validation.Validator, sleep Sleeper, delays IdentityDelays) *IdentityStore {
	if sleep == nil {
		sleep = RealSleep
	}
	s := &IdentityStore{
		store:    store,
		validate: validate,
		sleep:    sleep,
		delays:   delays,
		newID:    func() string { return uuid.New().String() },
	}

	var stored models.User
	if store.Get(ctx, UserStorageKey, &stored) {
		s.current = &stored
	}
	return s
}

// Current returns a copy of the signed-in user.
func (s *IdentityStore) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return models.User{}, false
	}
	return cloneUser(*s.current), true
}

// Loading reports whether an operation is inside its simulated delay.
func (s *IdentityStore) Loading() bool {
	return s.loading.Load()
}

// Login validates the form, waits, then signs in the demo user under the
// supplied email.
func (s *IdentityStore) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.User{}, err
	}

	if !s.acquire() {
		return models.User{}, ErrIdentityBusy
	}
	defer s.loading.Store(false)
	s.sleep(ctx, s.delays.Login)

	user := cloneUser(catalog.DemoUser)
	user.Email = req.Email
	s.replace(ctx, &user)
	logger.Info("identity: signed in %s", user.Email)
	return cloneUser(user), nil
}

// Register validates the form, waits, then signs in a fresh identity.
func (s *IdentityStore) Register(ctx context.Context, data models.RegisterData) (models.User, error) {
	if err := s.validate.Struct(data); err != nil {
		return models.User{}, err
	}

	if !s.acquire() {
		return models.User{}, ErrIdentityBusy
	}
	defer s.loading.Store(false)
	s.sleep(ctx, s.delays.Register)

	user := models.User{
		ID:        s.newID(),
		Email:     data.Email,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		IsArtisan: data.IsArtisan,
	}
	s.replace(ctx, &user)
	logger.Info("identity: registered %s (%s)", user.Email, user.ID)
	return cloneUser(user), nil
}

// Logout clears the identity in memory and in storage.
func (s *IdentityStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.store.Remove(ctx, UserStorageKey)
}

// UpdateProfile merges the set fields of update onto the current identity.
// It fails with ErrNoIdentity when nobody is signed in.
func (s *IdentityStore) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error) {
	if err := s.validate.Struct(update); err != nil {
		return models.User{}, err
	}

	if !s.acquire() {
		return models.User{}, ErrIdentityBusy
	}
	defer s.loading.Store(false)
	s.sleep(ctx, s.delays.Update)

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return models.User{}, ErrNoIdentity
	}
	updated := update.Apply(*s.current)
	s.current = &updated
	s.mu.Unlock()

	s.store.Set(ctx, UserStorageKey, updated)
	return cloneUser(updated), nil
}

// acquire marks the store busy. It fails when another operation holds it;
// the holder releases it with loading.Store(false).
func (s *IdentityStore) acquire() bool {
	return s.loading.CompareAndSwap(false, true)
}

func (s *IdentityStore) replace(ctx context.Context, user *models.User) {
	s.mu.Lock()
	s.current = user
	s.mu.Unlock()

	s.store.Set(ctx, UserStorageKey, user)
}

func cloneUser(u models.User) models.User {
	if u.Address != nil {
		addr := *u.Address
		u.Address = &addr
	}
	return u
}
