package services_test

import (
	"context"
	"testing"
	"time"

	"artisan/internal/catalog"
	"artisan/internal/models"
	"artisan/internal/services"
	"artisan/internal/validation"
	apperrors "artisan/pkg/errors"
	"artisan/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noDelays = services.IdentityDelays{}

func newIdentityStore(t *testing.T, store *storage.Store) *services.IdentityStore {
	t.Helper()
	return services.NewIdentityStore(context.Background(), store, validation.New(), services.NoSleep, noDelays)
}

func strPtr(s string) *string { return &s }

func TestIdentityStore_LoginPersistsDemoIdentity(t *testing.T) {
	ctx := context.Background()
	store := storage.New(storage.NewMemoryBackend())
	ids := newIdentityStore(t, store)

	_, ok := ids.Current()
	assert.False(t, ok)

	user, err := ids.Login(ctx, models.LoginRequest{Email: "jane@example.com", Password: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, catalog.DemoUser.ID, user.ID)
	assert.Equal(t, "John", user.FirstName)
	require.NotNil(t, user.Address)
	assert.Equal(t, "Denver", user.Address.City)

	var stored models.User
	require.True(t, store.Get(ctx, services.UserStorageKey, &stored))
	assert.Equal(t, user, stored)

	// The demo baseline is never mutated.
	assert.Equal(t, "demo@artisanmarket.com", catalog.DemoUser.Email)
}

func TestIdentityStore_LoginValidationLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	store := storage.New(storage.NewMemoryBackend())
	ids := newIdentityStore(t, store)

	_, err := ids.Login(ctx, models.LoginRequest{Email: "nope", Password: ""})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "VALIDATION_FAILED"))

	_, ok := ids.Current()
	assert.False(t, ok)
	var stored models.User
	assert.False(t, store.Get(ctx, services.UserStorageKey, &stored))
}

func TestIdentityStore_Register(t *testing.T) {
	ctx := context.Background()
	ids := newIdentityStore(t, storage.New(storage.NewMemoryBackend()))

	user, err := ids.Register(ctx, models.RegisterData{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Password:        "engine1843",
		ConfirmPassword: "engine1843",
		IsArtisan:       true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, catalog.DemoUser.ID, user.ID)
	assert.Equal(t, "Ada", user.FirstName)
	assert.True(t, user.IsArtisan)
	assert.Nil(t, user.Address)

	current, ok := ids.Current()
	require.True(t, ok)
	assert.Equal(t, user, current)

	_, err = ids.Register(ctx, models.RegisterData{
		FirstName:       "Bob",
		LastName:        "Smith",
		Email:           "bob@example.com",
		Password:        "engine1843",
		ConfirmPassword: "engine1844",
	})
	require.Error(t, err)
	current, _ = ids.Current()
	assert.Equal(t, "ada@example.com", current.Email)
}

func TestIdentityStore_Logout(t *testing.T) {
	ctx := context.Background()
	store := storage.New(storage.NewMemoryBackend())
	ids := newIdentityStore(t, store)

	_, err := ids.Login(ctx, models.LoginRequest{Email: "jane@example.com", Password: "x"})
	require.NoError(t, err)

	ids.Logout(ctx)
	_, ok := ids.Current()
	assert.False(t, ok)
	var stored models.User
	assert.False(t, store.Get(ctx, services.UserStorageKey, &stored))

	// Logging out twice is harmless.
	ids.Logout(ctx)
}

func TestIdentityStore_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	store := storage.New(storage.NewMemoryBackend())
	ids := newIdentityStore(t, store)

	_, err := ids.UpdateProfile(ctx, models.ProfileUpdate{FirstName: strPtr("Jane")})
	assert.ErrorIs(t, err, services.ErrNoIdentity)

	_, err = ids.Login(ctx, models.LoginRequest{Email: "jane@example.com", Password: "x"})
	require.NoError(t, err)

	updated, err := ids.UpdateProfile(ctx, models.ProfileUpdate{
		FirstName: strPtr("Jane"),
		Phone:     strPtr("+1 555 0100"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane", updated.FirstName)
	assert.Equal(t, "Doe", updated.LastName)
	assert.Equal(t, "+1 555 0100", updated.Phone)
	assert.Equal(t, "jane@example.com", updated.Email)

	var stored models.User
	require.True(t, store.Get(ctx, services.UserStorageKey, &stored))
	assert.Equal(t, updated, stored)

	_, err = ids.UpdateProfile(ctx, models.ProfileUpdate{Email: strPtr("broken")})
	require.Error(t, err)
	current, _ := ids.Current()
	assert.Equal(t, "jane@example.com", current.Email)
}

func TestIdentityStore_CurrentReturnsCopy(t *testing.T) {
	ctx := context.Background()
	ids := newIdentityStore(t, storage.New(storage.NewMemoryBackend()))
	_, err := ids.Login(ctx, models.LoginRequest{Email: "jane@example.com", Password: "x"})
	require.NoError(t, err)

	user, _ := ids.Current()
	user.Address.City = "Elsewhere"

	again, _ := ids.Current()
	assert.Equal(t, "Denver", again.Address.City)
}

func TestIdentityStore_HydratesFromStorage(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()

	first := newIdentityStore(t, storage.New(backend))
	user, err := first.Login(ctx, models.LoginRequest{Email: "jane@example.com", Password: "x"})
	require.NoError(t, err)

	second := newIdentityStore(t, storage.New(backend))
	current, ok := second.Current()
	require.True(t, ok)
	assert.Equal(t, user, current)
}

func TestIdentityStore_CorruptSnapshotIsIgnored(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()
	require.NoError(t, backend.Set(ctx, services.UserStorageKey, "{not json"))

	ids := newIdentityStore(t, storage.New(backend))
	_, ok := ids.Current()
	assert.False(t, ok)
}

func TestIdentityStore_WorksWithoutStorage(t *testing.T) {
	ctx := context.Background()
	ids := newIdentityStore(t, storage.Unavailable())

	user, err := ids.Login(ctx, models.LoginRequest{Email: "jane@example.com", Password: "x"})
	require.NoError(t, err)
	current, ok := ids.Current()
	require.True(t, ok)
	assert.Equal(t, user, current)
}

func TestIdentityStore_LoadingDuringDelay(t *testing.T) {
	ctx := context.Background()
	var ids *services.IdentityStore
	var seen []bool
	sleep := func(context.Context, time.Duration) {
		seen = append(seen, ids.Loading())
	}
	ids = services.NewIdentityStore(ctx, storage.Unavailable(), validation.New(), sleep, services.DefaultIdentityDelays)

	assert.False(t, ids.Loading())
	_, err := ids.Login(ctx, models.LoginRequest{Email: "jane@example.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, seen)
	assert.False(t, ids.Loading())

	// Validation failures return before the delay.
	_, err = ids.Login(ctx, models.LoginRequest{})
	require.Error(t, err)
	assert.Len(t, seen, 1)
}

func TestIdentityStore_SecondOperationDuringDelayIsBusy(t *testing.T) {
	ctx := context.Background()
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	sleep := func(context.Context, time.Duration) {
		entered <- struct{}{}
		<-release
	}
	ids := services.NewIdentityStore(ctx, storage.Unavailable(), validation.New(), sleep, services.DefaultIdentityDelays)

	done := make(chan error, 1)
	go func() {
		_, err := ids.Login(ctx, models.LoginRequest{Email: "jane@example.com", Password: "x"})
		done <- err
	}()
	<-entered
	assert.True(t, ids.Loading())

	_, err := ids.Login(ctx, models.LoginRequest{Email: "bob@example.com", Password: "x"})
	assert.ErrorIs(t, err, services.ErrIdentityBusy)
	_, err = ids.UpdateProfile(ctx, models.ProfileUpdate{FirstName: strPtr("Bob")})
	assert.ErrorIs(t, err, services.ErrIdentityBusy)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, ids.Loading())

	current, ok := ids.Current()
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", current.Email)

	// The store is usable again once the first operation finished.
	_, err = ids.UpdateProfile(ctx, models.ProfileUpdate{FirstName: strPtr("Jane")})
	require.NoError(t, err)
}
