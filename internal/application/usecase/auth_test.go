package usecase

import (
	"context"
	"testing"

	"coursehub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	token, err := e.auth.Register(ctx, "Ana", "ana@x.com", "pw123")
	require.NoError(t, err)

	claims, err := e.tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", claims.Email)

	user, err := e.users.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.NotEqual(t, "pw123", user.Password)
	assert.False(t, user.IsAdmin)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.auth.Register(ctx, "Ana", "ana@x.com", "pw123")
	require.NoError(t, err)

	_, err = e.auth.Register(ctx, "Other Ana", "ana@x.com", "different")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegisterMissingFields(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	for _, tc := range []struct{ name, email, password string }{
		{"", "ana@x.com", "pw123"},
		{"Ana", "", "pw123"},
		{"Ana", "ana@x.com", ""},
	} {
		_, err := e.auth.Register(ctx, tc.name, tc.email, tc.password)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestLogin(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	registerToken, err := e.auth.Register(ctx, "Ana", "ana@x.com", "pw123")
	require.NoError(t, err)

	loginToken, err := e.auth.Login(ctx, "ana@x.com", "pw123")
	require.NoError(t, err)

	// Both tokens resolve to the same identity.
	a, err := e.tokens.Validate(registerToken)
	require.NoError(t, err)
	b, err := e.tokens.Validate(loginToken)
	require.NoError(t, err)
	assert.Equal(t, a.UserID, b.UserID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.auth.Register(ctx, "Ana", "ana@x.com", "pw123")
	require.NoError(t, err)

	_, err = e.auth.Login(ctx, "ana@x.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Unknown email reads the same as a wrong password.
	_, err = e.auth.Login(ctx, "nobody@x.com", "pw123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	user := e.createUser(t, "Ana", "ana@x.com", false)

	got, err := e.auth.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "ana@x.com", got.Email)
}
