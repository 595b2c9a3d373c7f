package queries_test

import (
	"testing"

	"swiftdrop/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoginQuery_NormalizesEmail(t *testing.T) {
	query, err := queries.NewLoginQuery("  Ada@Example.COM ", "s3cret!")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "ada@example.com", query.Email())
}

func TestNewLoginQuery_EmptyInputs(t *testing.T) {
	_, err := queries.NewLoginQuery("", "s3cret!")
	assert.ErrorIs(t, err, queries.ErrInvalidCredentials)

	_, err = queries.NewLoginQuery("ada@example.com", "")
	assert.ErrorIs(t, err, queries.ErrInvalidCredentials)
}

func TestLoginQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.LoginQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrLoginQueryIsNotConstructed)
}
