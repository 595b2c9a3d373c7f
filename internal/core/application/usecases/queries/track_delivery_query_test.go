package queries_test

import (
	"testing"

	"swiftdrop/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackDeliveryQuery_NormalizesCode(t *testing.T) {
	query, err := queries.NewTrackDeliveryQuery("  trkabc123xy9z  ")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "TRKABC123XY9Z", query.TrackingCode().String())
}

func TestNewTrackDeliveryQuery_RejectsMalformedCode(t *testing.T) {
	for _, raw := range []string{"", "ABC123", "TRK with spaces"} {
		_, err := queries.NewTrackDeliveryQuery(raw)
		assert.Error(t, err, raw)
	}
}

func TestTrackDeliveryQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.TrackDeliveryQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrTrackDeliveryQueryIsNotConstructed)
}
