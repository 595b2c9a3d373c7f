package queries_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"swiftdrop/internal/core/application/usecases/queries"
	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackDeliveryQueryHandler_MissFetchesAndCaches(t *testing.T) {
	ctx := context.Background()
	aggregate := testDelivery(t)

	repo := &MockDeliveryRepository{}
	repo.On("GetByTrackingCode", ctx, aggregate.TrackingCode()).Return(aggregate, nil).Once()

	cache := newFakeCache()
	handler := queries.NewTrackDeliveryQueryHandler(repo, cache, discardLogger())

	query, err := queries.NewTrackDeliveryQuery(aggregate.TrackingCode().String())
	require.NoError(t, err)

	response, err := handler.Handle(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, aggregate.TrackingCode().String(), response.TrackingCode)
	assert.Equal(t, "pending", response.Status)
	assert.Equal(t, "Lagos", response.PickupCity)
	assert.Equal(t, "Abuja", response.DeliveryCity)
	require.Len(t, response.Events, 1)
	assert.Equal(t, "Delivery created", response.Events[0].Note)

	payload, ok := cache.Get(ctx, aggregate.TrackingCode().String())
	require.True(t, ok)
	var cached queries.TrackDeliveryQueryResponse
	require.NoError(t, json.Unmarshal(payload, &cached))
	assert.Equal(t, response.Status, cached.Status)

	repo.AssertExpectations(t)
}

func TestTrackDeliveryQueryHandler_HitSkipsDatabase(t *testing.T) {
	ctx := context.Background()
	aggregate := testDelivery(t)
	code := aggregate.TrackingCode().String()

	cached := queries.TrackDeliveryQueryResponse{
		TrackingCode: code,
		Status:       "in_transit",
	}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	cache := newFakeCache()
	require.NoError(t, cache.Set(ctx, code, payload, time.Minute))

	repo := &MockDeliveryRepository{}
	handler := queries.NewTrackDeliveryQueryHandler(repo, cache, discardLogger())

	query, err := queries.NewTrackDeliveryQuery(code)
	require.NoError(t, err)

	response, err := handler.Handle(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "in_transit", response.Status)
	repo.AssertNotCalled(t, "GetByTrackingCode")
}

func TestTrackDeliveryQueryHandler_CorruptCacheEntryFallsBack(t *testing.T) {
	ctx := context.Background()
	aggregate := testDelivery(t)
	code := aggregate.TrackingCode().String()

	cache := newFakeCache()
	require.NoError(t, cache.Set(ctx, code, []byte("{not json"), time.Minute))

	repo := &MockDeliveryRepository{}
	repo.On("GetByTrackingCode", ctx, aggregate.TrackingCode()).Return(aggregate, nil).Once()

	handler := queries.NewTrackDeliveryQueryHandler(repo, cache, discardLogger())
	query, err := queries.NewTrackDeliveryQuery(code)
	require.NoError(t, err)

	response, err := handler.Handle(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "pending", response.Status)
	repo.AssertExpectations(t)
}

func TestTrackDeliveryQueryHandler_CacheSetFailureIsTolerated(t *testing.T) {
	ctx := context.Background()
	aggregate := testDelivery(t)

	cache := newFakeCache()
	cache.setErr = context.DeadlineExceeded

	repo := &MockDeliveryRepository{}
	repo.On("GetByTrackingCode", ctx, aggregate.TrackingCode()).Return(aggregate, nil).Once()

	handler := queries.NewTrackDeliveryQueryHandler(repo, cache, discardLogger())
	query, err := queries.NewTrackDeliveryQuery(aggregate.TrackingCode().String())
	require.NoError(t, err)

	_, err = handler.Handle(ctx, query)
	assert.NoError(t, err)
}

func TestTrackDeliveryQueryHandler_UnknownCode(t *testing.T) {
	ctx := context.Background()
	code := delivery.GenerateTrackingCode(time.Now())

	repo := &MockDeliveryRepository{}
	repo.On("GetByTrackingCode", ctx, code).
		Return(nil, errs.NewObjectNotFoundError("delivery", code.String())).Once()

	handler := queries.NewTrackDeliveryQueryHandler(repo, newFakeCache(), discardLogger())
	query, err := queries.NewTrackDeliveryQuery(code.String())
	require.NoError(t, err)

	_, err = handler.Handle(ctx, query)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
