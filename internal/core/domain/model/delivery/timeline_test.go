package delivery_test

import (
	"testing"
	"time"

	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineEntry(t *testing.T) {
	t.Run("should carry status, timestamp, location and note", func(t *testing.T) {
		location, err := kernel.NewGeoPoint(6.5244, 3.3792)
		require.NoError(t, err)
		now := time.Now()

		entry := delivery.NewTimelineEntry(delivery.PickedUp, now, &location, "Collected at gate")

		assert.Equal(t, delivery.PickedUp, entry.Status())
		assert.Equal(t, now, entry.Timestamp())
		require.NotNil(t, entry.Location())
		assert.True(t, entry.Location().IsEqual(location))
		assert.Equal(t, "Collected at gate", entry.Note())
	})

	t.Run("should allow nil location and empty note", func(t *testing.T) {
		entry := delivery.NewTimelineEntry(delivery.Pending, time.Now(), nil, "")

		assert.Nil(t, entry.Location())
		assert.Empty(t, entry.Note())
	})
}

func TestTimeline_Append(t *testing.T) {
	t.Run("should preserve insertion order", func(t *testing.T) {
		var timeline delivery.Timeline
		base := time.Now()

		timeline.Append(delivery.NewTimelineEntry(delivery.Pending, base, nil, "created"))
		timeline.Append(delivery.NewTimelineEntry(delivery.Assigned, base.Add(time.Minute), nil, ""))
		timeline.Append(delivery.NewTimelineEntry(delivery.PickedUp, base.Add(2*time.Minute), nil, ""))

		assert.Equal(t, 3, timeline.Len())

		entries := timeline.Entries()
		assert.Equal(t, delivery.Pending, entries[0].Status())
		assert.Equal(t, delivery.Assigned, entries[1].Status())
		assert.Equal(t, delivery.PickedUp, entries[2].Status())
	})

	t.Run("should expose first and last entries", func(t *testing.T) {
		var timeline delivery.Timeline

		_, ok := timeline.First()
		assert.False(t, ok)
		_, ok = timeline.Last()
		assert.False(t, ok)

		timeline.Append(delivery.NewTimelineEntry(delivery.Pending, time.Now(), nil, ""))
		timeline.Append(delivery.NewTimelineEntry(delivery.Cancelled, time.Now(), nil, ""))

		first, ok := timeline.First()
		require.True(t, ok)
		assert.Equal(t, delivery.Pending, first.Status())

		last, ok := timeline.Last()
		require.True(t, ok)
		assert.Equal(t, delivery.Cancelled, last.Status())
	})
}

func TestRestoreTimeline(t *testing.T) {
	t.Run("should copy the input slice", func(t *testing.T) {
		entries := []delivery.TimelineEntry{
			delivery.NewTimelineEntry(delivery.Pending, time.Now(), nil, "created"),
		}

		timeline := delivery.RestoreTimeline(entries)
		entries[0] = delivery.NewTimelineEntry(delivery.Failed, time.Now(), nil, "mutated")

		first, ok := timeline.First()
		require.True(t, ok)
		assert.Equal(t, delivery.Pending, first.Status())
	})

	t.Run("Entries should return a copy", func(t *testing.T) {
		var timeline delivery.Timeline
		timeline.Append(delivery.NewTimelineEntry(delivery.Pending, time.Now(), nil, ""))

		entries := timeline.Entries()
		entries[0] = delivery.NewTimelineEntry(delivery.Failed, time.Now(), nil, "")

		first, _ := timeline.First()
		assert.Equal(t, delivery.Pending, first.Status())
	})
}
