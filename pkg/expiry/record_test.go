package expiry_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dupap/pkg/expiry"
)

func TestTimestampJSON(t *testing.T) {
	t.Run("whole seconds", func(t *testing.T) {
		data, err := json.Marshal(expiry.At(time.Unix(1700000000, 0)))
		require.NoError(t, err)
		assert.Equal(t, "1700000000", string(data))
	})

	t.Run("fractional seconds", func(t *testing.T) {
		data, err := json.Marshal(expiry.At(time.Unix(1700000000, int64(250*time.Millisecond))))
		require.NoError(t, err)
		assert.Equal(t, "1700000000.25", string(data))
	})

	t.Run("decodes python floats", func(t *testing.T) {
		var ts expiry.Timestamp
		require.NoError(t, json.Unmarshal([]byte("1700000000.0"), &ts))
		assert.True(t, ts.Equal(time.Unix(1700000000, 0)))

		require.NoError(t, json.Unmarshal([]byte("1700000000.5"), &ts))
		assert.True(t, ts.Equal(time.Unix(1700000000, int64(500*time.Millisecond))))
	})

	t.Run("rejects non numbers", func(t *testing.T) {
		var ts expiry.Timestamp
		assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	})
}

func TestRecordExpiry(t *testing.T) {
	now := time.Unix(1700000000, 0)
	grace := 30 * 24 * time.Hour
	r := expiry.NewRecord(7, now, grace)

	assert.Equal(t, int64(7), r.DeviceID)
	assert.True(t, r.AddedAt.Equal(now))
	assert.True(t, r.ExpireAt.Equal(now.Add(grace)))

	assert.False(t, r.Expired(now))
	assert.Equal(t, grace, r.Remaining(now))

	// expire_at itself counts as expired
	assert.True(t, r.Expired(now.Add(grace)))
	assert.True(t, r.Expired(now.Add(grace+time.Second)))
	assert.Zero(t, r.Remaining(now.Add(grace+time.Hour)))
}

func TestRecords(t *testing.T) {
	now := time.Unix(1700000000, 0)
	rs := expiry.Records{
		expiry.NewRecord(1, now, time.Hour),
		expiry.NewRecord(2, now, time.Hour),
		expiry.NewRecord(3, now, time.Hour),
	}

	assert.True(t, rs.Has(2))
	assert.False(t, rs.Has(4))
	assert.Equal(t, []int64{1, 2, 3}, rs.IDs())
	assert.Equal(t, rs, rs.Unique())

	r, ok := rs.Find(3)
	require.True(t, ok)
	assert.Equal(t, int64(3), r.DeviceID)
}

func TestRecordsUniqueKeepsFirst(t *testing.T) {
	now := time.Unix(1700000000, 0)
	rs := expiry.Records{
		expiry.NewRecord(5, now, time.Hour),
		expiry.NewRecord(6, now, time.Hour),
		expiry.NewRecord(5, now.Add(time.Minute), time.Hour),
	}

	unique := rs.Unique()
	assert.Equal(t, []int64{5, 6}, unique.IDs())
	assert.True(t, unique[0].AddedAt.Equal(now))
	assert.Len(t, rs, 3, "input left untouched")
}
