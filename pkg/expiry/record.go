// Package expiry persists the quarantine bookkeeping: which devices were
// unmanaged as duplicates, when, and when they become eligible for deletion.
package expiry

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Timestamp is a point in time encoded as fractional epoch seconds, the
// format existing store files use.
type Timestamp struct {
	time.Time
}

// At wraps t as a Timestamp.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// MarshalJSON encodes the timestamp as epoch seconds.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	secs := float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
	return strconv.AppendFloat(nil, secs, 'f', -1, 64), nil
}

// UnmarshalJSON decodes integer or fractional epoch seconds.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return err
	}
	f, err := n.Float64()
	if err != nil {
		return err
	}
	sec, frac := math.Modf(f)
	t.Time = time.Unix(int64(sec), int64(math.Round(frac*float64(time.Second))))
	return nil
}

// Record tracks one quarantined device.
type Record struct {
	DeviceID int64     `json:"device_id"`
	AddedAt  Timestamp `json:"added_time"`
	ExpireAt Timestamp `json:"expire_at"`
}

// NewRecord starts tracking a device quarantined at now.
func NewRecord(deviceID int64, now time.Time, grace time.Duration) Record {
	return Record{
		DeviceID: deviceID,
		AddedAt:  At(now),
		ExpireAt: At(now.Add(grace)),
	}
}

// Expired reports whether the grace period has elapsed at now.
func (r Record) Expired(now time.Time) bool {
	return !now.Before(r.ExpireAt.Time)
}

// Remaining returns the time left before the record expires, zero once expired.
func (r Record) Remaining(now time.Time) time.Duration {
	if r.Expired(now) {
		return 0
	}
	return r.ExpireAt.Sub(now)
}

// Records is the full contents of a store, keyed by device id.
type Records []Record

// Has reports whether a record for id exists.
func (rs Records) Has(id int64) bool {
	_, ok := rs.Find(id)
	return ok
}

// Find returns the record for id.
func (rs Records) Find(id int64) (Record, bool) {
	for _, r := range rs {
		if r.DeviceID == id {
			return r, true
		}
	}
	return Record{}, false
}

// IDs returns the tracked device ids in store order.
func (rs Records) IDs() []int64 {
	ids := make([]int64, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.DeviceID)
	}
	return ids
}

// Unique returns rs with only the first record kept for each device id.
func (rs Records) Unique() Records {
	seen := make(map[int64]struct{}, len(rs))
	out := make(Records, 0, len(rs))
	for _, r := range rs {
		if _, ok := seen[r.DeviceID]; ok {
			continue
		}
		seen[r.DeviceID] = struct{}{}
		out = append(out, r)
	}
	return out
}
