package core

import "time"

// Timestamp is a JSON-marshaling wrapper over time.Time.
type Timestamp time.Time

// NewTimestamp wraps a time.Time.
func NewTimestamp(t time.Time) Timestamp { return Timestamp(t) }

// Now returns the current timestamp.
func Now() Timestamp { return Timestamp(time.Now()) }

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time { return time.Time(t) }

// IsZero reports whether the timestamp was never set.
func (t Timestamp) IsZero() bool { return time.Time(t).IsZero() }

// Before reports whether t precedes u.
func (t Timestamp) Before(u Timestamp) bool { return time.Time(t).Before(time.Time(u)) }

// Sub returns the duration t-u.
func (t Timestamp) Sub(u Timestamp) time.Duration { return time.Time(t).Sub(time.Time(u)) }

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) { return time.Time(t).MarshalJSON() }

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var tm time.Time
	if err := tm.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = Timestamp(tm)
	return nil
}

// String formats the timestamp as RFC3339.
func (t Timestamp) String() string { return t.Time().Format(time.RFC3339) }
