package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlclient/internal/domain"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339Nano, s)
	require.NoError(t, err)
	return ts
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		valid bool
		want  time.Time
	}{
		{name: "rfc3339", in: "2024-03-01T12:00:00Z", valid: true, want: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		{name: "fractional", in: "2024-03-01T12:00:00.123Z", valid: true, want: time.Date(2024, 3, 1, 12, 0, 0, 123e6, time.UTC)},
		{name: "no zone", in: "2024-03-01T12:00:00", valid: true, want: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		{name: "no zone fractional", in: "2024-03-01T12:00:00.5", valid: true, want: time.Date(2024, 3, 1, 12, 0, 0, 5e8, time.UTC)},
		{name: "space separated", in: "2024-03-01 12:00:00", valid: true, want: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		{name: "garbage", in: "tomorrow", valid: false},
		{name: "empty", in: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := domain.ParseTimestamp(tt.in)
			assert.Equal(t, tt.valid, ts.Valid())
			assert.Equal(t, tt.in, ts.Raw)
			if tt.valid {
				assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
			}
		})
	}
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	var u domain.ShortenedURL
	err := json.Unmarshal([]byte(`{"createdAt":"2024-03-01T12:00:00Z","expiryDate":"soon"}`), &u)
	require.NoError(t, err)

	assert.True(t, u.CreatedAt.Valid())
	assert.False(t, u.ExpiryDate.Valid())
	assert.Equal(t, "soon", u.ExpiryDate.Raw)
}

func TestTimestamp_UnmarshalNull(t *testing.T) {
	var c domain.ClickDetail
	require.NoError(t, json.Unmarshal([]byte(`{"timestamp":null}`), &c))
	assert.False(t, c.Timestamp.Valid())
}

func TestTimestamp_UnmarshalWrongType(t *testing.T) {
	var c domain.ClickDetail
	assert.Error(t, json.Unmarshal([]byte(`{"timestamp":42}`), &c))
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(domain.NewTimestamp(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-03-01T12:00:00Z"`, string(raw))

	raw, err = json.Marshal(domain.ParseTimestamp("soon"))
	require.NoError(t, err)
	assert.JSONEq(t, `"soon"`, string(raw))
}
