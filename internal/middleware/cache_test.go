package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	body := []byte(`{"items":[],"total":0}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, bytes.Repeat([]byte{0xff}, 16)} {
		_, _, _, ok := decodePayload(bs)
		assert.False(t, ok)
	}
}

func TestCaptureWriterCountsPastLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 10}

	_, err := cw.Write(bytes.Repeat([]byte("x"), 25))
	require.NoError(t, err)

	// The client gets the full body; the capture buffer stops at the
	// limit but size keeps tracking the true response length.
	assert.Equal(t, 25, rec.Body.Len())
	assert.Equal(t, 10, cw.buf.Len())
	assert.Equal(t, int64(25), cw.size)
}

func TestCacheEligible(t *testing.T) {
	cases := []struct {
		name   string
		status int
		size   int64
		limit  int64
		want   bool
	}{
		{"ok within limit", http.StatusOK, 100, 1024, true},
		{"ok exactly at limit", http.StatusOK, 1024, 1024, true},
		{"ok no limit", http.StatusOK, 1 << 20, 0, true},
		{"oversized body skipped", http.StatusOK, 2048, 1024, false},
		{"non-200 skipped", http.StatusNotFound, 10, 1024, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cacheEligible(tc.status, tc.size, tc.limit))
		})
	}
}
