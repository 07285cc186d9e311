package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_Defaults(t *testing.T) {
	w := Wrap(httptest.NewRecorder())
	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Equal(t, 0, w.BytesWritten())
	assert.False(t, w.Written())
}

func TestWrap_Idempotent(t *testing.T) {
	inner := Wrap(httptest.NewRecorder())
	assert.Same(t, inner, Wrap(inner))
}

func TestWriteHeader_FirstWins(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusBadGateway)
	w.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusBadGateway, w.StatusCode())
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.True(t, w.Written())
}

func TestWrite_CountsBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	n, err := w.Write([]byte("<rss/>"))
	require.NoError(t, err)
	_, err = w.Write([]byte("\n"))
	require.NoError(t, err)

	assert.Equal(t, 6, n)
	assert.Equal(t, 7, w.BytesWritten())
	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Equal(t, "<rss/>\n", rec.Body.String())
}

func TestFlush(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.Flush()

	assert.True(t, rec.Flushed)
	assert.True(t, w.Written())
}

func TestUnwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.Equal(t, rec, Wrap(rec).Unwrap())
}
