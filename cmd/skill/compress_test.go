package main

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressWriter(t *testing.T) {
	t.Run("write without header compresses", func(t *testing.T) {
		rec := httptest.NewRecorder()
		cw := newCompressWriter(rec)
		_, err := cw.Write([]byte(`{"ok":true}`))
		require.NoError(t, err)
		require.NoError(t, cw.Close())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

		zr, err := gzip.NewReader(rec.Body)
		require.NoError(t, err)
		b, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, `{"ok":true}`, string(b))
	})

	t.Run("error status leaves body untouched", func(t *testing.T) {
		rec := httptest.NewRecorder()
		cw := newCompressWriter(rec)
		cw.WriteHeader(http.StatusInternalServerError)
		require.NoError(t, cw.Close())

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Empty(t, rec.Header().Get("Content-Encoding"))
		assert.Zero(t, rec.Body.Len())
	})
}
