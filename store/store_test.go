package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDispatch(t *testing.T) {
	t.Run("plain path", func(t *testing.T) {
		root := v3Store(t)
		grp, err := Open(context.Background(), root, "")
		require.NoError(t, err)
		assert.IsType(t, &FSGroup{}, grp)
	})

	t.Run("file url", func(t *testing.T) {
		root := v3Store(t)
		grp, err := Open(context.Background(), "file://"+root, "")
		require.NoError(t, err)
		assert.IsType(t, &FSGroup{}, grp)
	})

	t.Run("object store schemes rejected", func(t *testing.T) {
		for _, scheme := range []string{"s3", "gs", "az", "abfs"} {
			_, err := Open(context.Background(), scheme+"://bucket/store", "")
			require.ErrorIs(t, err, ErrUnsupportedScheme, "scheme %s", scheme)
			assert.Contains(t, err.Error(), "expose the store over HTTP instead")
		}
	})

	t.Run("unknown scheme rejected", func(t *testing.T) {
		_, err := Open(context.Background(), "ftp://host/store", "")
		assert.ErrorIs(t, err, ErrUnsupportedScheme)
	})
}
