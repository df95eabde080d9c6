package records

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricelens/backend/internal/domain"
)

func TestDecode(t *testing.T) {
	t.Run("array of records", func(t *testing.T) {
		data := []byte(`[
			{"product_title": "Milk", "regular_price": 3.49},
			{"product_title": "Bread", "regular_price": "$2.99"}
		]`)

		batch, err := Decode(data)
		require.NoError(t, err)
		require.Len(t, batch, 2)
		assert.Equal(t, "Milk", batch[0]["product_title"])
		assert.Equal(t, "$2.99", batch[1]["regular_price"])
	})

	t.Run("single record object becomes a batch of one", func(t *testing.T) {
		data := []byte(`{"product_title": "Milk", "sale_price": 2.99}`)

		batch, err := Decode(data)
		require.NoError(t, err)
		require.Len(t, batch, 1)
		assert.Equal(t, 2.99, batch[0]["sale_price"])
	})

	t.Run("empty array is a valid empty batch", func(t *testing.T) {
		batch, err := Decode([]byte(`[]`))
		require.NoError(t, err)
		assert.Empty(t, batch)
	})

	t.Run("scalar top level is malformed", func(t *testing.T) {
		_, err := Decode([]byte(`42`))
		assert.ErrorIs(t, err, domain.ErrMalformedBatch)
	})

	t.Run("null top level is malformed", func(t *testing.T) {
		_, err := Decode([]byte(`null`))
		assert.ErrorIs(t, err, domain.ErrMalformedBatch)
	})

	t.Run("invalid JSON is malformed", func(t *testing.T) {
		_, err := Decode([]byte(`{"product_title": `))
		assert.ErrorIs(t, err, domain.ErrMalformedBatch)
	})
}

func TestReadWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")

	batch := []domain.ProductRecord{
		{
			"product_title":      "Kroger 2% Milk",
			"volume_deals_price": 40.0,
			"unit_price":         8.0,
			"brandStatus":        true,
		},
	}

	require.NoError(t, WriteFile(path, batch))

	loaded, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Kroger 2% Milk", loaded[0]["product_title"])
	assert.Equal(t, 40.0, loaded[0]["volume_deals_price"])
	assert.Equal(t, true, loaded[0]["brandStatus"])
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
