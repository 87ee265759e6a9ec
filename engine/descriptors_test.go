package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDatabaseDescriptorYAMLParsesNestedFields(t *testing.T) {
	doc := []byte(`
name: shop
iid: db_shop
type: MongoDB
assignUniqueName: true
models:
  - name: orders
    iid: md_orders
    fields:
      - name: id
        type: id
      - name: total
        type: monetary
      - name: shipping
        type: object
        fields:
          - name: city
            type: text
`)
	d, err := LoadDatabaseDescriptorYAML(doc)
	require.NoError(t, err)

	assert.Equal(t, "shop", d.Name)
	assert.Equal(t, DialectMongoDB, d.Type)
	require.Len(t, d.Models, 1)
	require.Len(t, d.Models[0].Fields, 3)
	assert.Equal(t, "monetary", d.Models[0].Fields[1].Type)
	require.Len(t, d.Models[0].Fields[2].Fields, 1)
	assert.Equal(t, "city", d.Models[0].Fields[2].Fields[0].Name)
	assert.Equal(t, "envA_db_shop", d.EffectiveName("envA"))
}

func TestLoadDatabaseDescriptorYAMLRejectsMalformedInput(t *testing.T) {
	_, err := LoadDatabaseDescriptorYAML([]byte("name: [unterminated"))
	assert.Error(t, err)
}
