package mongodb

import (
	"testing"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/pkg/util"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

func TestDecimalCodec(t *testing.T) {
	reg := NewRegistry()
	in := models.CartSnapshot{
		SessionID: "s1",
		Items: []models.CartLineItem{{
			Product: models.Product{
				ID:            "1",
				Name:          "Smart TV",
				Price:         decimal.RequireFromString("499.99"),
				OnSale:        true,
				OriginalPrice: util.Ptr(decimal.NewFromInt(599)),
			},
			Quantity: 2,
		}},
		Version: 3,
	}

	data, err := bson.MarshalWithRegistry(reg, in)
	require.NoError(t, err)

	raw := bson.Raw(data)
	price := raw.Lookup("items", "0", "price")
	assert.Equal(t, bsontype.Decimal128, price.Type)
	assert.Equal(t, "s1", raw.Lookup("_id").StringValue())
	assert.Equal(t, "Smart TV", raw.Lookup("items", "0", "name").StringValue())

	var out models.CartSnapshot
	require.NoError(t, bson.UnmarshalWithRegistry(reg, data, &out))
	require.Len(t, out.Items, 1)
	assert.Equal(t, "499.99", out.Items[0].Price.String())
	require.NotNil(t, out.Items[0].OriginalPrice)
	assert.Equal(t, "599", out.Items[0].OriginalPrice.String())
	assert.Equal(t, "999.98", out.Items[0].Subtotal().String())
}

func TestDecodeDecimalFromOtherTypes(t *testing.T) {
	reg := NewRegistry()
	tests := []struct {
		name string
		doc  bson.D
		want string
	}{
		{"string", bson.D{{Key: "price", Value: "12.50"}}, "12.5"},
		{"double", bson.D{{Key: "price", Value: 9.75}}, "9.75"},
		{"int32", bson.D{{Key: "price", Value: int32(7)}}, "7"},
		{"int64", bson.D{{Key: "price", Value: int64(1 << 40)}}, "1099511627776"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := bson.Marshal(tt.doc)
			require.NoError(t, err)

			var p models.Product
			require.NoError(t, bson.UnmarshalWithRegistry(reg, data, &p))
			assert.Equal(t, tt.want, p.Price.String())
		})
	}
}

func TestDecodeDecimalRejectsBool(t *testing.T) {
	data, err := bson.Marshal(bson.D{{Key: "price", Value: true}})
	require.NoError(t, err)

	var p models.Product
	assert.Error(t, bson.UnmarshalWithRegistry(NewRegistry(), data, &p))
}
