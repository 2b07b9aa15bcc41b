package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag/v2"

	"github.com/erp/orderbridge/docs"
)

func TestSwaggerDocRegistered(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Swagger string `json:"swagger"`
		Info    struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "Order Bridge API", doc.Info.Title)

	routes := map[string]string{
		"/place_order":                    "post",
		"/order_statuses":                 "get",
		"/order_refunds":                  "get",
		"/orders":                         "get",
		"/sync_records":                   "get",
		"/sync_records/{mp_order_number}": "get",
		"/healthz":                        "get",
	}
	for path, method := range routes {
		ops, ok := doc.Paths[path]
		if assert.True(t, ok, path) {
			assert.Contains(t, ops, method, path)
		}
	}

	for _, def := range []string{"dto.Response", "validation.PlaceOrderRequest", "integration.NormalizedOrder", "integration.RefundBatch"} {
		assert.Contains(t, doc.Definitions, def)
	}
}
