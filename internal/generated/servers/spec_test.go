package servers_test

import (
	"testing"

	"restaurant/internal/generated/servers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	doc, err := servers.GetSwagger()
	require.NoError(t, err)

	operations := map[string]bool{}
	for _, path := range doc.Paths.Map() {
		for _, op := range path.Operations() {
			operations[op.OperationID] = true
		}
	}

	for _, id := range []string{
		"ListOrders", "CreateOrder", "GetOrder", "UpdateOrder", "DeleteOrder",
		"AddOrderLine", "UpdateOrderLine", "RemoveOrderLine",
		"SubmitOrder", "ConfirmOrder", "CancelOrder", "PayOrder", "ListPayments",
	} {
		assert.True(t, operations[id], "operation %s is not documented", id)
	}
	assert.Len(t, operations, 13)
	assert.Contains(t, doc.Components.SecuritySchemes, "bearerAuth")
}
