package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/pharmatrack/pharmatrack/internal/application/inventory"
	apporder "github.com/pharmatrack/pharmatrack/internal/application/order"
	"github.com/pharmatrack/pharmatrack/internal/infrastructure/id"
	"github.com/pharmatrack/pharmatrack/internal/infrastructure/memory"
	"github.com/pharmatrack/pharmatrack/internal/infrastructure/orderqueue"
)

func runSession(t *testing.T, script ...string) string {
	t.Helper()

	repo := memory.NewInventoryRepository()
	queue := orderqueue.New()
	inventorySvc := appinventory.NewService(repo, nil, nil)
	orderSvc := apporder.NewService(repo, queue, id.NewUUIDGenerator(), nil, true, nil)

	var out bytes.Buffer
	ui := New(strings.NewReader(strings.Join(script, "\n")+"\n"), &out, inventorySvc, orderSvc, nil)
	require.NoError(t, ui.Run(context.Background()))
	return out.String()
}

func TestFullSession(t *testing.T) {
	out := runSession(t,
		"1", "Paracetamol", "100", "5", "01012030",
		"2",
		"3", "Alice", "1", "20", "2",
		"4",
		"4",
		"5",
	)

	assert.Contains(t, out, "Item added successfully. Product ID: 1")
	assert.Contains(t, out, "Paracetamol")
	assert.Contains(t, out, "Order placed successfully.")
	assert.Contains(t, out, "Processing order for customer: Alice")
	assert.Contains(t, out, "Order processed successfully.")
	assert.Contains(t, out, "No orders to process.")
	assert.Contains(t, out, "Exiting...")
}

func TestInvalidMenuChoiceReprompts(t *testing.T) {
	out := runSession(t, "9", "5")
	assert.Contains(t, out, "Invalid choice. Please try again.")
	assert.Contains(t, out, "Exiting...")
}

func TestAddItemRejectsBadQuantity(t *testing.T) {
	out := runSession(t,
		"1", "Paracetamol", "-5",
		"5",
	)
	assert.Contains(t, out, "quantity must be greater than zero")
	assert.NotContains(t, out, "Item added successfully")
}

func TestAddItemRejectsBadDate(t *testing.T) {
	out := runSession(t,
		"1", "Paracetamol", "10", "5", "2030-01-01",
		"5",
	)
	assert.Contains(t, out, "invalid input")
	assert.NotContains(t, out, "Item added successfully")
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	out := runSession(t,
		"3", "Alice", "42", "1", "2",
		"5",
	)
	assert.Contains(t, out, "Product not found in inventory.")
}

func TestPlaceOrderTooMuchStock(t *testing.T) {
	out := runSession(t,
		"1", "Aspirin", "5", "2", "01012030",
		"3", "Alice", "1", "10", "1",
		"5",
	)
	assert.Contains(t, out, "Requested quantity exceeds available stock.")
}

func TestPlaceOrderExpiredProduct(t *testing.T) {
	out := runSession(t,
		"1", "Aspirin", "5", "2", "01012020",
		"3", "Alice", "1", "1", "1",
		"5",
	)
	assert.Contains(t, out, "Product expired. Cannot place order.")
}

func TestPlaceOrderRejectsBadUrgency(t *testing.T) {
	out := runSession(t,
		"1", "Aspirin", "5", "2", "01012030",
		"3", "Alice", "1", "1", "7",
		"5",
	)
	assert.Contains(t, out, "urgency must be between 1 and 3")
	assert.NotContains(t, out, "Order placed successfully.")
}

func TestEOFEndsSession(t *testing.T) {
	out := runSession(t, "2")
	assert.Contains(t, out, "Current Inventory:")
}
