package bag

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrikshavalli/storefront/internal/domain"
)

func line(id string, price float64) domain.BagItem {
	return domain.BagItem{ID: id, Name: "Item " + id, Image: "/" + id + ".webp", Price: price}
}

func TestAddItem_TwiceIncrements(t *testing.T) {
	b := New("s1")
	b.AddItem(line("1", 549))
	b.AddItem(line("1", 549))

	require.Len(t, b.Items, 1)
	assert.Equal(t, 2, b.Items[0].Quantity)
}

func TestAddItem_IgnoresIncomingQuantity(t *testing.T) {
	b := New("s1")
	it := line("1", 100)
	it.Quantity = 7
	b.AddItem(it)
	assert.Equal(t, 1, b.Items[0].Quantity)
}

func TestUpdateQty(t *testing.T) {
	tests := []struct {
		name    string
		qty     int
		wantLen int
		wantQty int
	}{
		{"sets exactly", 5, 1, 5},
		{"zero removes", 0, 0, 0},
		{"negative removes", -5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("s1")
			b.AddItem(line("1", 100))
			b.AddItem(line("1", 100))

			b.UpdateQty("1", tt.qty)

			require.Len(t, b.Items, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantQty, b.Items[0].Quantity)
			}
		})
	}
}

func TestUpdateQty_UnknownIDIgnored(t *testing.T) {
	b := New("s1")
	b.AddItem(line("1", 100))
	b.UpdateQty("2", 3)
	require.Len(t, b.Items, 1)
	assert.Equal(t, "1", b.Items[0].ID)
}

func TestRemoveItem(t *testing.T) {
	b := New("s1")
	b.AddItem(line("1", 100))
	b.AddItem(line("2", 200))
	b.AddItem(line("3", 300))

	b.RemoveItem("2")
	b.RemoveItem("missing")

	assert.Equal(t, -1, b.FindItemIndex("2"))
	assert.Len(t, b.Items, 2)
	assert.Equal(t, "3", b.Items[1].ID)
}

func TestTotals(t *testing.T) {
	b := New("s1")
	b.AddItem(line("a", 100))
	b.AddItem(line("a", 100))
	b.AddItem(line("b", 50))

	assert.True(t, decimal.NewFromInt(250).Equal(b.Subtotal()), b.Subtotal().String())
	assert.Equal(t, 3, b.ItemCount())
}

func TestSubtotal_IsExact(t *testing.T) {
	b := New("s1")
	b.AddItem(line("a", 0.1))
	b.AddItem(line("b", 0.2))

	assert.Equal(t, "0.3", b.Subtotal().String())
}

func TestClearKeepsVisibility(t *testing.T) {
	b := New("s1")
	b.AddItem(line("a", 100))
	b.Open()
	b.Clear()

	assert.Empty(t, b.Items)
	assert.Zero(t, b.ItemCount())
	assert.True(t, b.Subtotal().IsZero())
	assert.True(t, b.IsOpen)

	b.Close()
	assert.False(t, b.IsOpen)
}

func TestSummarize_JSON(t *testing.T) {
	b := New("s1")
	b.AddItem(line("a", 1299))
	b.UpdateQty("a", 2)

	raw, err := json.Marshal(b.Summarize())
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "2598", out["subtotal"])
	assert.Equal(t, float64(2), out["item_count"])
	assert.Equal(t, false, out["is_open"])
}

func TestSummarize_NilItems(t *testing.T) {
	var b Bag
	s := b.Summarize()
	assert.NotNil(t, s.Items)
	assert.Zero(t, s.ItemCount)
}
