package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBefore_OrdersByCreatedAt(t *testing.T) {
	base := time.Now()

	earlier := &PendingOperation{CreatedAt: base, Seq: 10}
	later := &PendingOperation{CreatedAt: base.Add(time.Second), Seq: 1}

	assert.True(t, earlier.Before(later))
	assert.False(t, later.Before(earlier))
}

func TestBefore_SeqBreaksTies(t *testing.T) {
	base := time.Now()

	first := &PendingOperation{CreatedAt: base, Seq: 1}
	second := &PendingOperation{CreatedAt: base, Seq: 2}

	assert.True(t, first.Before(second))
	assert.False(t, second.Before(first))
}

func TestEntityKindForOp(t *testing.T) {
	tests := []struct {
		kind OperationKind
		want EntityKind
	}{
		{OpCreateExpense, EntityExpense},
		{OpUpdateExpense, EntityExpense},
		{OpDeleteExpense, EntityExpense},
		{OpCreateGroup, EntityGroup},
		{OpUpdateGroup, EntityGroup},
		{OpDeleteGroup, EntityGroup},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got, err := EntityKindForOp(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := EntityKindForOp("rename_everything")
	assert.Error(t, err)
}

func TestIsCreateIsDelete(t *testing.T) {
	create := &PendingOperation{Kind: OpCreateGroup}
	assert.True(t, create.IsCreate())
	assert.False(t, create.IsDelete())

	del := &PendingOperation{Kind: OpDeleteExpense}
	assert.False(t, del.IsCreate())
	assert.True(t, del.IsDelete())

	update := &PendingOperation{Kind: OpUpdateExpense}
	assert.False(t, update.IsCreate())
	assert.False(t, update.IsDelete())
}

func TestTempIDs(t *testing.T) {
	id := NewTempID()
	assert.True(t, IsTempID(id))

	// Каждый вызов дает уникальный id
	assert.NotEqual(t, id, NewTempID())

	assert.False(t, IsTempID("17"))
	assert.False(t, IsTempID(""))
	assert.False(t, IsTempID("tmp_"))
	assert.False(t, IsTempID("tmp_not-a-uuid"))
	assert.False(t, IsTempID("TMP_0e5fcf10-16a5-4a07-9c54-6ae58f7b9c31"))
}
