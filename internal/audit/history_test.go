package audit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairness-audit/backend/internal/fairness"
)

func TestHistoryAppendOrder(t *testing.T) {
	h := NewHistory()
	_, ok := h.Latest()
	assert.False(t, ok)
	assert.Empty(t, h.All())

	for i := 1; i <= 5; i++ {
		h.Append(Result{ID: fmt.Sprintf("audit-%d", i)})
	}

	all := h.All()
	require.Len(t, all, 5)
	for i, r := range all {
		assert.Equal(t, fmt.Sprintf("audit-%d", i+1), r.ID)
	}
	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, "audit-5", latest.ID)
}

func TestHistoryReadsAreCopies(t *testing.T) {
	h := NewHistory(Result{
		ID:               "seed",
		Recommendations:  []string{"keep"},
		BiasDistribution: map[fairness.Category]float64{fairness.CategoryAge: 0.5},
	})

	all := h.All()
	all[0].Recommendations[0] = "changed"
	all[0].BiasDistribution[fairness.CategoryAge] = 1

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, []string{"keep"}, latest.Recommendations)
	assert.Equal(t, 0.5, latest.BiasDistribution[fairness.CategoryAge])
}

func TestHistoryFind(t *testing.T) {
	h := NewHistory(Result{ID: "a"}, Result{ID: "b"})

	found, ok := h.Find("a")
	require.True(t, ok)
	assert.Equal(t, "a", found.ID)

	_, ok = h.Find("missing")
	assert.False(t, ok)
}
