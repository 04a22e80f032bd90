package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryPredicates(t *testing.T) {
	assert.True(t, IsConfig(NewConfigError("strategy", "bad period")))
	assert.True(t, IsData(NewDataError("csv", "bad row")))
	assert.True(t, IsInsufficientHistory(NewInsufficientHistory("engine", 201, 50)))

	assert.False(t, IsConfig(NewDataError("csv", "bad row")))
	assert.False(t, IsConfig(errors.New("plain")))
	assert.False(t, IsConfig(nil))
}

func TestInsufficientHistoryMessage(t *testing.T) {
	err := NewInsufficientHistory("engine", 201, 50)
	assert.Contains(t, err.Error(), "need at least 201 bars, have 50")
	assert.Contains(t, err.Error(), "HISTORY")
}

func TestWrapPreservesUnderlying(t *testing.T) {
	inner := errors.New("boom")
	err := Wrap(inner, CategoryData, "csv", "read file")

	assert.True(t, IsData(err))
	assert.True(t, errors.Is(err, inner))
	assert.Contains(t, err.Error(), "boom")

	assert.Nil(t, Wrap(nil, CategoryData, "csv", "read file"))
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewConfigError("strategy", "bad"))
	assert.True(t, IsConfig(err))
}
