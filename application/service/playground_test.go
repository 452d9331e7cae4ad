package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playgroundSource() string {
	return strings.Join([]string{
		"module demo::counter {",
		"// @editable-begin Body - implement increment",
		"    fun increment() {}",
		"    fun decrement() {}",
		"// @editable-end",
		"}",
	}, "\n")
}

func TestPlaygroundService_Regions(t *testing.T) {
	s := NewPlaygroundService()

	regions := s.Regions(playgroundSource(), 0)
	require.Len(t, regions, 1)
	assert.Equal(t, 3, regions[0].StartLine)
	assert.Equal(t, 4, regions[0].EndLine)
	assert.Equal(t, "Body", regions[0].Title)
	assert.Equal(t, "implement increment", regions[0].Description)
}

func TestPlaygroundService_RegionsClamped(t *testing.T) {
	s := NewPlaygroundService()

	regions := s.Regions(playgroundSource(), 3)
	require.Len(t, regions, 1)
	assert.Equal(t, 3, regions[0].EndLine)

	assert.Empty(t, s.Regions(playgroundSource(), 2))
}

func TestPlaygroundService_Decide(t *testing.T) {
	s := NewPlaygroundService()

	allowed, err := s.Decide(GuardQuery{Source: playgroundSource(), Key: "character", StartLine: 3, EndLine: 3})
	require.NoError(t, err)
	assert.True(t, allowed.Allowed)
	assert.False(t, allowed.ValidateAfter)
	assert.Equal(t, 1, allowed.EditableRegions)

	blocked, err := s.Decide(GuardQuery{Source: playgroundSource(), Key: "character", StartLine: 1, EndLine: 1})
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)

	spanning, err := s.Decide(GuardQuery{Source: playgroundSource(), Key: "delete", StartLine: 3, EndLine: 6})
	require.NoError(t, err)
	assert.False(t, spanning.Allowed)

	navigation, err := s.Decide(GuardQuery{Source: playgroundSource(), Key: "navigation", StartLine: 1, EndLine: 1})
	require.NoError(t, err)
	assert.True(t, navigation.Allowed)

	paste, err := s.Decide(GuardQuery{Source: playgroundSource(), Key: "paste", StartLine: 3, EndLine: 3})
	require.NoError(t, err)
	assert.True(t, paste.Allowed)
	assert.True(t, paste.ValidateAfter)
}

func TestPlaygroundService_DecideValidation(t *testing.T) {
	s := NewPlaygroundService()

	_, err := s.Decide(GuardQuery{Source: "x", Key: "mash", StartLine: 1, EndLine: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Decide(GuardQuery{Source: "x", Key: "character", StartLine: 0, EndLine: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Decide(GuardQuery{Source: "x", Key: "character", StartLine: 5, EndLine: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
