package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderSetsMetadata(t *testing.T) {
	base := stderrors.New("disk full")

	err := New(base).
		Component("datastore").
		Category(CategoryDatabase).
		Context("path", "data/clinflow.db").
		Build()

	var ee *EnhancedError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "disk full", ee.Error())
	assert.Equal(t, "datastore", ee.Component)
	assert.Equal(t, string(CategoryDatabase), ee.GetCategory())
	assert.Equal(t, "data/clinflow.db", ee.GetContext()["path"])
	assert.False(t, ee.Timestamp.IsZero())
}

func TestUnwrapReachesBaseError(t *testing.T) {
	base := stderrors.New("boom")
	err := New(fmt.Errorf("wrapping: %w", base)).Category(CategoryGeneric).Build()

	assert.ErrorIs(t, err, base)
}

func TestIsMatchesSameCategory(t *testing.T) {
	first := Newf("first").Category(CategoryValidation).Build()
	second := Newf("second").Category(CategoryValidation).Build()
	other := Newf("third").Category(CategoryDatabase).Build()

	assert.ErrorIs(t, first, second)
	assert.NotErrorIs(t, first, other)
}

func TestHasCategory(t *testing.T) {
	err := Newf("bad ranges").Category(CategoryConfiguration).Build()

	assert.True(t, HasCategory(err, CategoryConfiguration))
	assert.False(t, HasCategory(err, CategoryDatabase))
	assert.False(t, HasCategory(stderrors.New("plain"), CategoryConfiguration))
}

func TestHasCategoryThroughWrapping(t *testing.T) {
	err := Newf("count drift").Category(CategorySchemaMismatch).Build()
	wrapped := fmt.Errorf("storing table: %w", err)

	assert.True(t, HasCategory(wrapped, CategorySchemaMismatch))
}

func TestBuildInfersCategoryFromMessage(t *testing.T) {
	tests := []struct {
		message string
		want    ErrorCategory
	}{
		{"reading config file", CategoryConfiguration},
		{"sql statement failed", CategoryDatabase},
		{"open data.csv: no such file or directory", CategoryFileIO},
		{"something else entirely", CategoryGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			err := Newf("%s", tt.message).Build()

			var ee *EnhancedError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, tt.want, ee.Category)
		})
	}
}

func TestNewStdIsPlainSentinel(t *testing.T) {
	sentinel := NewStd("store disabled")

	assert.EqualError(t, sentinel, "store disabled")
	var ee *EnhancedError
	assert.False(t, stderrors.As(sentinel, &ee), "Sentinels must stay unenhanced")
}
