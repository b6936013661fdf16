package samples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSamples(t *testing.T) {
	items := Default()
	require.Len(t, items, 3)
	assert.Equal(t, "Positive", items[0].Label)
	for _, item := range items {
		assert.NotEmpty(t, item.Text)
	}
}

func TestParseDropsEmptyAndLabelsMissing(t *testing.T) {
	items, err := Parse([]byte("- text: '  hello  '\n- label: Empty\n  text: ''\n"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "hello", items[0].Text)
	assert.Equal(t, "Sample 1", items[0].Label)

	_, err = Parse([]byte("not: [a list"))
	assert.Error(t, err)
}

func TestCyclerWraps(t *testing.T) {
	c := NewCycler([]Sample{{Label: "a", Text: "1"}, {Label: "b", Text: "2"}})
	assert.Equal(t, "a", c.Next().Label)
	assert.Equal(t, "b", c.Next().Label)
	assert.Equal(t, "a", c.Next().Label)
	assert.Equal(t, 3, NewCycler(nil).Len())
}

func TestCyclerNormalizesConfiguredSamples(t *testing.T) {
	c := NewCycler([]Sample{{Label: "Blank", Text: "   "}, {Text: " kept "}})
	require.Equal(t, 1, c.Len())
	got := c.Next()
	assert.Equal(t, "kept", got.Text)
	assert.Equal(t, "Sample 2", got.Label)

	assert.Equal(t, 3, NewCycler([]Sample{{Label: "Blank"}}).Len())
}
