package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyValueAlignment(t *testing.T) {
	doc := NewDocument(32)
	doc.KeyValue("Net Amount", "1180.00")

	line := strings.TrimSuffix(string(doc.Bytes()), "\n")
	assert.Len(t, line, 32)
	assert.True(t, strings.HasPrefix(line, "Net Amount"))
	assert.True(t, strings.HasSuffix(line, "1180.00"))
}

func TestKeyValueOverflowKeepsOneSpace(t *testing.T) {
	doc := NewDocument(10)
	doc.KeyValue("A very long key", "99.00")

	assert.Equal(t, "A very long key 99.00\n", string(doc.Bytes()))
}

func TestCenter(t *testing.T) {
	doc := NewDocument(20)
	doc.Center("SHOP")

	assert.Equal(t, "        SHOP\n", string(doc.Bytes()))
}

func TestSeparator(t *testing.T) {
	doc := NewDocument(8)
	doc.Separator('-')

	assert.Equal(t, "--------\n", string(doc.Bytes()))
}

func TestItemLine(t *testing.T) {
	doc := NewDocument(32)
	doc.ItemLine(2, "Hand Sanitizer", "236.00")

	line := strings.TrimSuffix(string(doc.Bytes()), "\n")
	assert.Len(t, line, 32)
	assert.True(t, strings.HasPrefix(line, "2x Hand Sanitizer"))
	assert.True(t, strings.HasSuffix(line, "236.00"))
}

func TestDefaultWidth(t *testing.T) {
	assert.Equal(t, 42, NewDocument(0).Width())
}

func TestReset(t *testing.T) {
	doc := NewDocument(32)
	doc.Text("hello").Reset()

	assert.Empty(t, doc.Bytes())
}
