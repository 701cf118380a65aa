package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTMLSanitized_RendersMarkdown(t *testing.T) {
	svc := NewService()

	out, err := svc.ToHTMLSanitized("**printer** is on fire")

	require.NoError(t, err)
	assert.Contains(t, out, "<strong>printer</strong>")
}

func TestToHTMLSanitized_StripsScripts(t *testing.T) {
	svc := NewService()

	out, err := svc.ToHTMLSanitized("hello <script>alert('x')</script> world")

	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "alert")
	assert.Contains(t, out, "hello")
}

func TestToHTMLSanitized_KeepsLinksAndTables(t *testing.T) {
	svc := NewService()

	out, err := svc.ToHTMLSanitized("see https://status.example.com for details")

	require.NoError(t, err)
	assert.Contains(t, out, "<a href=")
	assert.Contains(t, out, "https://status.example.com")
}
