package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/cvwizard/internal/wizard"
)

func TestIsMarkup(t *testing.T) {
	assert.True(t, IsMarkup("  <h1>Ada</h1>"))
	assert.False(t, IsMarkup("# Ada"))
	assert.False(t, IsMarkup(""))

	for _, content := range []string{"\n\t<p>Ada</p>", "Ada <b>Lovelace</b>", "  "} {
		assert.Equal(t, wizard.DetectFormat(content) == wizard.FormatMarkup, IsMarkup(content), content)
	}
}

func TestHTMLMarkdown(t *testing.T) {
	out, err := HTML("# Ada Lovelace\n\n- **Go**\n- SQL\n\n<script>alert(1)</script>")
	require.NoError(t, err)

	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "Ada Lovelace</h1>")
	assert.Contains(t, out, "<strong>Go</strong>")
	assert.NotContains(t, out, "<script")
}

func TestHTMLMarkupIsSanitized(t *testing.T) {
	out, err := HTML(`<h1 onclick="steal()">Ada</h1><script>alert(1)</script><p>Engineer</p>`)
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Ada</h1>")
	assert.Contains(t, out, "<p>Engineer</p>")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "alert")
}

func TestTerminalMarkup(t *testing.T) {
	out, err := Terminal("<h1>Ada &amp; Co</h1><p>Engineer</p><script>x</script>", 40)
	require.NoError(t, err)

	assert.Equal(t, "Ada & Co\nEngineer", out)
}

func TestTerminalMarkdown(t *testing.T) {
	out, err := Terminal("# Ada\n\nEngineer", 0)
	require.NoError(t, err)

	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "Engineer")
	assert.NotContains(t, out, "# Ada")

	empty, err := Terminal("   ", 40)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPage(t *testing.T) {
	page, err := Page("Ada <CV>", "# Ada")
	require.NoError(t, err)

	doc := string(page)
	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "<title>Ada &lt;CV&gt;</title>")
	assert.Contains(t, doc, "Ada</h1>")
}
