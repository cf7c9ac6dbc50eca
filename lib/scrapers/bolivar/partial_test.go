package bolivar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const partialEnvelope = `<?xml version="1.0" encoding="UTF-8"?>
<partial-response><changes>
<update id="FormIndex:datosSolicitud"><![CDATA[<table id="FormIndex:datosSolicitud"><tr><td><label>Estado Siniestro:</label></td><td><label>Nuevo</label></td></tr></table>]]></update>
<update id="j_id1:javax.faces.ViewState:0"><![CDATA[-12345:67890]]></update>
</changes></partial-response>`

func TestUnwrapPartialResponse(t *testing.T) {
	out := unwrapPartialResponse(partialEnvelope)
	require.Contains(t, out, `<table id="FormIndex:datosSolicitud">`)
	require.Contains(t, out, "-12345:67890")
}

func TestUnwrapPlainHtmlPassesThrough(t *testing.T) {
	page := "<html><body><p>hola</p></body></html>"
	require.Equal(t, page, unwrapPartialResponse(page))
}

// unwrapping an already-unwrapped document returns it unchanged
func TestUnwrapIsIdempotent(t *testing.T) {
	once := unwrapPartialResponse(partialEnvelope)
	require.Equal(t, once, unwrapPartialResponse(once))
}

func TestUnwrapDecodesEscapedMarkup(t *testing.T) {
	envelope := `<partial-response><changes>` +
		`<update id="FormIndex:panel">&lt;table&gt;&lt;tr&gt;&lt;td&gt;Estado&lt;/td&gt;&lt;/tr&gt;&lt;/table&gt;</update>` +
		`</changes></partial-response>`
	out := unwrapPartialResponse(envelope)
	require.Contains(t, out, "<table><tr><td>Estado</td></tr></table>")
}

func TestUnwrapJoinsMultipleUpdates(t *testing.T) {
	envelope := `<partial-response><changes>` +
		`<update id="a"><![CDATA[uno]]></update>` +
		`<update id="b"><![CDATA[dos]]></update>` +
		`</changes></partial-response>`
	out := unwrapPartialResponse(envelope)
	require.Equal(t, "uno\ndos", out)
}

// malformed XML falls back to the raw text instead of erroring
func TestUnwrapMalformedXml(t *testing.T) {
	broken := `<partial-response><update id="x">unclosed`
	out := unwrapPartialResponse(broken)
	require.True(t, out == broken || strings.Contains(out, "unclosed"))
}
