package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hpp-gateway/internal/render"
)

func TestAutoSubmitForm(t *testing.T) {
	var sb strings.Builder
	err := render.AutoSubmitForm(&sb, render.FormPage{
		Action: "https://test.example.com/hpp/select.shtml",
		Fields: []render.Field{
			{Kind: "hidden", Name: "merchantAccount", Value: "TestMerchant"},
			{Kind: "hidden", Name: "merchantSig", Value: "abc+def="},
		},
	})
	require.NoError(t, err)

	out := sb.String()
	require.Contains(t, out, `action="https://test.example.com/hpp/select.shtml"`)
	require.Contains(t, out, `name="merchantAccount" value="TestMerchant"`)
	require.Contains(t, out, "document.forms[0].submit()")
	first := strings.Index(out, "merchantAccount")
	second := strings.Index(out, "merchantSig")
	require.Less(t, first, second)
}

func TestAutoSubmitFormEscapesValues(t *testing.T) {
	var sb strings.Builder
	err := render.AutoSubmitForm(&sb, render.FormPage{
		Action: "https://test.example.com/hpp/select.shtml",
		Fields: []render.Field{
			{Kind: "hidden", Name: "merchantReturnData", Value: `"><script>alert(1)</script>`},
		},
	})
	require.NoError(t, err)
	require.NotContains(t, sb.String(), "<script>alert(1)</script>")
}
