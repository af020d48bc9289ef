// Package render produces the auto-submitting HTML form that forwards the
// shopper to the hosted payment page.
package render

import (
	"html/template"
	"io"
)

// Field is one hidden input of the payment form.
type Field struct {
	Kind  string
	Name  string
	Value string
}

// FormPage holds everything the form template needs.
type FormPage struct {
	Action string
	Fields []Field
}

var formTmpl = template.Must(template.New("payment-form").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Redirecting to payment page</title>
</head>
<body onload="document.forms[0].submit()">
<form method="post" action="{{.Action}}">
{{- range .Fields}}
<input type="{{.Kind}}" name="{{.Name}}" value="{{.Value}}">
{{- end}}
<noscript><button type="submit">Continue to payment</button></noscript>
</form>
</body>
</html>
`))

// AutoSubmitForm writes the form document. Field order is preserved as given.
func AutoSubmitForm(w io.Writer, page FormPage) error {
	return formTmpl.Execute(w, page)
}
