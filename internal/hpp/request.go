package hpp

// FormField describes one hidden input of the auto-submitting payment form.
type FormField struct {
	Kind  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PaymentFormRequest is a validated, signed payment setup request. It moves
// through a single linear path: construct, validate, sign, render. A request
// that failed validation is never signed and never observable half-built.
type PaymentFormRequest struct {
	fields *FieldSet
}

// NewPaymentFormRequest validates the merchant-supplied parameters against
// the payment setup contract and signs them. The caller's field set is not
// modified; the signature lands on the request's own copy.
func (g *Gateway) NewPaymentFormRequest(params *FieldSet) (*PaymentFormRequest, error) {
	if params == nil {
		params = NewFieldSet()
	}
	if err := PaymentSetupContract.Check(params); err != nil {
		return nil, err
	}
	signed, err := g.signer.Sign(params)
	if err != nil {
		return nil, err
	}
	return &PaymentFormRequest{fields: signed}, nil
}

// FormFields renders the signed field set as hidden form field descriptors,
// one per field, in the field set's own order.
func (r *PaymentFormRequest) FormFields() []FormField {
	out := make([]FormField, 0, r.fields.Len())
	for _, name := range r.fields.Keys() {
		out = append(out, FormField{Kind: "hidden", Name: name, Value: r.fields.Get(name)})
	}
	return out
}

// Fields returns a copy of the signed field set.
func (r *PaymentFormRequest) Fields() *FieldSet {
	return r.fields.Clone()
}
