package hpp

// ProcessRedirect validates and cryptographically verifies a browser
// redirect carrying the payment result. Structural validation alone is not
// enough to trust redirect data, since it travels through the shopper's
// browser: the merchantSig must verify, otherwise the transaction is
// rejected with InvalidTransactionError.
//
// The returned status is the raw authResult value, not a re-derived token;
// callers that want the AUTHORISED/REFUSED pair should check Accepted.
func (g *Gateway) ProcessRedirect(params *FieldSet) (Outcome, error) {
	if params == nil {
		params = NewFieldSet()
	}
	if err := RedirectContract.Check(params); err != nil {
		return Outcome{}, err
	}
	if !g.signer.Verify(params) {
		return Outcome{}, &InvalidTransactionError{}
	}
	result := params.Get(FieldAuthResult)
	return Outcome{
		Accepted: result == ResultAuthorised,
		Status:   result,
		Fields:   params,
	}, nil
}
