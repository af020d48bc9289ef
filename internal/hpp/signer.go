package hpp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"strings"
)

// Signer produces and verifies the merchantSig integrity signature. The
// gateway holds one implementation chosen at configuration time; HMACSigner
// below covers the standard shared-secret skin setup, a remote key service
// would implement the same interface.
type Signer interface {
	// Sign returns a copy of the field set with merchantSig appended.
	Sign(fields *FieldSet) (*FieldSet, error)
	// Verify recomputes the signature over the inbound fields and compares
	// it to the merchantSig present. It reports false on any mismatch,
	// including a missing signature field, and never fails.
	Verify(fields *FieldSet) bool
}

// setupSigningOrder is the canonical concatenation order for the payment
// setup signing string. The processor computes the same string on its side;
// any divergence breaks verification, so the order is fixed and fields the
// caller did not supply contribute an empty string rather than being skipped.
var setupSigningOrder = []string{
	FieldPaymentAmount,
	FieldCurrencyCode,
	FieldShipBeforeDate,
	FieldMerchantReference,
	FieldSkinCode,
	FieldMerchantAccount,
	FieldSessionValidity,
	FieldShopperEmail,
	FieldShopperReference,
	FieldRecurringContract,
	FieldAllowedMethods,
	FieldBlockedMethods,
	FieldShopperStatement,
	FieldMerchantReturnData,
	FieldBillingAddressType,
	FieldDeliveryAddressType,
	FieldShopperType,
	FieldOffset,
}

// resultSigningOrder is the canonical order for the payment result string
// carried back on the browser redirect.
var resultSigningOrder = []string{
	FieldAuthResult,
	FieldPspReference,
	FieldMerchantReference,
	FieldSkinCode,
	FieldMerchantReturnData,
}

// HMACSigner signs with HMAC-SHA1 over the canonical signing string and
// base64-encodes the digest, matching the skin-level HMAC key configured at
// the processor.
type HMACSigner struct {
	Secret string
}

// Sign computes the payment setup signature and returns a copy of the field
// set with merchantSig set. The input is left untouched.
func (s HMACSigner) Sign(fields *FieldSet) (*FieldSet, error) {
	if strings.TrimSpace(s.Secret) == "" {
		return nil, errors.New("hmac signer has no secret configured")
	}
	signed := fields.Clone()
	signed.Set(FieldMerchantSig, s.digest(setupSigningOrder, fields))
	return signed, nil
}

// Verify recomputes the result signature and compares it in constant time
// against the merchantSig carried by the redirect.
func (s HMACSigner) Verify(fields *FieldSet) bool {
	provided, ok := fields.Lookup(FieldMerchantSig)
	if !ok || provided == "" {
		return false
	}
	expected := s.digest(resultSigningOrder, fields)
	return hmac.Equal([]byte(expected), []byte(provided))
}

func (s HMACSigner) digest(order []string, fields *FieldSet) string {
	var sb strings.Builder
	for _, name := range order {
		sb.WriteString(fields.Get(name))
	}
	mac := hmac.New(sha1.New, []byte(s.Secret))
	mac.Write([]byte(sb.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
