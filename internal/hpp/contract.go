package hpp

// Contract is the immutable (required, optional) field specification for one
// interaction type. Required and Optional never overlap.
type Contract struct {
	Required []string
	Optional []string
}

// Check validates a field set against the contract. Required fields are
// checked first, in declared order, so a response missing one reports that
// before any stray field; the unexpected-field pass then walks the field
// set in its own order. The field set is never mutated.
func (c Contract) Check(fields *FieldSet) error {
	for _, name := range c.Required {
		if fields.Get(name) == "" {
			return &MissingFieldError{Field: name}
		}
	}
	for _, name := range fields.Keys() {
		if !c.allows(name) {
			return &UnexpectedFieldError{Field: name}
		}
	}
	return nil
}

func (c Contract) allows(name string) bool {
	for _, known := range c.Required {
		if known == name {
			return true
		}
	}
	for _, known := range c.Optional {
		if known == name {
			return true
		}
	}
	return false
}

// PaymentSetupContract covers the outbound hosted payment page request.
var PaymentSetupContract = Contract{
	Required: []string{
		FieldMerchantAccount,
		FieldMerchantReference,
		FieldShopperReference,
		FieldShopperEmail,
		FieldCurrencyCode,
		FieldPaymentAmount,
		FieldSessionValidity,
		FieldShipBeforeDate,
	},
	Optional: []string{
		FieldMerchantSig,
		FieldSkinCode,
		FieldRecurringContract,
		FieldAllowedMethods,
		FieldBlockedMethods,
		FieldShopperStatement,
		FieldShopperLocale,
		FieldCountryCode,
		FieldResURL,
		FieldMerchantReturnData,
		FieldBillingAddressType,
		FieldDeliveryAddressType,
		FieldShopperType,
		FieldOffset,
	},
}

// NotificationContract covers the server-to-server payment notification,
// after additional-data fields have been stripped.
var NotificationContract = Contract{
	Required: []string{
		FieldCurrency,
		FieldEventCode,
		FieldEventDate,
		FieldLive,
		FieldMerchantAccountCode,
		FieldMerchantReference,
		FieldPaymentMethod,
		FieldPspReference,
		FieldReason,
		FieldSuccess,
		FieldValue,
	},
	Optional: []string{
		FieldOperations,
		FieldOriginalReference,
	},
}

// RedirectContract covers the browser redirect carrying the payment result.
var RedirectContract = Contract{
	Required: []string{
		FieldAuthResult,
		FieldMerchantReference,
		FieldMerchantSig,
		FieldShopperLocale,
		FieldSkinCode,
	},
	Optional: []string{
		FieldMerchantReturnData,
		FieldPaymentMethod,
		FieldPspReference,
	},
}
