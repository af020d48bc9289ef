package hpp

// Field names exchanged with the hosted payment page. These are part of the
// wire contract and must match the processor byte for byte.
const (
	FieldAllowedMethods      = "allowedMethods"
	FieldAuthResult          = "authResult"
	FieldBillingAddressType  = "billingAddressType"
	FieldBlockedMethods      = "blockedMethods"
	FieldCountryCode         = "countryCode"
	FieldCurrency            = "currency"
	FieldCurrencyCode        = "currencyCode"
	FieldDeliveryAddressType = "deliveryAddressType"
	FieldEventCode           = "eventCode"
	FieldEventDate           = "eventDate"
	FieldLive                = "live"
	FieldMerchantAccount     = "merchantAccount"
	FieldMerchantAccountCode = "merchantAccountCode"
	FieldMerchantReference   = "merchantReference"
	FieldMerchantReturnData  = "merchantReturnData"
	FieldMerchantSig         = "merchantSig"
	FieldOffset              = "offset"
	FieldOperations          = "operations"
	FieldOriginalReference   = "originalReference"
	FieldPaymentAmount       = "paymentAmount"
	FieldPaymentMethod       = "paymentMethod"
	FieldPspReference        = "pspReference"
	FieldReason              = "reason"
	FieldRecurringContract   = "recurringContract"
	FieldResURL              = "resURL"
	FieldSessionValidity     = "sessionValidity"
	FieldShipBeforeDate      = "shipBeforeDate"
	FieldShopperEmail        = "shopperEmail"
	FieldShopperLocale       = "shopperLocale"
	FieldShopperReference    = "shopperReference"
	FieldShopperStatement    = "shopperStatement"
	FieldShopperType         = "shopperType"
	FieldSkinCode            = "skinCode"
	FieldSuccess             = "success"
	FieldValue               = "value"
)

// AdditionalDataPrefix marks processor-side extension fields on notifications.
// Fields carrying it are dropped before validation rather than rejected.
const AdditionalDataPrefix = "additionalData"

// Payment outcome tokens used by the processor.
const (
	ResultAuthorised = "AUTHORISED"
	ResultRefused    = "REFUSED"
	TrueToken        = "true"
)
