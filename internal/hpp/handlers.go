package hpp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/hpp-gateway/internal/common"
	"github.com/noah-isme/hpp-gateway/internal/obs"
	"github.com/noah-isme/hpp-gateway/internal/render"
)

// Handler exposes the gateway over HTTP: outbound form construction plus the
// two inbound callback endpoints.
type Handler struct {
	Gateway   *Gateway
	Logger    zerolog.Logger
	Validate  *validator.Validate
	Replay    *redis.Client
	ReplayTTL time.Duration
	// SkinCode is applied to outbound requests that do not carry their own.
	SkinCode string
}

type paymentFormReq struct {
	MerchantReference   string `json:"merchantReference" validate:"required"`
	PaymentAmount       string `json:"paymentAmount" validate:"required,numeric"`
	CurrencyCode        string `json:"currencyCode" validate:"required,len=3,uppercase"`
	ShipBeforeDate      string `json:"shipBeforeDate" validate:"required"`
	SessionValidity     string `json:"sessionValidity" validate:"required"`
	ShopperEmail        string `json:"shopperEmail" validate:"required,email"`
	ShopperReference    string `json:"shopperReference" validate:"required"`
	SkinCode            string `json:"skinCode,omitempty" validate:"omitempty,alphanum"`
	RecurringContract   string `json:"recurringContract,omitempty"`
	AllowedMethods      string `json:"allowedMethods,omitempty"`
	BlockedMethods      string `json:"blockedMethods,omitempty"`
	ShopperStatement    string `json:"shopperStatement,omitempty"`
	ShopperLocale       string `json:"shopperLocale,omitempty"`
	CountryCode         string `json:"countryCode,omitempty" validate:"omitempty,len=2"`
	ReturnURL           string `json:"resURL,omitempty" validate:"omitempty,url"`
	MerchantReturnData  string `json:"merchantReturnData,omitempty"`
	BillingAddressType  string `json:"billingAddressType,omitempty"`
	DeliveryAddressType string `json:"deliveryAddressType,omitempty"`
	ShopperType         string `json:"shopperType,omitempty"`
	Offset              string `json:"offset,omitempty"`
}

type paymentFormResp struct {
	Action string      `json:"action"`
	Fields []FormField `json:"fields"`
}

// PaymentForm validates the merchant parameters, signs them and returns the
// hidden form field descriptors. With ?render=html the response is the
// auto-submitting form document instead of JSON.
func (h Handler) PaymentForm(w http.ResponseWriter, r *http.Request) {
	if h.Gateway == nil {
		common.JSONError(w, http.StatusInternalServerError, "GATEWAY_NOT_CONFIGURED", "payment gateway unavailable", nil)
		return
	}
	var req paymentFormReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid body", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid payment parameters", validationDetails(err))
			obs.CountFormRequest("invalid")
			return
		}
	}
	fields := req.fieldSet(h.Gateway.Identifier(), h.SkinCode)
	formReq, err := h.Gateway.NewPaymentFormRequest(fields)
	if err != nil {
		status, code := statusForInteractionError(err)
		common.JSONError(w, status, code, err.Error(), nil)
		obs.CountFormRequest("rejected")
		return
	}
	obs.CountFormRequest("signed")
	if strings.EqualFold(r.URL.Query().Get("render"), "html") {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := render.AutoSubmitForm(w, render.FormPage{
			Action: h.Gateway.ActionURL(),
			Fields: toRenderFields(formReq.FormFields()),
		}); err != nil {
			h.Logger.Error().Err(err).Msg("render payment form")
		}
		return
	}
	common.JSON(w, http.StatusOK, paymentFormResp{
		Action: h.Gateway.ActionURL(),
		Fields: formReq.FormFields(),
	})
}

// Notification processes the server-to-server payment notification. The
// processor retries deliveries, so duplicates are fenced off via Redis
// before the payload reaches the core.
func (h Handler) Notification(w http.ResponseWriter, r *http.Request) {
	if h.Gateway == nil {
		common.JSONError(w, http.StatusInternalServerError, "GATEWAY_NOT_CONFIGURED", "notification endpoint unavailable", nil)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "unable to read payload", nil)
		return
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "payload is not form-encoded", nil)
		return
	}
	if h.Replay != nil && h.ReplayTTL > 0 {
		key := fmt.Sprintf("hpp:notif:%s", common.Sha256Hex(body))
		ok, err := h.Replay.SetNX(r.Context(), key, "1", h.ReplayTTL).Result()
		if err != nil {
			common.JSONError(w, http.StatusInternalServerError, "REPLAY_STORE_ERROR", err.Error(), nil)
			return
		}
		if !ok {
			obs.CountNotification("replay")
			common.JSONError(w, http.StatusConflict, "REPLAY", "duplicate notification", nil)
			return
		}
	}
	outcome, err := h.Gateway.ProcessNotification(FieldSetFromValues(values))
	if err != nil {
		status, code := statusForInteractionError(err)
		obs.CountNotification("invalid")
		common.JSONError(w, status, code, err.Error(), nil)
		return
	}
	result := "refused"
	if outcome.Accepted {
		result = "accepted"
	}
	obs.CountNotification(result)
	h.Logger.Info().
		Str("psp_reference", outcome.Fields.Get(FieldPspReference)).
		Str("merchant_reference", outcome.Fields.Get(FieldMerchantReference)).
		Str("event_code", outcome.Fields.Get(FieldEventCode)).
		Str("status", outcome.Status).
		Msg("payment_notification")
	// Acknowledgement body the processor expects before it stops retrying.
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("[accepted]"))
}

type redirectResp struct {
	Accepted bool              `json:"accepted"`
	Status   string            `json:"status"`
	Fields   map[string]string `json:"fields"`
}

// Redirect processes the browser redirect carrying the payment result.
// Signature failures are logged distinctly: they indicate tampering, not a
// malformed request.
func (h Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	if h.Gateway == nil {
		common.JSONError(w, http.StatusInternalServerError, "GATEWAY_NOT_CONFIGURED", "redirect endpoint unavailable", nil)
		return
	}
	fields := FieldSetFromValues(r.URL.Query())
	outcome, err := h.Gateway.ProcessRedirect(fields)
	if err != nil {
		var invalid *InvalidTransactionError
		if errors.As(err, &invalid) {
			obs.CountRedirect("invalid_signature")
			h.Logger.Warn().
				Str("merchant_reference", fields.Get(FieldMerchantReference)).
				Str("psp_reference", fields.Get(FieldPspReference)).
				Str("remote_addr", r.RemoteAddr).
				Msg("redirect_signature_mismatch")
			common.JSONError(w, http.StatusForbidden, "INVALID_SIGNATURE", err.Error(), nil)
			return
		}
		status, code := statusForInteractionError(err)
		obs.CountRedirect("invalid")
		common.JSONError(w, status, code, err.Error(), nil)
		return
	}
	result := "refused"
	if outcome.Accepted {
		result = "authorised"
	}
	obs.CountRedirect(result)
	common.JSON(w, http.StatusOK, redirectResp{
		Accepted: outcome.Accepted,
		Status:   outcome.Status,
		Fields:   outcome.Fields.Map(),
	})
}

func (req paymentFormReq) fieldSet(merchantAccount, defaultSkin string) *FieldSet {
	fields := NewFieldSet()
	fields.Set(FieldMerchantAccount, merchantAccount)
	set := func(name, value string) {
		if strings.TrimSpace(value) != "" {
			fields.Set(name, value)
		}
	}
	skin := req.SkinCode
	if strings.TrimSpace(skin) == "" {
		skin = defaultSkin
	}
	set(FieldMerchantReference, req.MerchantReference)
	set(FieldPaymentAmount, req.PaymentAmount)
	set(FieldCurrencyCode, req.CurrencyCode)
	set(FieldShipBeforeDate, req.ShipBeforeDate)
	set(FieldSessionValidity, req.SessionValidity)
	set(FieldShopperEmail, req.ShopperEmail)
	set(FieldShopperReference, req.ShopperReference)
	set(FieldSkinCode, skin)
	set(FieldRecurringContract, req.RecurringContract)
	set(FieldAllowedMethods, req.AllowedMethods)
	set(FieldBlockedMethods, req.BlockedMethods)
	set(FieldShopperStatement, req.ShopperStatement)
	set(FieldShopperLocale, req.ShopperLocale)
	set(FieldCountryCode, req.CountryCode)
	set(FieldResURL, req.ReturnURL)
	set(FieldMerchantReturnData, req.MerchantReturnData)
	set(FieldBillingAddressType, req.BillingAddressType)
	set(FieldDeliveryAddressType, req.DeliveryAddressType)
	set(FieldShopperType, req.ShopperType)
	set(FieldOffset, req.Offset)
	return fields
}

func statusForInteractionError(err error) (int, string) {
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		return http.StatusBadRequest, "MISSING_FIELD"
	}
	var unexpected *UnexpectedFieldError
	if errors.As(err, &unexpected) {
		return http.StatusBadRequest, "UNEXPECTED_FIELD"
	}
	return http.StatusInternalServerError, "INTERNAL"
}

func validationDetails(err error) any {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}

func toRenderFields(fields []FormField) []render.Field {
	out := make([]render.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, render.Field{Kind: f.Kind, Name: f.Name, Value: f.Value})
	}
	return out
}
