package hpp_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hpp-gateway/internal/hpp"
)

func testHandler(t *testing.T) hpp.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return hpp.Handler{
		Gateway:   testGateway(t),
		Logger:    zerolog.Nop(),
		Validate:  validator.New(),
		Replay:    client,
		ReplayTTL: time.Minute,
	}
}

func paymentFormBody() string {
	return `{
		"merchantReference": "order-42",
		"paymentAmount": "10000",
		"currencyCode": "EUR",
		"shipBeforeDate": "2026-09-05",
		"sessionValidity": "2026-09-01T10:00:00Z",
		"shopperEmail": "shopper@example.com",
		"shopperReference": "shopper-7"
	}`
}

func TestPaymentFormEndpoint(t *testing.T) {
	handler := testHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/form", strings.NewReader(paymentFormBody()))
	rr := httptest.NewRecorder()
	handler.PaymentForm(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Action string `json:"action"`
		Fields []struct {
			Kind  string `json:"type"`
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "https://test.example.com/hpp/select.shtml", resp.Action)

	var sig string
	for _, f := range resp.Fields {
		require.Equal(t, "hidden", f.Kind)
		if f.Name == hpp.FieldMerchantSig {
			sig = f.Value
		}
	}
	require.NotEmpty(t, sig)
}

func TestPaymentFormEndpointRendersHTML(t *testing.T) {
	handler := testHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/form?render=html", strings.NewReader(paymentFormBody()))
	rr := httptest.NewRecorder()
	handler.PaymentForm(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	body := rr.Body.String()
	require.Contains(t, body, `action="https://test.example.com/hpp/select.shtml"`)
	require.Contains(t, body, `name="merchantSig"`)
	require.Contains(t, body, "document.forms[0].submit()")
}

func TestPaymentFormEndpointRejectsBadEmail(t *testing.T) {
	handler := testHandler(t)
	body := strings.Replace(paymentFormBody(), "shopper@example.com", "not-an-email", 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/form", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.PaymentForm(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "VALIDATION_FAILED")
}

func notificationBody(success string) string {
	values := url.Values{}
	values.Set(hpp.FieldCurrency, "EUR")
	values.Set(hpp.FieldEventCode, "AUTHORISATION")
	values.Set(hpp.FieldEventDate, "2026-08-25T10:00:00+02:00")
	values.Set(hpp.FieldLive, "false")
	values.Set(hpp.FieldMerchantAccountCode, "TestMerchant")
	values.Set(hpp.FieldMerchantReference, "order-42")
	values.Set(hpp.FieldPaymentMethod, "visa")
	values.Set(hpp.FieldPspReference, "8816281505278603")
	values.Set(hpp.FieldReason, "83653:1111:6/2028")
	values.Set(hpp.FieldSuccess, success)
	values.Set(hpp.FieldValue, "10000")
	return values.Encode()
}

func postNotification(handler hpp.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payment/notification", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.Notification(rr, req)
	return rr
}

func TestNotificationEndpointAccepted(t *testing.T) {
	handler := testHandler(t)
	rr := postNotification(handler, notificationBody("true"))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "[accepted]", rr.Body.String())
}

func TestNotificationEndpointStripsAdditionalData(t *testing.T) {
	handler := testHandler(t)
	rr := postNotification(handler, notificationBody("true")+"&additionalData.cardSummary=1111")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "[accepted]", rr.Body.String())
}

func TestNotificationEndpointRejectsDuplicate(t *testing.T) {
	handler := testHandler(t)
	body := notificationBody("true")
	first := postNotification(handler, body)
	require.Equal(t, http.StatusOK, first.Code)

	second := postNotification(handler, body)
	require.Equal(t, http.StatusConflict, second.Code)
	require.Contains(t, second.Body.String(), "REPLAY")
}

func TestNotificationEndpointRejectsUnexpectedField(t *testing.T) {
	handler := testHandler(t)
	rr := postNotification(handler, notificationBody("true")+"&injectedField=value")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "UNEXPECTED_FIELD")
}

func redirectQuery(t *testing.T, tamper bool) string {
	t.Helper()
	reference := "order-42"
	sig := hmacBase64(t, testSecret, "AUTHORISED", "8816281505278603", reference, "4aD37dJA", "")
	if tamper {
		reference = "order-43"
	}
	values := url.Values{}
	values.Set(hpp.FieldAuthResult, "AUTHORISED")
	values.Set(hpp.FieldPspReference, "8816281505278603")
	values.Set(hpp.FieldMerchantReference, reference)
	values.Set(hpp.FieldSkinCode, "4aD37dJA")
	values.Set(hpp.FieldShopperLocale, "en_GB")
	values.Set(hpp.FieldMerchantSig, sig)
	return values.Encode()
}

func TestRedirectEndpointAuthorised(t *testing.T) {
	handler := testHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/return?"+redirectQuery(t, false), nil)
	rr := httptest.NewRecorder()
	handler.Redirect(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Accepted bool              `json:"accepted"`
		Status   string            `json:"status"`
		Fields   map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.True(t, resp.Accepted)
	require.Equal(t, "AUTHORISED", resp.Status)
	require.Equal(t, "order-42", resp.Fields[hpp.FieldMerchantReference])
}

func TestRedirectEndpointRejectsTamperedSignature(t *testing.T) {
	handler := testHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/return?"+redirectQuery(t, true), nil)
	rr := httptest.NewRecorder()
	handler.Redirect(rr, req)

	require.Equal(t, http.StatusForbidden, rr.Code)
	require.Contains(t, rr.Body.String(), "INVALID_SIGNATURE")
}

func TestRedirectEndpointRejectsMissingField(t *testing.T) {
	handler := testHandler(t)
	values, err := url.ParseQuery(redirectQuery(t, false))
	require.NoError(t, err)
	values.Del(hpp.FieldShopperLocale)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/return?"+values.Encode(), nil)
	rr := httptest.NewRecorder()
	handler.Redirect(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "MISSING_FIELD")
}
