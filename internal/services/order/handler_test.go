package order

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakeshop/internal/payment"
)

func newTestHandler(store *fakeStore, gateway *fakeGateway) *Handler {
	svc := newTestService(store, gateway, &fakeNotifier{})
	return NewHandler(svc, svc.logger)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleCashOrder_ValidationResponse(t *testing.T) {
	h := newTestHandler(newFakeStore(), &fakeGateway{})

	rec := postJSON(t, h.HandleCashOrder, "/api/order/handleCashOrder", `{"name":"J4ne"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Errors)
	assert.Equal(t, "name", body.Errors[0].Field)
}

func TestHandleCashOrder_MalformedBody(t *testing.T) {
	h := newTestHandler(newFakeStore(), &fakeGateway{})

	rec := postJSON(t, h.HandleCashOrder, "/api/order/handleCashOrder", `{nope`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePayOnline_DeclineResponse(t *testing.T) {
	gateway := &fakeGateway{result: &payment.ChargeResult{Status: "failed", FailureMessage: "Your card was declined."}}
	h := newTestHandler(newFakeStore(), gateway)

	rec := postJSON(t, h.HandlePayOnline, "/api/order/handlePayOnline", onlinePayload)

	// declines are reported inside a 200, not as an error status
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Your card was declined.", body.Message)
}

func TestHandlePayOnline_SuccessResponse(t *testing.T) {
	gateway := &fakeGateway{result: &payment.ChargeResult{Status: "succeeded", MaskedLast4: "4242"}}
	h := newTestHandler(newFakeStore(), gateway)

	rec := postJSON(t, h.HandlePayOnline, "/api/order/handlePayOnline", onlinePayload)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Order   []json.RawMessage `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Payment Successful", body.Message)
	require.Len(t, body.Order, 1)
	assert.NotContains(t, string(body.Order[0]), "last4")
}

func TestHandlePayOnline_StoreFailure(t *testing.T) {
	store := newFakeStore()
	store.failInsert = true
	gateway := &fakeGateway{result: &payment.ChargeResult{Status: "succeeded"}}
	h := newTestHandler(store, gateway)

	rec := postJSON(t, h.HandlePayOnline, "/api/order/handlePayOnline", onlinePayload)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Error connecting to db"}`, rec.Body.String())
}

func TestDeleteOrder_UnknownType(t *testing.T) {
	h := newTestHandler(newFakeStore(), &fakeGateway{})

	req := httptest.NewRequest(http.MethodDelete, "/api/manage/del/menu/abc", nil)
	req.SetPathValue("orderType", "menu")
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()
	h.DeleteOrder(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
