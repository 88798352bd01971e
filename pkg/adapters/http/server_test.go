package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/fluxfee"
	"github.com/aretw0/fluxfee/internal/testutils"
	"github.com/aretw0/fluxfee/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(client *testutils.FakeClient, opts ...Option) http.Handler {
	return NewHandler(fluxfee.New(client), opts...)
}

func TestInvokeAction_Success(t *testing.T) {
	client := &testutils.FakeClient{Signature: "5xSig"}
	handler := newHandler(client)

	body := `{"quoteReq":{"quote":{"payer":"SomePubKeyString","fee":1000000}},"priorityFee":100000}`
	req := httptest.NewRequest(http.MethodPost, "/actions/"+domain.ActionSubmitFeePayment, strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t,
		`{"status":"success","message":"Fee payment transaction submitted successfully","transaction":"5xSig"}`,
		w.Body.String())

	payments := client.Payments()
	require.Len(t, payments, 1)
	assert.Equal(t, `{"quote":{"payer":"SomePubKeyString","fee":1000000}}`, string(payments[0].QuoteReq))
}

func TestInvokeAction_ErrorEnvelope(t *testing.T) {
	client := &testutils.FakeClient{Signature: "unused"}
	handler := newHandler(client)

	body := `{"payer":"` + testutils.PayerAddress + `","mint":"invalid","priorityFee":5000}`
	req := httptest.NewRequest(http.MethodPost, "/actions/"+domain.ActionSubmitFeeClaim, strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "error", out["status"])
	assert.Equal(t, domain.CodeUnknown, out["code"])
	assert.Empty(t, client.Claims())
}

func TestInvokeAction_UnknownAction(t *testing.T) {
	handler := newHandler(&testutils.FakeClient{})

	req := httptest.NewRequest(http.MethodPost, "/actions/solana_transfer", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "solana_transfer")
}

func TestInvokeAction_BodyTooLarge(t *testing.T) {
	handler := newHandler(&testutils.FakeClient{})

	body := strings.Repeat("a", MaxBodySize+1)
	req := httptest.NewRequest(http.MethodPost, "/actions/"+domain.ActionSubmitFeePayment, strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestListActions(t *testing.T) {
	handler := newHandler(&testutils.FakeClient{})

	req := httptest.NewRequest(http.MethodGet, "/actions", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var infos []domain.ActionInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, domain.ActionSubmitFeeClaim, infos[0].Name)
	assert.Equal(t, domain.ActionSubmitFeePayment, infos[1].Name)
}

func TestHealth(t *testing.T) {
	handler := newHandler(&testutils.FakeClient{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestMetricsRoute(t *testing.T) {
	t.Run("Absent By Default", func(t *testing.T) {
		w := httptest.NewRecorder()
		newHandler(&testutils.FakeClient{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Mounted", func(t *testing.T) {
		metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("fluxfee_action_invocations_total 1\n"))
		})
		w := httptest.NewRecorder()
		newHandler(&testutils.FakeClient{}, WithMetrics(metrics)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "fluxfee_action_invocations_total")
	})
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/actions/"+domain.ActionSubmitFeeClaim, nil)
	w := httptest.NewRecorder()
	newHandler(&testutils.FakeClient{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ListenAndServe(ctx, "127.0.0.1:0", http.NotFoundHandler(), nil)
	}()
	cancel()
	assert.NoError(t, <-done)
}
