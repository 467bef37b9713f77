package upbit

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "test_secret"

// parseAuthToken은 Authorization 헤더의 JWT를 검증하고 클레임을 반환합니다
func parseAuthToken(t *testing.T, r *http.Request) jwt.MapClaims {
	t.Helper()

	header := r.Header.Get("Authorization")
	require.True(t, strings.HasPrefix(header, "Bearer "), "Authorization 헤더가 없습니다")

	token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecretKey), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestHTTPTransportGetBalances(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/accounts", r.URL.Path)

		claims := parseAuthToken(t, r)
		assert.Equal(t, "test_access", claims["access_key"])
		assert.NotEmpty(t, claims["nonce"])
		// 파라미터가 없는 요청에는 query_hash를 넣지 않는다
		assert.Nil(t, claims["query_hash"])

		w.Write([]byte(`[{"currency": "KRW", "balance": "1000", "locked": "0",
			"avg_buy_price": "0", "avg_buy_price_modified": false, "unit_currency": "KRW"}]`))
	}))
	defer server.Close()

	transport := NewHTTPTransport("test_access", testSecretKey, WithBaseURL(server.URL))

	raw, err := transport.GetBalances(context.Background())

	require.NoError(t, err)
	balances, err := parseBalances(raw)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "KRW", balances[0].Currency)
}

func TestHTTPTransportGetBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"currency": "KRW", "balance": "1000000", "locked": "0",
			 "avg_buy_price": "0", "avg_buy_price_modified": false, "unit_currency": "KRW"},
			{"currency": "BTC", "balance": "0.5", "locked": "0",
			 "avg_buy_price": "50000000", "avg_buy_price_modified": false, "unit_currency": "KRW"}
		]`))
	}))
	defer server.Close()

	transport := NewHTTPTransport("test_access", testSecretKey, WithBaseURL(server.URL))
	ctx := context.Background()

	t.Run("마켓 코드에서 자산 코드를 찾아 조회", func(t *testing.T) {
		balance, err := transport.GetBalance(ctx, "KRW-BTC")

		require.NoError(t, err)
		require.NotNil(t, balance)
		assert.Equal(t, 0.5, *balance)
	})

	t.Run("자산 코드 그대로도 조회", func(t *testing.T) {
		balance, err := transport.GetBalance(ctx, "KRW")

		require.NoError(t, err)
		require.NotNil(t, balance)
		assert.Equal(t, 1000000.0, *balance)
	})

	t.Run("계좌에 없는 자산은 nil", func(t *testing.T) {
		balance, err := transport.GetBalance(ctx, "KRW-ETH")

		require.NoError(t, err)
		assert.Nil(t, balance)
	})
}

func TestHTTPTransportBuyMarketOrder(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(body)

		// query_hash는 요청 본문의 SHA512 해시여야 한다
		claims := parseAuthToken(t, r)
		hash := sha512.Sum512(body)
		assert.Equal(t, hex.EncodeToString(hash[:]), claims["query_hash"])
		assert.Equal(t, "SHA512", claims["query_hash_alg"])

		w.Write([]byte(buyOrderResponse))
	}))
	defer server.Close()

	transport := NewHTTPTransport("test_access", testSecretKey, WithBaseURL(server.URL))

	raw, err := transport.BuyMarketOrder(context.Background(), "KRW-BTC", 50000.0)

	require.NoError(t, err)
	order, err := parseOrder(raw)
	require.NoError(t, err)
	assert.Equal(t, "test-uuid-123", order.UUID)

	params, err := url.ParseQuery(gotBody)
	require.NoError(t, err)
	assert.Equal(t, "KRW-BTC", params.Get("market"))
	assert.Equal(t, "bid", params.Get("side"))
	assert.Equal(t, "price", params.Get("ord_type"))
	assert.Equal(t, "50000", params.Get("price"))
	assert.Empty(t, params.Get("volume"))
}

func TestHTTPTransportSellMarketOrder(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(sellOrderResponse))
	}))
	defer server.Close()

	transport := NewHTTPTransport("test_access", testSecretKey, WithBaseURL(server.URL))

	raw, err := transport.SellMarketOrder(context.Background(), "KRW-BTC", 0.001)

	require.NoError(t, err)
	order, err := parseOrder(raw)
	require.NoError(t, err)
	assert.Equal(t, "test-uuid-456", order.UUID)

	params, err := url.ParseQuery(gotBody)
	require.NoError(t, err)
	assert.Equal(t, "ask", params.Get("side"))
	assert.Equal(t, "market", params.Get("ord_type"))
	assert.Equal(t, "0.001", params.Get("volume"))
	assert.Empty(t, params.Get("price"))
}

func TestHTTPTransportErrorPassthrough(t *testing.T) {
	// 에러 응답은 상태 코드와 무관하게 본문 그대로 상위 계층에 전달된다
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "This is not a verified IP.", "name": "no_authorization_ip"}}`))
	}))
	defer server.Close()

	transport := NewHTTPTransport("test_access", testSecretKey, WithBaseURL(server.URL))

	raw, err := transport.GetBalances(context.Background())
	require.NoError(t, err)

	_, err = parseBalances(raw)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "no_authorization_ip", apiErr.Name)
}

func TestCurrencyFromTicker(t *testing.T) {
	tests := []struct {
		ticker string
		want   string
	}{
		{"KRW-BTC", "BTC"},
		{"KRW-ETH", "ETH"},
		{"KRW", "KRW"},
		{"BTC", "BTC"},
	}

	for _, tt := range tests {
		t.Run(tt.ticker, func(t *testing.T) {
			assert.Equal(t, tt.want, currencyFromTicker(tt.ticker))
		})
	}
}
