package upbit

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/autobit/magpie/internal/exchange"
)

// HTTPTransport는 업비트 인증 API 호출을 구현합니다
type HTTPTransport struct {
	accessKey  string
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

var _ exchange.Transport = (*HTTPTransport)(nil)

// TransportOption은 전송 계층 생성 옵션을 정의합니다
type TransportOption func(*HTTPTransport)

// WithTimeout은 HTTP 클라이언트의 타임아웃을 설정합니다
func WithTimeout(timeout time.Duration) TransportOption {
	return func(t *HTTPTransport) {
		t.httpClient.Timeout = timeout
	}
}

// WithBaseURL은 기본 URL을 설정합니다
func WithBaseURL(baseURL string) TransportOption {
	return func(t *HTTPTransport) {
		t.baseURL = baseURL
	}
}

// NewHTTPTransport는 새로운 업비트 전송 계층을 생성합니다
func NewHTTPTransport(accessKey, secretKey string, opts ...TransportOption) *HTTPTransport {
	t := &HTTPTransport{
		accessKey:  accessKey,
		secretKey:  secretKey,
		baseURL:    "https://api.upbit.com",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	// 옵션 적용
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// sign은 요청 파라미터에 대한 인증 토큰(JWT, HS256)을 생성합니다
func (t *HTTPTransport) sign(query string) (string, error) {
	claims := jwt.MapClaims{
		"access_key": t.accessKey,
		"nonce":      uuid.NewString(),
	}
	if query != "" {
		hash := sha512.Sum512([]byte(query))
		claims["query_hash"] = hex.EncodeToString(hash[:])
		claims["query_hash_alg"] = "SHA512"
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.secretKey))
}

// doRequest는 인증 헤더를 붙여 HTTP 요청을 실행하고 응답 본문을 반환합니다.
// 업비트는 에러도 정상 응답과 같은 채널로 알려오므로 상태 코드를 해석하지 않고
// 본문을 그대로 반환하여 상위 계층이 판별하게 합니다.
func (t *HTTPTransport) doRequest(ctx context.Context, method, endpoint string, params url.Values) (json.RawMessage, error) {
	reqURL, err := url.Parse(t.baseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("URL 파싱 실패: %w", err)
	}

	query := ""
	if params != nil {
		query = params.Encode()
	}

	var body io.Reader
	if method == http.MethodGet {
		reqURL.RawQuery = query
	} else if query != "" {
		body = strings.NewReader(query)
	}

	// 서명 생성
	token, err := t.sign(query)
	if err != nil {
		return nil, fmt.Errorf("인증 토큰 생성 실패: %w", err)
	}

	// 요청 생성
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("요청 생성 실패: %w", err)
	}

	// 헤더 설정
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	// 요청 실행
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	// 응답 읽기
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("응답 읽기 실패: %w", err)
	}

	return respBody, nil
}

// GetBalances는 전체 계좌 잔고 응답 본문을 반환합니다
func (t *HTTPTransport) GetBalances(ctx context.Context) (json.RawMessage, error) {
	return t.doRequest(ctx, http.MethodGet, "/v1/accounts", nil)
}

// GetBalance는 특정 자산의 주문 가능 잔고를 조회합니다.
// 해당 자산이 계좌에 없으면 nil을 반환합니다.
func (t *HTTPTransport) GetBalance(ctx context.Context, ticker string) (*float64, error) {
	raw, err := t.GetBalances(ctx)
	if err != nil {
		return nil, err
	}

	balances, err := parseBalances(raw)
	if err != nil {
		return nil, err
	}

	currency := currencyFromTicker(ticker)
	for _, b := range balances {
		if b.Currency == currency {
			f, _ := b.Balance.Float64()
			return &f, nil
		}
	}
	return nil, nil
}

// BuyMarketOrder는 금액(KRW) 기준 시장가 매수 주문(ord_type=price)을 접수합니다
func (t *HTTPTransport) BuyMarketOrder(ctx context.Context, ticker string, amount float64) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("market", ticker)
	params.Set("side", "bid")
	params.Set("ord_type", "price")
	params.Set("price", strconv.FormatFloat(amount, 'f', -1, 64))

	return t.doRequest(ctx, http.MethodPost, "/v1/orders", params)
}

// SellMarketOrder는 수량 기준 시장가 매도 주문(ord_type=market)을 접수합니다
func (t *HTTPTransport) SellMarketOrder(ctx context.Context, ticker string, volume float64) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("market", ticker)
	params.Set("side", "ask")
	params.Set("ord_type", "market")
	params.Set("volume", strconv.FormatFloat(volume, 'f', -1, 64))

	return t.doRequest(ctx, http.MethodPost, "/v1/orders", params)
}

// currencyFromTicker는 마켓 코드에서 자산 코드를 꺼냅니다.
// "KRW-BTC" -> "BTC", "KRW" -> "KRW"
func currencyFromTicker(ticker string) string {
	if idx := strings.LastIndex(ticker, "-"); idx >= 0 {
		return ticker[idx+1:]
	}
	return ticker
}
