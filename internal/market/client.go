package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/autobit/magpie/internal/domain"
	"github.com/autobit/magpie/internal/exchange"
)

// kst는 업비트 캔들 시각의 기준 시간대입니다
var kst = time.FixedZone("KST", 9*60*60)

// Client는 업비트 시세 API 클라이언트를 구현합니다. 인증이 필요 없습니다.
type Client struct {
	baseURL    string
	candleUnit int // 분 단위 캔들 기간 (예: 60)
	httpClient *http.Client
}

var _ exchange.CandleSource = (*Client)(nil)

// ClientOption은 클라이언트 생성 옵션을 정의합니다
type ClientOption func(*Client)

// WithTimeout은 HTTP 클라이언트의 타임아웃을 설정합니다
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithBaseURL은 기본 URL을 설정합니다
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithCandleUnit은 분 캔들의 기간(분)을 설정합니다
func WithCandleUnit(unit int) ClientOption {
	return func(c *Client) {
		c.candleUnit = unit
	}
}

// NewClient는 새로운 시세 API 클라이언트를 생성합니다
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    "https://api.upbit.com",
		candleUnit: 60, // 기본값은 60분 캔들
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	// 옵션 적용
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// doRequest는 시세 API에 GET 요청을 실행하고 응답 본문을 반환합니다
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	reqURL, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("URL 파싱 실패: %w", err)
	}
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("요청 생성 실패: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("응답 읽기 실패: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP 에러(%d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// rawCandle은 분 캔들 응답의 항목 하나를 정의합니다
type rawCandle struct {
	Market               string  `json:"market"`
	CandleDateTimeKST    string  `json:"candle_date_time_kst"`
	OpeningPrice         float64 `json:"opening_price"`
	HighPrice            float64 `json:"high_price"`
	LowPrice             float64 `json:"low_price"`
	TradePrice           float64 `json:"trade_price"`
	CandleAccTradePrice  float64 `json:"candle_acc_trade_price"`
	CandleAccTradeVolume float64 `json:"candle_acc_trade_volume"`
}

// GetOHLCV는 분 캔들을 조회합니다.
// 업비트는 최신 캔들부터 반환하므로 과거순으로 뒤집어 반환합니다.
func (c *Client) GetOHLCV(ctx context.Context, ticker string, count int) (domain.CandleList, error) {
	params := url.Values{}
	params.Set("market", ticker)
	params.Set("count", strconv.Itoa(count))

	resp, err := c.doRequest(ctx, fmt.Sprintf("/v1/candles/minutes/%d", c.candleUnit), params)
	if err != nil {
		return nil, err
	}

	var rawCandles []rawCandle
	if err := json.Unmarshal(resp, &rawCandles); err != nil {
		return nil, fmt.Errorf("캔들 데이터 파싱 실패: %w", err)
	}

	candles := make(domain.CandleList, len(rawCandles))
	for i, raw := range rawCandles {
		ts, err := time.ParseInLocation("2006-01-02T15:04:05", raw.CandleDateTimeKST, kst)
		if err != nil {
			return nil, fmt.Errorf("캔들 시각 파싱 실패: %w", err)
		}

		candles[len(rawCandles)-1-i] = domain.Candle{
			Time:   ts,
			Open:   raw.OpeningPrice,
			High:   raw.HighPrice,
			Low:    raw.LowPrice,
			Close:  raw.TradePrice,
			Volume: raw.CandleAccTradeVolume,
			Value:  raw.CandleAccTradePrice,
			Ticker: raw.Market,
		}
	}

	return candles, nil
}

// GetCurrentPrice는 마지막 체결 가격을 조회합니다
func (c *Client) GetCurrentPrice(ctx context.Context, ticker string) (float64, error) {
	params := url.Values{}
	params.Set("markets", ticker)

	resp, err := c.doRequest(ctx, "/v1/ticker", params)
	if err != nil {
		return 0, err
	}

	var tickers []struct {
		Market     string  `json:"market"`
		TradePrice float64 `json:"trade_price"`
	}
	if err := json.Unmarshal(resp, &tickers); err != nil {
		return 0, fmt.Errorf("현재가 파싱 실패: %w", err)
	}
	if len(tickers) == 0 {
		return 0, fmt.Errorf("%s의 시세 정보가 없습니다", ticker)
	}

	return tickers[0].TradePrice, nil
}
