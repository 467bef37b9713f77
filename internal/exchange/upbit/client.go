package upbit

import (
	"context"

	"github.com/autobit/magpie/internal/domain"
	"github.com/autobit/magpie/internal/exchange"
)

// Client는 업비트 거래 게이트웨이를 구현합니다.
// 주문 파라미터 검증 → 전송 계층 호출 → 응답 해석의 흐름을 묶으며,
// 그 외의 상태는 가지지 않으므로 여러 고루틴에서 동시에 사용해도 안전합니다.
type Client struct {
	transport exchange.Transport
	candles   exchange.CandleSource
}

// NewClient는 새로운 업비트 게이트웨이 클라이언트를 생성합니다
func NewClient(transport exchange.Transport, candles exchange.CandleSource) *Client {
	return &Client{
		transport: transport,
		candles:   candles,
	}
}

// GetCandles는 캔들 데이터를 과거순으로 조회합니다.
// 시세 조회는 실패해도 에러 대신 빈 목록을 반환합니다.
func (c *Client) GetCandles(ctx context.Context, ticker string, count int) domain.CandleList {
	if count <= 0 {
		return domain.CandleList{}
	}
	candles, err := c.candles.GetOHLCV(ctx, ticker, count)
	if err != nil || candles == nil {
		return domain.CandleList{}
	}
	return candles
}

// GetCurrentPrice는 마지막 체결 가격을 조회합니다.
// 조회에 실패하면 0을 반환하며, 0은 "조회 불가"를 의미합니다.
func (c *Client) GetCurrentPrice(ctx context.Context, ticker string) float64 {
	price, err := c.candles.GetCurrentPrice(ctx, ticker)
	if err != nil {
		return 0
	}
	return price
}

// GetAvailableAmount는 특정 자산의 주문 가능 잔고를 조회합니다.
// 잔고 정보가 없으면 0을 반환합니다.
func (c *Client) GetAvailableAmount(ctx context.Context, ticker string) float64 {
	balance, err := c.transport.GetBalance(ctx, ticker)
	if err != nil || balance == nil {
		return 0
	}
	return *balance
}

// GetBalances는 전체 계좌 잔고를 조회합니다
func (c *Client) GetBalances(ctx context.Context) ([]domain.BalanceInfo, error) {
	raw, err := c.transport.GetBalances(ctx)
	if err != nil {
		return nil, err
	}
	return parseBalances(raw)
}

// BuyMarketOrder는 금액(KRW) 기준 시장가 매수 주문을 접수합니다
func (c *Client) BuyMarketOrder(ctx context.Context, ticker string, amount float64) (*domain.OrderResult, error) {
	if amount <= 0 {
		return nil, ErrAmountNotPositive
	}
	raw, err := c.transport.BuyMarketOrder(ctx, ticker, amount)
	if err != nil {
		return nil, err
	}
	return parseOrder(raw)
}

// SellMarketOrder는 수량 기준 시장가 매도 주문을 접수합니다
func (c *Client) SellMarketOrder(ctx context.Context, ticker string, volume float64) (*domain.OrderResult, error) {
	if volume <= 0 {
		return nil, ErrVolumeNotPositive
	}
	raw, err := c.transport.SellMarketOrder(ctx, ticker, volume)
	if err != nil {
		return nil, err
	}
	return parseOrder(raw)
}

// SellMarketOrderByPrice는 매도할 금액(KRW)을 현재가로 환산한 수량으로
// 시장가 매도 주문을 접수합니다
func (c *Client) SellMarketOrderByPrice(ctx context.Context, ticker string, price float64) (*domain.OrderResult, error) {
	if price <= 0 {
		return nil, ErrPriceNotPositive
	}

	currentPrice := c.GetCurrentPrice(ctx, ticker)
	if currentPrice == 0 {
		return nil, ErrPriceUnavailable
	}

	return c.SellMarketOrder(ctx, ticker, price/currentPrice)
}

// SellAll은 보유 수량 전체를 시장가로 매도합니다.
// 보유 수량이 없으면 주문 없이 (nil, nil)을 반환합니다.
func (c *Client) SellAll(ctx context.Context, ticker string) (*domain.OrderResult, error) {
	balance := c.GetAvailableAmount(ctx, ticker)
	if balance == 0 {
		return nil, nil
	}
	return c.SellMarketOrder(ctx, ticker, balance)
}
