package exchange

import (
	"context"
	"encoding/json"

	"github.com/autobit/magpie/internal/domain"
)

// Transport는 업비트 인증 API 호출을 위한 인터페이스입니다.
// 주문/잔고 응답은 수신한 본문(json) 그대로 반환하며, 성공/에러 판별과
// 필드 해석은 상위 계층이 담당합니다.
type Transport interface {
	// GetBalance는 특정 자산의 주문 가능 잔고를 조회합니다.
	// 해당 자산의 잔고 정보가 없으면 nil을 반환합니다.
	GetBalance(ctx context.Context, ticker string) (*float64, error)

	// GetBalances는 전체 계좌 잔고 응답 본문을 반환합니다
	GetBalances(ctx context.Context) (json.RawMessage, error)

	// BuyMarketOrder는 금액(KRW) 기준 시장가 매수 주문을 접수합니다
	BuyMarketOrder(ctx context.Context, ticker string, amount float64) (json.RawMessage, error)

	// SellMarketOrder는 수량 기준 시장가 매도 주문을 접수합니다
	SellMarketOrder(ctx context.Context, ticker string, volume float64) (json.RawMessage, error)
}

// CandleSource는 시세 데이터 조회를 위한 인터페이스입니다
type CandleSource interface {
	// GetOHLCV는 캔들 데이터를 과거순으로 조회합니다
	GetOHLCV(ctx context.Context, ticker string, count int) (domain.CandleList, error)

	// GetCurrentPrice는 마지막 체결 가격을 조회합니다
	GetCurrentPrice(ctx context.Context, ticker string) (float64, error)
}
