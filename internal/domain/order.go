package domain

import "github.com/shopspring/decimal"

// OrderResult는 주문 접수 결과를 표현합니다.
// 응답을 해석하는 시점에 한 번 생성되며 이후 변경되지 않습니다.
type OrderResult struct {
	UUID            string          // 주문 고유 ID
	Side            OrderSide       // 매수/매도
	OrdType         OrderType       // 주문 유형
	Price           decimal.Decimal // 주문 금액 (시장가 매도는 0)
	State           string          // 주문 상태 (예: wait)
	Market          string          // 마켓 코드 (예: KRW-BTC)
	CreatedAt       string          // 주문 생성 시각 (ISO-8601, 원문 그대로 유지)
	Volume          decimal.Decimal // 주문 수량
	RemainingVolume decimal.Decimal // 미체결 수량
	ReservedFee     decimal.Decimal // 예약된 수수료
	RemainingFee    decimal.Decimal // 남은 수수료
	PaidFee         decimal.Decimal // 지불된 수수료
	Locked          decimal.Decimal // 주문에 묶여 있는 금액 또는 수량
	ExecutedVolume  decimal.Decimal // 체결된 수량
	TradesCount     int             // 체결 횟수
}
