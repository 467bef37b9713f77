package domain

import "fmt"

// OrderSide는 주문 방향을 정의합니다
type OrderSide string

const (
	Bid OrderSide = "bid" // 매수
	Ask OrderSide = "ask" // 매도
)

// ParseOrderSide는 와이어 토큰을 OrderSide로 변환합니다
func ParseOrderSide(s string) (OrderSide, error) {
	switch OrderSide(s) {
	case Bid, Ask:
		return OrderSide(s), nil
	default:
		return "", fmt.Errorf("알 수 없는 주문 방향: %q", s)
	}
}

// OrderType은 주문 유형을 정의합니다
type OrderType string

const (
	Limit  OrderType = "limit"  // 지정가 주문
	Price  OrderType = "price"  // 시장가 매수 (매수 금액 기준)
	Market OrderType = "market" // 시장가 매도 (매도 수량 기준)
)

// ParseOrderType은 와이어 토큰을 OrderType으로 변환합니다
func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(s) {
	case Limit, Price, Market:
		return OrderType(s), nil
	default:
		return "", fmt.Errorf("알 수 없는 주문 유형: %q", s)
	}
}
