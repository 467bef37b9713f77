package notification

import "github.com/autobit/magpie/internal/domain"

// 알림 색상 상수
const (
	ColorSuccess = 0x00FF00 // 녹색
	ColorError   = 0xFF0000 // 빨간색
	ColorInfo    = 0x0099FF // 파란색
)

// Notifier는 알림 전송 인터페이스를 정의합니다
type Notifier interface {
	// SendOrder는 접수된 주문 정보를 전송합니다
	SendOrder(order domain.OrderResult) error

	// SendBalances는 계좌 잔고 요약을 전송합니다
	SendBalances(balances []domain.BalanceInfo) error

	// SendError는 에러 알림을 전송합니다
	SendError(err error) error

	// SendInfo는 일반 정보 알림을 전송합니다
	SendInfo(message string) error
}

// GetColorForSide는 주문 방향에 따른 색상을 반환합니다
func GetColorForSide(side domain.OrderSide) int {
	switch side {
	case domain.Bid:
		return ColorSuccess
	case domain.Ask:
		return ColorError
	default:
		return ColorInfo
	}
}
