package domain

import "github.com/shopspring/decimal"

// BalanceInfo는 보유 자산 하나의 잔고 정보를 표현합니다
type BalanceInfo struct {
	Currency            string          // 자산 코드 (예: KRW, BTC)
	Balance             decimal.Decimal // 주문 가능 잔고
	Locked              decimal.Decimal // 주문에 묶여 있는 잔고
	AvgBuyPrice         decimal.Decimal // 매수 평균가
	AvgBuyPriceModified bool            // 매수 평균가 수정 여부
	UnitCurrency        string          // 평가 기준 화폐 (예: KRW)
}
