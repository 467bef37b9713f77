package upbit

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/autobit/magpie/internal/domain"
)

// errorPayload는 성공 응답과 같은 채널로 전달되는 에러 응답의 형태입니다.
// {"error": {"message": ..., "name": ...}}
type errorPayload struct {
	Error *struct {
		Message string `json:"message"`
		Name    string `json:"name"`
	} `json:"error"`
}

// errorShape는 응답 본문이 에러 형태이면 APIError를 반환합니다.
// 에러 형태 판별은 필드 해석보다 항상 먼저 수행됩니다.
func errorShape(raw json.RawMessage) *APIError {
	var payload errorPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Error == nil {
		return nil
	}
	return NewAPIError(payload.Error.Name, payload.Error.Message)
}

// isEmpty는 응답 본문이 비어 있거나 null인지 판별합니다
func isEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// parseDecimal은 와이어의 숫자 문자열을 decimal로 변환합니다.
// 필드가 없거나 숫자가 아니면 전송 계층의 계약 위반이므로 에러로 처리합니다.
func parseDecimal(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Decimal{}, fmt.Errorf("응답에 %s 필드가 없습니다", field)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s 필드 해석 실패: %w", field, err)
	}
	return d, nil
}

// rawOrder는 주문 응답의 와이어 필드를 정의합니다. 숫자 필드는 모두 문자열입니다.
type rawOrder struct {
	UUID            string `json:"uuid"`
	Side            string `json:"side"`
	OrdType         string `json:"ord_type"`
	Price           string `json:"price"`
	State           string `json:"state"`
	Market          string `json:"market"`
	CreatedAt       string `json:"created_at"`
	Volume          string `json:"volume"`
	RemainingVolume string `json:"remaining_volume"`
	ReservedFee     string `json:"reserved_fee"`
	RemainingFee    string `json:"remaining_fee"`
	PaidFee         string `json:"paid_fee"`
	Locked          string `json:"locked"`
	ExecutedVolume  string `json:"executed_volume"`
	TradesCount     *int   `json:"trades_count"`
}

// parseOrder는 주문 응답 본문을 OrderResult로 변환합니다
func parseOrder(raw json.RawMessage) (*domain.OrderResult, error) {
	if apiErr := errorShape(raw); apiErr != nil {
		return nil, apiErr
	}
	if isEmpty(raw) {
		return nil, newEmptyResponseError()
	}

	var r rawOrder
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("주문 응답 해석 실패: %w", err)
	}

	side, err := domain.ParseOrderSide(r.Side)
	if err != nil {
		return nil, err
	}
	ordType, err := domain.ParseOrderType(r.OrdType)
	if err != nil {
		return nil, err
	}
	if r.TradesCount == nil {
		return nil, fmt.Errorf("응답에 trades_count 필드가 없습니다")
	}

	result := &domain.OrderResult{
		UUID:        r.UUID,
		Side:        side,
		OrdType:     ordType,
		State:       r.State,
		Market:      r.Market,
		CreatedAt:   r.CreatedAt,
		TradesCount: *r.TradesCount,
	}

	decimals := []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"price", r.Price, &result.Price},
		{"volume", r.Volume, &result.Volume},
		{"remaining_volume", r.RemainingVolume, &result.RemainingVolume},
		{"reserved_fee", r.ReservedFee, &result.ReservedFee},
		{"remaining_fee", r.RemainingFee, &result.RemainingFee},
		{"paid_fee", r.PaidFee, &result.PaidFee},
		{"locked", r.Locked, &result.Locked},
		{"executed_volume", r.ExecutedVolume, &result.ExecutedVolume},
	}
	for _, f := range decimals {
		d, err := parseDecimal(f.name, f.value)
		if err != nil {
			return nil, err
		}
		*f.dst = d
	}

	return result, nil
}

// rawBalance는 잔고 응답 목록의 항목 하나를 정의합니다
type rawBalance struct {
	Currency            string `json:"currency"`
	Balance             string `json:"balance"`
	Locked              string `json:"locked"`
	AvgBuyPrice         string `json:"avg_buy_price"`
	AvgBuyPriceModified bool   `json:"avg_buy_price_modified"`
	UnitCurrency        string `json:"unit_currency"`
}

// parseBalances는 잔고 응답 본문을 BalanceInfo 목록으로 변환합니다.
// 빈 목록은 보유 자산이 없다는 정상 상태이므로 에러가 아닙니다.
func parseBalances(raw json.RawMessage) ([]domain.BalanceInfo, error) {
	if apiErr := errorShape(raw); apiErr != nil {
		return nil, apiErr
	}
	if isEmpty(raw) {
		return nil, newEmptyResponseError()
	}

	var rows []rawBalance
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("잔고 응답 해석 실패: %w", err)
	}

	balances := make([]domain.BalanceInfo, 0, len(rows))
	for _, row := range rows {
		balance, err := parseDecimal("balance", row.Balance)
		if err != nil {
			return nil, err
		}
		locked, err := parseDecimal("locked", row.Locked)
		if err != nil {
			return nil, err
		}
		avgBuyPrice, err := parseDecimal("avg_buy_price", row.AvgBuyPrice)
		if err != nil {
			return nil, err
		}

		balances = append(balances, domain.BalanceInfo{
			Currency:            row.Currency,
			Balance:             balance,
			Locked:              locked,
			AvgBuyPrice:         avgBuyPrice,
			AvgBuyPriceModified: row.AvgBuyPriceModified,
			UnitCurrency:        row.UnitCurrency,
		})
	}

	return balances, nil
}
