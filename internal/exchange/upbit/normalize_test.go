package upbit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobit/magpie/internal/domain"
)

func TestErrorShape(t *testing.T) {
	t.Run("에러 형태 응답을 APIError로 판별", func(t *testing.T) {
		raw := json.RawMessage(`{"error": {"message": "Invalid access key.", "name": "invalid_access_key"}}`)

		apiErr := errorShape(raw)

		require.NotNil(t, apiErr)
		assert.Equal(t, "invalid_access_key", apiErr.Name)
		assert.Equal(t, "Invalid access key.", apiErr.Message)
	})

	t.Run("정상 주문 응답은 에러 형태가 아님", func(t *testing.T) {
		assert.Nil(t, errorShape(json.RawMessage(`{"uuid": "abc", "side": "bid"}`)))
	})

	t.Run("배열 응답은 에러 형태가 아님", func(t *testing.T) {
		assert.Nil(t, errorShape(json.RawMessage(`[{"currency": "KRW"}]`)))
	})
}

func TestParseDecimal(t *testing.T) {
	t.Run("숫자 문자열을 decimal로 변환", func(t *testing.T) {
		d, err := parseDecimal("price", "50000.5")

		require.NoError(t, err)
		assert.Equal(t, "50000.5", d.String())
	})

	t.Run("빈 값은 계약 위반으로 에러", func(t *testing.T) {
		_, err := parseDecimal("locked", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "locked")
	})

	t.Run("숫자가 아닌 값은 에러", func(t *testing.T) {
		_, err := parseDecimal("volume", "abc")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "volume")
	})
}

func TestParseOrder(t *testing.T) {
	t.Run("정상 응답의 모든 필드를 변환", func(t *testing.T) {
		order, err := parseOrder(json.RawMessage(buyOrderResponse))

		require.NoError(t, err)
		assert.Equal(t, "test-uuid-123", order.UUID)
		assert.Equal(t, domain.Bid, order.Side)
		assert.Equal(t, domain.Price, order.OrdType)
		assert.Equal(t, "wait", order.State)
		assert.Equal(t, "KRW-BTC", order.Market)
		assert.Equal(t, "2024-01-01T00:00:00+09:00", order.CreatedAt)
		assert.Equal(t, "50000", order.Price.String())
		assert.Equal(t, "0.001", order.Volume.String())
		assert.Equal(t, "0.001", order.RemainingVolume.String())
		assert.Equal(t, "25", order.ReservedFee.String())
		assert.Equal(t, "25", order.RemainingFee.String())
		assert.Equal(t, "0", order.PaidFee.String())
		assert.Equal(t, "50025", order.Locked.String())
		assert.Equal(t, "0", order.ExecutedVolume.String())
		assert.Equal(t, 0, order.TradesCount)
	})

	t.Run("에러 형태 응답은 APIError", func(t *testing.T) {
		raw := json.RawMessage(`{"error": {"message": "주문 금액이 부족합니다.", "name": "under_min_total_bid"}}`)

		_, err := parseOrder(raw)

		apiErr, ok := AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, "under_min_total_bid", apiErr.Name)
		assert.Equal(t, "주문 금액이 부족합니다.", apiErr.Message)
	})

	t.Run("null 응답은 empty_response 에러", func(t *testing.T) {
		_, err := parseOrder(json.RawMessage(`null`))

		apiErr, ok := AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, "empty_response", apiErr.Name)
	})

	t.Run("숫자 필드 누락은 에러", func(t *testing.T) {
		raw := json.RawMessage(`{
			"uuid": "u", "side": "bid", "ord_type": "price", "price": "50000",
			"state": "wait", "market": "KRW-BTC", "created_at": "2024-01-01T00:00:00+09:00",
			"volume": "0.001", "remaining_volume": "0.001", "reserved_fee": "25",
			"remaining_fee": "25", "paid_fee": "0", "executed_volume": "0",
			"trades_count": 0
		}`)

		_, err := parseOrder(raw)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "locked")
	})

	t.Run("trades_count 필드 누락은 에러", func(t *testing.T) {
		raw := json.RawMessage(`{
			"uuid": "u", "side": "bid", "ord_type": "price", "price": "50000",
			"state": "wait", "market": "KRW-BTC", "created_at": "2024-01-01T00:00:00+09:00",
			"volume": "0.001", "remaining_volume": "0.001", "reserved_fee": "25",
			"remaining_fee": "25", "paid_fee": "0", "locked": "50025",
			"executed_volume": "0"
		}`)

		_, err := parseOrder(raw)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "trades_count")
	})

	t.Run("알 수 없는 주문 방향은 에러", func(t *testing.T) {
		raw := json.RawMessage(`{
			"uuid": "u", "side": "hold", "ord_type": "price", "price": "1",
			"state": "wait", "market": "KRW-BTC", "created_at": "t",
			"volume": "1", "remaining_volume": "1", "reserved_fee": "0",
			"remaining_fee": "0", "paid_fee": "0", "locked": "1",
			"executed_volume": "0", "trades_count": 0
		}`)

		_, err := parseOrder(raw)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "주문 방향")
	})
}

func TestParseBalances(t *testing.T) {
	t.Run("입력 순서를 보존하며 변환", func(t *testing.T) {
		raw := json.RawMessage(`[
			{"currency": "KRW", "balance": "1000000.0", "locked": "0.0",
			 "avg_buy_price": "0", "avg_buy_price_modified": false, "unit_currency": "KRW"},
			{"currency": "BTC", "balance": "0.5", "locked": "0.1",
			 "avg_buy_price": "50000000", "avg_buy_price_modified": true, "unit_currency": "KRW"}
		]`)

		balances, err := parseBalances(raw)

		require.NoError(t, err)
		require.Len(t, balances, 2)
		assert.Equal(t, "KRW", balances[0].Currency)
		assert.Equal(t, "BTC", balances[1].Currency)
		assert.Equal(t, "0.1", balances[1].Locked.String())
		assert.Equal(t, "KRW", balances[1].UnitCurrency)
	})

	t.Run("에러 형태 판별이 빈 응답 판별보다 우선", func(t *testing.T) {
		raw := json.RawMessage(`{"error": {"message": "This is not a verified IP.", "name": "no_authorization_ip"}}`)

		_, err := parseBalances(raw)

		apiErr, ok := AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, "no_authorization_ip", apiErr.Name)
	})

	t.Run("null 응답은 empty_response 에러", func(t *testing.T) {
		_, err := parseBalances(nil)

		apiErr, ok := AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, "empty_response", apiErr.Name)
		assert.Equal(t, "API 응답이 비어있습니다", apiErr.Message)
	})

	t.Run("빈 배열은 빈 목록, 에러 아님", func(t *testing.T) {
		balances, err := parseBalances(json.RawMessage(`[]`))

		require.NoError(t, err)
		assert.NotNil(t, balances)
		assert.Empty(t, balances)
	})

	t.Run("잘못된 숫자 필드는 에러", func(t *testing.T) {
		raw := json.RawMessage(`[
			{"currency": "BTC", "balance": "abc", "locked": "0",
			 "avg_buy_price": "0", "avg_buy_price_modified": false, "unit_currency": "KRW"}
		]`)

		_, err := parseBalances(raw)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "balance")
	})
}
