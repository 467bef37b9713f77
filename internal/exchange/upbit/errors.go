package upbit

import (
	"errors"
	"fmt"
)

// 주문 파라미터 검증 에러들입니다. 전송 계층 호출 전에 발생합니다.
var (
	ErrAmountNotPositive = errors.New("amount는 0보다 커야 합니다")
	ErrVolumeNotPositive = errors.New("volume은 0보다 커야 합니다")
	ErrPriceNotPositive  = errors.New("price는 0보다 커야 합니다")
	ErrPriceUnavailable  = errors.New("현재가를 조회할 수 없습니다")
)

// APIError는 업비트가 응답으로 알려온 에러를 표현합니다
type APIError struct {
	Name    string // 기계용 에러 코드 (예: insufficient_funds)
	Message string // 사람이 읽는 메시지
}

// Error는 error 인터페이스를 구현합니다
func (e *APIError) Error() string {
	return fmt.Sprintf("업비트 API 에러 [%s]: %s", e.Name, e.Message)
}

// NewAPIError는 새로운 APIError를 생성합니다
func NewAPIError(name, message string) *APIError {
	return &APIError{Name: name, Message: message}
}

// newEmptyResponseError는 본문이 비어 있는 응답에 대한 에러를 생성합니다
func newEmptyResponseError() *APIError {
	return NewAPIError("empty_response", "API 응답이 비어있습니다")
}

// AsAPIError는 에러 체인에서 APIError를 꺼냅니다 (errors.As 보조 함수)
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
