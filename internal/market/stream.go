package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// DefaultStreamURL은 업비트 웹소켓 시세 엔드포인트입니다
const DefaultStreamURL = "wss://api.upbit.com/websocket/v1"

// TickerEvent는 웹소켓으로 수신한 실시간 체결 정보를 표현합니다
type TickerEvent struct {
	Code       string  // 마켓 코드 (예: KRW-BTC)
	TradePrice float64 // 체결 가격
	Timestamp  int64   // 체결 시각 (ms)
}

// Stream은 업비트 웹소켓으로 실시간 체결 가격을 구독합니다
type Stream struct {
	url     string
	tickers []string
	conn    *websocket.Conn
}

// StreamOption은 스트림 생성 옵션을 정의합니다
type StreamOption func(*Stream)

// WithStreamURL은 웹소켓 엔드포인트를 설정합니다
func WithStreamURL(url string) StreamOption {
	return func(s *Stream) {
		s.url = url
	}
}

// NewStream은 주어진 마켓들을 구독하는 스트림을 생성합니다
func NewStream(tickers []string, opts ...StreamOption) *Stream {
	s := &Stream{
		url:     DefaultStreamURL,
		tickers: tickers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect는 웹소켓에 접속하고 구독 요청을 전송합니다
func (s *Stream) Connect(ctx context.Context) error {
	if len(s.tickers) == 0 {
		return errors.New("구독할 마켓이 없습니다")
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("웹소켓 연결 실패: %w", err)
	}

	// 구독 프레임: [{"ticket": ...}, {"type": "ticker", "codes": [...]}]
	request := []interface{}{
		map[string]string{"ticket": uuid.NewString()},
		map[string]interface{}{"type": "ticker", "codes": s.tickers},
	}
	if err := conn.WriteJSON(request); err != nil {
		_ = conn.Close()
		return fmt.Errorf("구독 요청 전송 실패: %w", err)
	}

	s.conn = conn
	return nil
}

// Run은 체결 이벤트를 읽어 채널로 전달합니다.
// 컨텍스트가 취소되거나 연결이 끊어지면 반환합니다.
func (s *Stream) Run(ctx context.Context, events chan<- TickerEvent) error {
	if s.conn == nil {
		return errors.New("연결되지 않은 스트림입니다")
	}

	// 읽기 루프가 자체 에러로 끝나면 감시 고루틴도 함께 종료한다
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = s.conn.Close()
		case <-done:
		}
	}()

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("웹소켓 수신 실패: %w", err)
		}

		event, ok, err := parseTickerMessage(message)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		select {
		case events <- event:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close는 웹소켓 연결을 종료합니다
func (s *Stream) Close() error {
	if s.conn == nil {
		return nil
	}
	deadline := time.Now().Add(time.Second)
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return s.conn.Close()
}

// parseTickerMessage는 수신 프레임을 TickerEvent로 변환합니다.
// ticker 타입이 아닌 프레임(구독 응답 등)은 건너뜁니다.
func parseTickerMessage(message []byte) (TickerEvent, bool, error) {
	var frame struct {
		Type       string  `json:"type"`
		Code       string  `json:"code"`
		TradePrice float64 `json:"trade_price"`
		Timestamp  int64   `json:"timestamp"`
	}
	if err := json.Unmarshal(message, &frame); err != nil {
		return TickerEvent{}, false, fmt.Errorf("체결 프레임 파싱 실패: %w", err)
	}
	if frame.Type != "ticker" {
		return TickerEvent{}, false, nil
	}

	return TickerEvent{
		Code:       frame.Code,
		TradePrice: frame.TradePrice,
		Timestamp:  frame.Timestamp,
	}, true, nil
}
