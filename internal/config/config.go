package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// 업비트 API 설정
	Upbit struct {
		AccessKey string `envconfig:"UPBIT_ACCESS_KEY" required:"true"`
		SecretKey string `envconfig:"UPBIT_SECRET_KEY" required:"true"`
	}

	// 디스코드 웹훅 설정 (비워두면 알림을 보내지 않음)
	Discord struct {
		TradeWebhook string `envconfig:"DISCORD_TRADE_WEBHOOK"`
		ErrorWebhook string `envconfig:"DISCORD_ERROR_WEBHOOK"`
	}

	// 애플리케이션 설정
	App struct {
		Ticker        string        `envconfig:"TICKER" default:"KRW-BTC"`
		FetchInterval time.Duration `envconfig:"FETCH_INTERVAL" default:"1h"`
		CandleUnit    int           `envconfig:"CANDLE_UNIT" default:"60"`
		CandleCount   int           `envconfig:"CANDLE_COUNT" default:"200"`
		LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	}
}

// 업비트 분 캔들이 지원하는 기간(분)입니다
var validCandleUnits = map[int]bool{
	1: true, 3: true, 5: true, 10: true, 15: true, 30: true, 60: true, 240: true,
}

// ValidateConfig는 설정이 유효한지 확인합니다.
func ValidateConfig(cfg *Config) error {
	if !strings.Contains(cfg.App.Ticker, "-") {
		return fmt.Errorf("TICKER는 마켓 코드 형식(KRW-BTC)이어야 합니다: %q", cfg.App.Ticker)
	}

	if !validCandleUnits[cfg.App.CandleUnit] {
		return fmt.Errorf("CANDLE_UNIT은 1, 3, 5, 10, 15, 30, 60, 240 중 하나여야 합니다")
	}

	// 업비트 캔들 API는 한 번에 최대 200개까지 반환한다
	if cfg.App.CandleCount < 1 || cfg.App.CandleCount > 200 {
		return fmt.Errorf("CANDLE_COUNT는 1 이상 200 이하이어야 합니다")
	}

	if cfg.App.FetchInterval < 1*time.Minute {
		return fmt.Errorf("FETCH_INTERVAL은 1분 이상이어야 합니다")
	}

	return nil
}

// LoadConfig는 환경변수에서 설정을 로드합니다.
func LoadConfig() (*Config, error) {
	// .env 파일이 없으면 프로세스 환경변수만 사용한다
	_ = godotenv.Load()

	var cfg Config
	// 환경변수를 구조체로 파싱
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("환경변수 처리 실패: %w", err)
	}

	// 설정값 검증
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("설정값 검증 실패: %w", err)
	}

	return &cfg, nil
}
