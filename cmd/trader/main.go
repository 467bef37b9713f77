package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	osSignal "os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/autobit/magpie/internal/config"
	"github.com/autobit/magpie/internal/exchange/upbit"
	"github.com/autobit/magpie/internal/market"
	"github.com/autobit/magpie/internal/notification/discord"
	"github.com/autobit/magpie/internal/scheduler"
)

// ReportTask는 주기적으로 시세와 잔고를 조회해 보고하는 작업을 정의합니다
type ReportTask struct {
	client  *upbit.Client
	notify  *discord.Client
	ticker  string
	candles int
	log     *logrus.Logger
}

// Execute는 보고 작업을 실행합니다
func (t *ReportTask) Execute(ctx context.Context) error {
	price := t.client.GetCurrentPrice(ctx, t.ticker)
	if price == 0 {
		t.log.WithField("ticker", t.ticker).Warn("현재가를 조회할 수 없음")
	} else {
		t.log.WithFields(logrus.Fields{
			"ticker": t.ticker,
			"price":  price,
		}).Info("현재가 조회")
	}

	candles := t.client.GetCandles(ctx, t.ticker, t.candles)
	if last, ok := candles.GetLastCandle(); ok {
		t.log.WithFields(logrus.Fields{
			"time":  last.Time.Format("2006-01-02 15:04"),
			"close": last.Close,
		}).Info("최근 캔들")
	}

	balances, err := t.client.GetBalances(ctx)
	if err != nil {
		if sendErr := t.notify.SendError(err); sendErr != nil {
			t.log.WithError(sendErr).Error("에러 알림 전송 실패")
		}
		return fmt.Errorf("잔고 조회 실패: %w", err)
	}

	t.log.WithField("assets", len(balances)).Info("잔고 조회 완료")
	if err := t.notify.SendBalances(balances); err != nil {
		t.log.WithError(err).Error("잔고 알림 전송 실패")
	}

	return nil
}

func main() {
	tickerFlag := flag.String("ticker", "", "조회할 마켓 코드 (설정값보다 우선)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	log.Info("트레이딩 봇 시작...")

	// 설정 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("설정 로드 실패")
	}

	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ticker := cfg.App.Ticker
	if *tickerFlag != "" {
		ticker = *tickerFlag
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 클라이언트 조립
	transport := upbit.NewHTTPTransport(
		cfg.Upbit.AccessKey,
		cfg.Upbit.SecretKey,
		upbit.WithTimeout(10*time.Second),
	)
	marketClient := market.NewClient(
		market.WithCandleUnit(cfg.App.CandleUnit),
	)
	client := upbit.NewClient(transport, marketClient)

	notifier := discord.NewClient(
		cfg.Discord.TradeWebhook,
		cfg.Discord.ErrorWebhook,
		discord.WithTimeout(10*time.Second),
	)
	if err := notifier.SendInfo("🚀 트레이딩 봇이 시작되었습니다."); err != nil {
		log.WithError(err).Warn("시작 알림 전송 실패")
	}

	task := &ReportTask{
		client:  client,
		notify:  notifier,
		ticker:  ticker,
		candles: cfg.App.CandleCount,
		log:     log,
	}
	sched := scheduler.NewScheduler(cfg.App.FetchInterval, task, log)

	// 시그널 처리
	sigCh := make(chan os.Signal, 1)
	osSignal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.WithField("signal", sig.String()).Info("종료 신호 수신")
		sched.Stop()
		cancel()
	}()

	// 첫 보고는 즉시 실행
	if err := task.Execute(ctx); err != nil {
		log.WithError(err).Error("초기 보고 실패")
	}

	if err := sched.Start(ctx); err != nil && err != context.Canceled {
		log.WithError(err).Fatal("스케줄러 종료")
	}

	log.Info("트레이딩 봇 종료")
}
