package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Task는 스케줄러가 실행할 작업을 정의하는 인터페이스입니다
type Task interface {
	Execute(ctx context.Context) error
}

// Scheduler는 정해진 간격의 경계 시각마다 작업을 실행합니다
type Scheduler struct {
	interval time.Duration
	task     Task
	log      *logrus.Logger
	stopCh   chan struct{}
}

// NewScheduler는 새로운 스케줄러를 생성합니다
func NewScheduler(interval time.Duration, task Task, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		interval: interval,
		task:     task,
		log:      log,
		stopCh:   make(chan struct{}),
	}
}

// Start는 스케줄러를 시작합니다.
// 다음 간격 경계까지 기다렸다가 작업을 실행하는 것을 반복합니다.
func (s *Scheduler) Start(ctx context.Context) error {
	now := time.Now()
	nextRun := now.Truncate(s.interval).Add(s.interval)
	waitDuration := nextRun.Sub(now)

	s.log.WithFields(logrus.Fields{
		"wait": waitDuration.Round(time.Second),
		"next": nextRun.Format("15:04:05"),
	}).Info("다음 실행 대기")

	timer := time.NewTimer(waitDuration)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-s.stopCh:
			return nil

		case <-timer.C:
			// 작업이 실패해도 스케줄은 계속 돈다
			if err := s.task.Execute(ctx); err != nil {
				s.log.WithError(err).Error("작업 실행 실패")
			}

			now := time.Now()
			nextRun = now.Truncate(s.interval).Add(s.interval)
			waitDuration = nextRun.Sub(now)

			s.log.WithFields(logrus.Fields{
				"wait": waitDuration.Round(time.Second),
				"next": nextRun.Format("15:04:05"),
			}).Info("다음 실행 대기")

			timer.Reset(waitDuration)
		}
	}
}

// Stop은 스케줄러를 중지합니다
func (s *Scheduler) Stop() {
	close(s.stopCh)
}
