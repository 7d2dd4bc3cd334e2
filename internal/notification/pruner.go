package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// pruneTimeout は1回の削除処理の制限時間。
const pruneTimeout = time.Minute

// Pruner は保持期間を過ぎた通知を定期的に削除する。
type Pruner struct {
	// cron はスケジューラ。
	cron *cron.Cron
	// svc は削除を実行するサービス。
	svc *Service
	// retention は通知の保持期間。
	retention time.Duration
}

// NewPruner はscheduleのcron式で削除を実行するPrunerを生成する。
// "@daily" などの記述子も使える。
func NewPruner(svc *Service, schedule string, retention time.Duration) (*Pruner, error) {
	p := &Pruner{
		cron:      cron.New(),
		svc:       svc,
		retention: retention,
	}
	if _, err := p.cron.AddFunc(schedule, p.run); err != nil {
		return nil, fmt.Errorf("削除スケジュール %q が不正: %w", schedule, err)
	}
	return p, nil
}

// Start はスケジューラを開始する。
func (p *Pruner) Start() {
	p.cron.Start()
}

// Stop はスケジューラを停止し、実行中の削除処理の完了を待つ。
func (p *Pruner) Stop() {
	<-p.cron.Stop().Done()
}

// run は保持期間より前の通知を削除する。
func (p *Pruner) run() {
	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	before := p.svc.now().Add(-p.retention)
	n, err := p.svc.Prune(ctx, before)
	if err != nil {
		log.Printf("[Pruner] 古い通知の削除に失敗: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[Pruner] %s より前の通知を%d件削除しました", before.UTC().Format(time.RFC3339), n)
	}
}
