package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/uzretail/storebot/internal/ledger"
	"go.uber.org/zap"
)

// TopicDailySummary carries the nightly inventory summary text; the
// bot forwards it to the admin chat.
const TopicDailySummary = "jobs:daily_summary"

// SystemSnapshot is the last sampled host state.
type SystemSnapshot struct {
	CPUPercent float64
	MemPercent float64
	MemUsedMB  uint64
	SampledAt  time.Time
}

var (
	snapshotMu   sync.RWMutex
	lastSnapshot SystemSnapshot
)

// CurrentSnapshot returns the most recent system sample, zero before
// the first tick.
func CurrentSnapshot() SystemSnapshot {
	snapshotMu.RLock()
	defer snapshotMu.RUnlock()
	return lastSnapshot
}

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 60s", func() {
		go a.schedSystemMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", a.schedDailySummaryTask)
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}
}

func (a *Application) schedSystemMonitorTask() {
	percents, err := cpu.Percent(time.Second, false)
	if err != nil || len(percents) == 0 {
		zap.L().Warn("cpu sample failed", zap.Error(err))
		return
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		zap.L().Warn("memory sample failed", zap.Error(err))
		return
	}
	snap := SystemSnapshot{
		CPUPercent: percents[0],
		MemPercent: vm.UsedPercent,
		MemUsedMB:  vm.Used / 1024 / 1024,
		SampledAt:  time.Now(),
	}
	snapshotMu.Lock()
	lastSnapshot = snap
	snapshotMu.Unlock()

	zap.L().Debug("system snapshot",
		zap.Float64("cpu_percent", snap.CPUPercent),
		zap.Float64("mem_percent", snap.MemPercent),
		zap.Uint64("mem_used_mb", snap.MemUsedMB))
}

// schedDailySummaryTask publishes the end-of-day inventory totals.
func (a *Application) schedDailySummaryTask() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := ledger.NewGormRepository(a.gormDB)
	st, err := repo.Stats(ctx)
	if err != nil {
		zap.L().Error("daily summary stats failed", zap.Error(err))
		return
	}
	text := fmt.Sprintf("🌙 *Kunlik ombor hisoboti*\n\n"+
		"📦 Mahsulot turlari: %d\n"+
		"🔢 Jami dona: %d\n"+
		"💰 Jami qiymat: %.0f so'm",
		st.ProductCount, st.TotalUnits, st.TotalValue)
	a.bus.Publish(TopicDailySummary, text)
	zap.L().Info("daily summary published",
		zap.Int64("products", st.ProductCount),
		zap.Int64("units", st.TotalUnits))
}
