package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"camerafetch/internal/camera"
)

// Loop は1台のカメラを一定間隔でポーリングするループ
type Loop struct {
	cam      camera.Camera
	fetcher  camera.Fetcher
	shutdown *Shutdown

	mu        sync.RWMutex
	status    camera.Status
	lastSaved *camera.Result
	lastError string
}

// State はループの現在状態のスナップショット
type State struct {
	Camera    camera.Camera
	Status    camera.Status
	LastSaved *camera.Result
	LastError string
}

// NewLoop は新しいLoopを作成する
func NewLoop(cam camera.Camera, fetcher camera.Fetcher, shutdown *Shutdown) *Loop {
	return &Loop{
		cam:      cam,
		fetcher:  fetcher,
		shutdown: shutdown,
		status:   camera.StatusIdle,
	}
}

// Run は停止要求までポーリングを繰り返す。
// 各サイクルは取得前にデッドラインを計算し、取得の所要時間を待機から差し引く。
// 取得の失敗はログに記録して次のサイクルへ進み、決して全体を止めない
func (l *Loop) Run(ctx context.Context) {
	l.setStatus(camera.StatusPolling)
	log.Printf("[%s] ポーリングを開始します (間隔: %v)", l.cam.Name, l.cam.Interval)

	for !l.shutdown.Requested() {
		deadline := time.Now().Add(l.cam.Interval)

		result, err := l.fetcher.Fetch(ctx, l.cam)
		if err != nil {
			log.Printf("[%s] 取得に失敗しました: %v", l.cam.Name, err)
			l.recordError(err)
		} else {
			log.Printf("[%s] 画像を保存しました: %s (%dバイト)", l.cam.Name, result.Path, result.Size)
			l.recordResult(result)
		}

		// 取得が間隔を超過した場合は待機なしで次のサイクルへ
		remaining := time.Until(deadline)
		if remaining < 0 {
			remaining = 0
		}
		if l.shutdown.Wait(remaining) {
			break
		}
	}

	l.setStatus(camera.StatusStopped)
	log.Printf("[%s] ポーリングを停止しました", l.cam.Name)
}

// State は現在の状態を取得する
func (l *Loop) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return State{
		Camera:    l.cam,
		Status:    l.status,
		LastSaved: l.lastSaved,
		LastError: l.lastError,
	}
}

func (l *Loop) setStatus(status camera.Status) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.status = status
}

func (l *Loop) recordResult(result *camera.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastSaved = result
	l.lastError = ""
}

func (l *Loop) recordError(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastError = err.Error()
}
