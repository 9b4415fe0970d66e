package poller

import (
	"sync"
	"time"
)

// Shutdown は全ポーリングループへ停止を伝える調整役。
// 一度要求されたらクリアされない、書き込み1回・読み取り多数のフラグとして動作する
type Shutdown struct {
	once sync.Once
	ch   chan struct{}
}

// NewShutdown は新しいShutdownを作成する
func NewShutdown() *Shutdown {
	return &Shutdown{ch: make(chan struct{})}
}

// Request は停止を要求する。複数回呼んでも安全（冪等）
func (s *Shutdown) Request() {
	s.once.Do(func() {
		close(s.ch)
	})
}

// Requested は停止が要求済みかを返す（非ブロッキング）
func (s *Shutdown) Requested() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}

// Wait は最大dの間ブロックし、停止要求があれば直ちに返る。
// 停止要求で戻った場合はtrue、時間切れで戻った場合はfalseを返す
func (s *Shutdown) Wait(d time.Duration) bool {
	if d <= 0 {
		return s.Requested()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-s.ch:
		return true
	case <-timer.C:
		return false
	}
}

// Done は停止要求時に閉じられるチャンネルを返す
func (s *Shutdown) Done() <-chan struct{} {
	return s.ch
}
