package poller

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"camerafetch/internal/camera"
)

// Supervisor は全カメラのポーリングループを起動・監督する
type Supervisor struct {
	saveDir  string
	shutdown *Shutdown
	loops    []*Loop

	wg sync.WaitGroup
}

// NewSupervisor は新しいSupervisorを作成する。
// ループはこの時点で構築され、Runで起動される
func NewSupervisor(saveDir string, cameras []camera.Camera, fetcher camera.Fetcher, shutdown *Shutdown) *Supervisor {
	loops := make([]*Loop, 0, len(cameras))
	for _, cam := range cameras {
		loops = append(loops, NewLoop(cam, fetcher, shutdown))
	}

	return &Supervisor{
		saveDir:  saveDir,
		shutdown: shutdown,
		loops:    loops,
	}
}

// ProvisionDirectories は保存先ルートと各カメラのディレクトリを作成する。
// 既存のディレクトリはエラーにならない（冪等）
func (s *Supervisor) ProvisionDirectories() error {
	if err := os.MkdirAll(s.saveDir, 0755); err != nil {
		return fmt.Errorf("保存先ディレクトリの作成に失敗 (%s): %w", s.saveDir, err)
	}
	log.Printf("保存先ディレクトリ: %s", s.saveDir)

	for _, loop := range s.loops {
		camDir := filepath.Join(s.saveDir, loop.cam.Name)
		if err := os.MkdirAll(camDir, 0755); err != nil {
			return fmt.Errorf("カメラ %q のディレクトリ作成に失敗 (%s): %w", loop.cam.Name, camDir, err)
		}
		log.Printf("カメラ %q のディレクトリを確認しました: %s", loop.cam.Name, camDir)
	}

	return nil
}

// Run はディレクトリを準備し、カメラ毎のループを起動して停止要求まで待機する。
// 停止要求後は全ループの終了を待ってから戻る。
// ディレクトリの準備失敗のみがエラーとなり、取得の失敗はエラーにならない
func (s *Supervisor) Run(ctx context.Context) error {
	if err := s.ProvisionDirectories(); err != nil {
		return err
	}

	for _, loop := range s.loops {
		s.wg.Add(1)
		go func(l *Loop) {
			defer s.wg.Done()
			l.Run(ctx)
		}(loop)
	}
	log.Printf("%d台のカメラのポーリングを開始しました", len(s.loops))

	// 停止要求かコンテキストのキャンセルを待つ
	select {
	case <-s.shutdown.Done():
	case <-ctx.Done():
		s.shutdown.Request()
	}

	log.Println("停止要求を受信しました。全ループの終了を待機します...")
	s.wg.Wait()
	log.Println("全カメラのポーリングが終了しました")

	return nil
}

// States は全ループの現在状態を返す
func (s *Supervisor) States() []State {
	states := make([]State, 0, len(s.loops))
	for _, loop := range s.loops {
		states = append(states, loop.State())
	}
	return states
}

// CameraCount は監督対象のカメラ数を返す
func (s *Supervisor) CameraCount() int {
	return len(s.loops)
}
