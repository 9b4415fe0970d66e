package camera

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Fetcher は1回分の画像取得と保存を担うインターフェース
type Fetcher interface {
	// Fetch は指定されたカメラから画像を1枚取得して保存する
	Fetch(ctx context.Context, cam Camera) (*Result, error)
}

// timestampLayout は保存ファイル名のタイムスタンプ形式（秒精度）
const timestampLayout = "20060102_150405"

// HTTPFetcher はHTTP GETで画像を取得するFetcher実装
type HTTPFetcher struct {
	saveDir string       // 保存先ルートディレクトリ
	client  *http.Client // タイムアウト付きHTTPクライアント
	now     func() time.Time
}

// NewHTTPFetcher は新しいHTTPFetcherを作成する
func NewHTTPFetcher(saveDir string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		saveDir: saveDir,
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// Fetch はカメラから画像を取得し、タイムスタンプ付きファイルとして保存する。
// タイムスタンプは秒精度のため、同一秒内の再取得は同名ファイルを上書きする。
func (f *HTTPFetcher) Fetch(ctx context.Context, cam Camera) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cam.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("画像の取得に失敗 (%s): %w", cam.URL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("不正なステータスコード: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み込みに失敗: %w", err)
	}

	now := f.now()
	ext := extensionFromContentType(resp.Header.Get("Content-Type"))
	filename := fmt.Sprintf("%s_%s%s", cam.Name, now.Format(timestampLayout), ext)
	path := filepath.Join(f.saveDir, cam.Name, filename)

	if err := os.WriteFile(path, body, 0644); err != nil {
		return nil, fmt.Errorf("画像の保存に失敗 (%s): %w", path, err)
	}

	return &Result{
		Path:      path,
		Timestamp: now,
		Size:      int64(len(body)),
	}, nil
}

// extensionFromContentType はContent-Typeヘッダから保存ファイルの拡張子を判定する。
// 既知の画像形式に一致しない場合は .jpg にフォールバックする
func extensionFromContentType(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "image/jpeg"):
		return ".jpg"
	case strings.Contains(ct, "image/png"):
		return ".png"
	case strings.Contains(ct, "image/gif"):
		return ".gif"
	case strings.Contains(ct, "image/bmp"):
		return ".bmp"
	}
	log.Printf("Content-Typeから画像形式を判定できません (%q)。.jpg を使用します", contentType)
	return ".jpg"
}

// MockFetcher はテスト用のモックFetcher実装。
// カメラ毎に呼び出し時刻を記録し、失敗や取得の所要時間を注入できる
type MockFetcher struct {
	mu sync.Mutex

	// テスト制御用
	fetchErrs  map[string]error
	fetchDelay time.Duration
	fetchTimes map[string][]time.Time
}

// NewMockFetcher は新しいMockFetcherを作成する
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		fetchErrs:  make(map[string]error),
		fetchTimes: make(map[string][]time.Time),
	}
}

// Fetch は取得をシミュレートし、呼び出し時刻を記録する
func (m *MockFetcher) Fetch(_ context.Context, cam Camera) (*Result, error) {
	m.mu.Lock()
	m.fetchTimes[cam.Name] = append(m.fetchTimes[cam.Name], time.Now())
	delay := m.fetchDelay
	err := m.fetchErrs[cam.Name]
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Path:      cam.Name + "/mock.jpg",
		Timestamp: time.Now(),
		Size:      0,
	}, nil
}

// SetFetchError はテスト用に指定カメラのFetch失敗を設定する
func (m *MockFetcher) SetFetchError(camName string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchErrs[camName] = err
}

// SetFetchDelay はテスト用に取得の所要時間を設定する
func (m *MockFetcher) SetFetchDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchDelay = d
}

// FetchTimes は指定カメラの呼び出し時刻を返す
func (m *MockFetcher) FetchTimes(camName string) []time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	times := make([]time.Time, len(m.fetchTimes[camName]))
	copy(times, m.fetchTimes[camName])
	return times
}

// FetchCount は指定カメラの呼び出し回数を返す
func (m *MockFetcher) FetchCount(camName string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fetchTimes[camName])
}
