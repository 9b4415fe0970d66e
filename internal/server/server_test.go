package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"camerafetch/internal/camera"
	"camerafetch/internal/config"
	"camerafetch/internal/poller"
)

// newTestServer はテスト用のサーバーとSupervisorを作成する
func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	saveDir := filepath.Join(t.TempDir(), "camera_images")
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         18793, // 他のテストと衝突しにくい固定ポート
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Fetch: config.FetchConfig{
			SaveDir:        saveDir,
			RequestTimeout: 15 * time.Second,
			Cameras: []camera.Camera{
				{Name: "entrance", URL: "http://cam/snap.jpg", Interval: 30 * time.Second},
			},
		},
	}

	sup := poller.NewSupervisor(saveDir, cfg.Fetch.Cameras, camera.NewMockFetcher(), poller.NewShutdown())
	if err := sup.ProvisionDirectories(); err != nil {
		t.Fatalf("ディレクトリの作成に失敗しました: %v", err)
	}

	return New(cfg, sup), saveDir
}

// doRequest はハンドラへテストリクエストを送る
func doRequest(srv *Server, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

// TestServerEndpoints は各エンドポイントのステータスコードをテストする
func TestServerEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	testCases := []struct {
		name           string
		endpoint       string
		expectedStatus int
	}{
		{"ヘルスチェックエンドポイント", "/health", http.StatusOK},
		{"ステータスエンドポイント", "/api/status", http.StatusOK},
		{"カメラ一覧エンドポイント", "/api/cameras", http.StatusOK},
		{"未知のカメラの最新画像", "/api/cameras/unknown/latest", http.StatusNotFound},
		{"画像未保存のカメラ", "/api/cameras/entrance/latest", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(srv, http.MethodGet, tc.endpoint)
			if rec.Code != tc.expectedStatus {
				t.Errorf("予期しないステータスコード: got %d, want %d", rec.Code, tc.expectedStatus)
			}
		})
	}
}

// TestStatusResponse はステータスレスポンスの内容をテストする
func TestStatusResponse(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("予期しないステータスコード: %d", rec.Code)
	}

	var resp StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("レスポンスの解析に失敗しました: %v", err)
	}

	if resp.Status != "running" {
		t.Errorf("ステータスが一致しません: got %s", resp.Status)
	}
	if resp.RunID == "" {
		t.Error("RunIDが設定されていません")
	}
	if resp.Cameras != 1 {
		t.Errorf("カメラ数が一致しません: got %d, want 1", resp.Cameras)
	}
}

// TestCamerasResponse はカメラ一覧レスポンスの内容をテストする
func TestCamerasResponse(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/cameras")
	if rec.Code != http.StatusOK {
		t.Fatalf("予期しないステータスコード: %d", rec.Code)
	}

	var resp CamerasResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("レスポンスの解析に失敗しました: %v", err)
	}

	if len(resp.Cameras) != 1 {
		t.Fatalf("カメラ数が一致しません: got %d, want 1", len(resp.Cameras))
	}

	cam := resp.Cameras[0]
	if cam.Name != "entrance" {
		t.Errorf("カメラ名が一致しません: got %s", cam.Name)
	}
	if cam.IntervalSeconds != 30 {
		t.Errorf("ポーリング間隔が一致しません: got %v", cam.IntervalSeconds)
	}
	if cam.Status != string(camera.StatusIdle) {
		t.Errorf("カメラ状態が一致しません: got %s", cam.Status)
	}
}

// TestLatestImage は最新画像の配信をテストする
func TestLatestImage(t *testing.T) {
	srv, saveDir := newTestServer(t)

	// 古い画像と新しい画像を保存する
	camDir := filepath.Join(saveDir, "entrance")
	oldImage := filepath.Join(camDir, "entrance_20240101_000000.jpg")
	newImage := filepath.Join(camDir, "entrance_20240102_000000.jpg")
	if err := os.WriteFile(oldImage, []byte("old"), 0644); err != nil {
		t.Fatalf("テスト用画像の作成に失敗しました: %v", err)
	}
	if err := os.WriteFile(newImage, []byte("new"), 0644); err != nil {
		t.Fatalf("テスト用画像の作成に失敗しました: %v", err)
	}

	rec := doRequest(srv, http.MethodGet, "/api/cameras/entrance/latest")
	if rec.Code != http.StatusOK {
		t.Fatalf("予期しないステータスコード: %d", rec.Code)
	}
	if rec.Body.String() != "new" {
		t.Errorf("最新でない画像が配信されました: %q", rec.Body.String())
	}
}

// TestServerStartAndShutdown はサーバーの起動とシャットダウンをテストする
func TestServerStartAndShutdown(t *testing.T) {
	srv, _ := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	// サーバーが起動するまで少し待つ
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("サーバーの起動/停止でエラーが発生しました: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("サーバーの停止がタイムアウトしました")
	}
}
