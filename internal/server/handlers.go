package server

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse はヘルスチェックのレスポンス
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ServerInfo はサーバーの基本情報
type ServerInfo struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// StatusResponse はシステム状態のレスポンス
type StatusResponse struct {
	Status        string     `json:"status"`
	RunID         string     `json:"run_id"`
	Server        ServerInfo `json:"server"`
	Cameras       int        `json:"cameras"`
	UptimeSeconds float64    `json:"uptime_seconds"`
	Timestamp     time.Time  `json:"timestamp"`
}

// SavedImage は最後に保存された画像の情報
type SavedImage struct {
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
	Size      int64     `json:"size"`
}

// CameraInfo はカメラ1台の状態
type CameraInfo struct {
	Name            string      `json:"name"`
	URL             string      `json:"url"`
	IntervalSeconds float64     `json:"interval_seconds"`
	Status          string      `json:"status"`
	LastSaved       *SavedImage `json:"last_saved,omitempty"`
	LastError       string      `json:"last_error,omitempty"`
}

// CamerasResponse はカメラ一覧のレスポンス
type CamerasResponse struct {
	Cameras []CameraInfo `json:"cameras"`
}

// ErrorResponse はエラーレスポンス
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// handleHealth はヘルスチェックエンドポイントの実装
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	})
}

// handleStatus はシステム状態取得エンドポイントの実装
func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Status: "running",
		RunID:  s.runID,
		Server: ServerInfo{
			Host: s.config.Server.Host,
			Port: s.config.Server.Port,
		},
		Cameras:       s.supervisor.CameraCount(),
		UptimeSeconds: time.Since(s.startedAt).Seconds(),
		Timestamp:     time.Now(),
	})
}

// handleCameras はカメラ一覧取得エンドポイントの実装
func (s *Server) handleCameras(c *gin.Context) {
	states := s.supervisor.States()
	cameras := make([]CameraInfo, 0, len(states))

	for _, state := range states {
		info := CameraInfo{
			Name:            state.Camera.Name,
			URL:             state.Camera.URL,
			IntervalSeconds: state.Camera.Interval.Seconds(),
			Status:          string(state.Status),
			LastError:       state.LastError,
		}
		if state.LastSaved != nil {
			info.LastSaved = &SavedImage{
				Path:      state.LastSaved.Path,
				Timestamp: state.LastSaved.Timestamp,
				Size:      state.LastSaved.Size,
			}
		}
		cameras = append(cameras, info)
	}

	c.JSON(http.StatusOK, CamerasResponse{Cameras: cameras})
}

// handleLatestImage はカメラの最新保存画像を配信する
func (s *Server) handleLatestImage(c *gin.Context) {
	name := c.Param("name")

	if !s.cameraExists(name) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:     "camera_not_found",
			Message:   "指定されたカメラが見つかりません",
			Timestamp: time.Now(),
		})
		return
	}

	latest, err := latestImagePath(filepath.Join(s.config.Fetch.SaveDir, name))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:     "image_not_found",
			Message:   "保存された画像がありません",
			Timestamp: time.Now(),
		})
		return
	}

	c.File(latest)
}

// cameraExists は指定された名前のカメラが登録済みかを返す
func (s *Server) cameraExists(name string) bool {
	for _, state := range s.supervisor.States() {
		if state.Camera.Name == name {
			return true
		}
	}
	return false
}

// latestImagePath はディレクトリ内で最も新しい画像ファイルのパスを返す。
// ファイル名のタイムスタンプは固定幅のため、辞書順の最大値が最新になる
func latestImagePath(camDir string) (string, error) {
	entries, err := os.ReadDir(camDir)
	if err != nil {
		return "", err
	}

	var latest string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if entry.Name() > latest {
			latest = entry.Name()
		}
	}
	if latest == "" {
		return "", os.ErrNotExist
	}

	return filepath.Join(camDir, latest), nil
}
