package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"camerafetch/internal/camera"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig `yaml:"server"`
	Fetch  FetchConfig  `yaml:"fetch"`
}

// ServerConfig はステータスAPIサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト
	Port int    `yaml:"port"` // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // 読み込みタイムアウト
	WriteTimeout time.Duration `yaml:"write_timeout"` // 書き込みタイムアウト
}

// FetchConfig は画像取得関連の設定
type FetchConfig struct {
	SaveDir        string          `yaml:"save_dir"`        // 画像保存先のルートディレクトリ
	RequestTimeout time.Duration   `yaml:"request_timeout"` // HTTPリクエストのタイムアウト
	Cameras        []camera.Camera `yaml:"cameras"`         // ポーリング対象カメラの一覧
}

// defaultCameras は設定が指定されない場合のカメラ一覧を返す
func defaultCameras() []camera.Camera {
	return []camera.Camera{
		{
			Name:     "front_door",
			URL:      "https://example.com/FrontDoor.JPG",
			Interval: 60 * time.Second,
		},
		{
			Name:     "pool",
			URL:      "https://example.com/Pool.jpg",
			Interval: 30 * time.Second,
		},
	}
}

// Load は設定を読み込む。
// 環境変数 SAVE_DIR, REQUEST_TIMEOUT, CAMERAS, SERVER_HOST, PORT を参照する
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsIntOrDefault("PORT", 8080),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Fetch: FetchConfig{
			SaveDir:        getEnvOrDefault("SAVE_DIR", "camera_images"),
			RequestTimeout: time.Duration(getEnvAsIntOrDefault("REQUEST_TIMEOUT", 15)) * time.Second,
			Cameras:        defaultCameras(),
		},
	}

	// CAMERAS環境変数でカメラ一覧を上書き
	if raw := os.Getenv("CAMERAS"); raw != "" {
		cameras, err := ParseCameras(raw)
		if err != nil {
			return nil, fmt.Errorf("CAMERAS環境変数の解析に失敗: %w", err)
		}
		cfg.Fetch.Cameras = cameras
	}

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// ParseCameras は "名前|URL|間隔秒" をセミコロンで連結した文字列を解析する
func ParseCameras(raw string) ([]camera.Camera, error) {
	entries := strings.Split(raw, ";")
	cameras := make([]camera.Camera, 0, len(entries))

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, "|")
		if len(parts) != 3 {
			return nil, fmt.Errorf("不正なカメラ定義: %q (名前|URL|間隔秒 の形式が必要)", entry)
		}

		var seconds int
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[2]), "%d", &seconds); err != nil {
			return nil, fmt.Errorf("不正なポーリング間隔: %q", parts[2])
		}

		cameras = append(cameras, camera.Camera{
			Name:     strings.TrimSpace(parts[0]),
			URL:      strings.TrimSpace(parts[1]),
			Interval: time.Duration(seconds) * time.Second,
		})
	}

	if len(cameras) == 0 {
		return nil, fmt.Errorf("カメラ定義がありません")
	}

	return cameras, nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}

	// 取得設定の検証
	if c.Fetch.SaveDir == "" {
		return fmt.Errorf("保存先ディレクトリが設定されていません")
	}
	if c.Fetch.RequestTimeout <= 0 {
		return fmt.Errorf("無効なリクエストタイムアウト: %v", c.Fetch.RequestTimeout)
	}
	if len(c.Fetch.Cameras) == 0 {
		return fmt.Errorf("カメラが設定されていません")
	}

	// カメラ名はディレクトリ名とログの相関キーに使うため、重複とパス区切り文字を拒否する
	seen := make(map[string]bool, len(c.Fetch.Cameras))
	for _, cam := range c.Fetch.Cameras {
		if cam.Name == "" {
			return fmt.Errorf("カメラ名が空です")
		}
		if strings.ContainsAny(cam.Name, `/\`) {
			return fmt.Errorf("カメラ名にパス区切り文字は使用できません: %q", cam.Name)
		}
		if seen[cam.Name] {
			return fmt.Errorf("カメラ名が重複しています: %q", cam.Name)
		}
		seen[cam.Name] = true

		if cam.URL == "" {
			return fmt.Errorf("カメラ %q のURLが設定されていません", cam.Name)
		}
		if cam.Interval < time.Second {
			return fmt.Errorf("カメラ %q のポーリング間隔が短すぎます: %v (1秒以上が必要)", cam.Name, cam.Interval)
		}
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}
