package camera

import (
	"time"
)

// Camera はポーリング対象カメラの定義
type Camera struct {
	Name     string        // カメラの一意な名前（ディレクトリ名とファイル名の接頭辞に使用）
	URL      string        // 静止画像の取得先URL
	Interval time.Duration // ポーリング間隔
}

// Status はカメラポーリングの動作状態を表す
type Status string

const (
	StatusIdle    Status = "idle"    // ポーリング開始前
	StatusPolling Status = "polling" // ポーリング中
	StatusStopped Status = "stopped" // 停止済み
)

// Result は1回の取得が成功したときの情報
type Result struct {
	Path      string    // 保存先ファイルパス
	Timestamp time.Time // 取得時刻
	Size      int64     // 保存したバイト数
}
