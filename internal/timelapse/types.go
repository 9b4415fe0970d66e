package timelapse

// Config はタイムラプス動画生成の設定
type Config struct {
	FPS          int    `json:"fps"`           // 出力フレームレート
	OutputFormat string `json:"output_format"` // 出力フォーマット ("mp4")
	Quality      int    `json:"quality"`       // 動画品質 (1-5)
	Extension    string `json:"extension"`     // 入力画像の拡張子（ドット付き）
}

// DefaultConfig はデフォルトのタイムラプス設定を返す
func DefaultConfig() Config {
	return Config{
		FPS:          24,
		OutputFormat: "mp4",
		Quality:      3,
		Extension:    ".jpg",
	}
}
