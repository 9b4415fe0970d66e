// Package main はタイムラプス動画生成コマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"camerafetch/internal/timelapse"
)

func main() {
	// コマンドラインオプション
	var (
		output  = flag.String("o", "timelapse.mp4", "出力動画ファイル名")
		fps     = flag.Int("fps", 24, "出力フレームレート")
		ext     = flag.String("ext", ".jpg", "入力画像の拡張子（ドット付き）")
		quality = flag.Int("quality", 3, "動画品質 (1-5)")
		help    = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help || flag.NArg() != 1 {
		fmt.Println("camerafetch timelapse")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  timelapse [オプション] <画像ディレクトリ>")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		if *help {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg := timelapse.DefaultConfig()
	cfg.FPS = *fps
	cfg.Extension = *ext
	cfg.Quality = *quality

	gen := timelapse.NewGenerator(cfg)

	// FFmpegの利用可否を先に確認する
	if err := gen.ValidateFFmpeg(); err != nil {
		log.Fatalf("FFmpegの確認に失敗しました: %v", err)
	}

	if err := gen.Generate(context.Background(), flag.Arg(0), *output); err != nil {
		log.Fatalf("動画の生成に失敗しました: %v", err)
	}
}
