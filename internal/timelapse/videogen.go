package timelapse

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/maruel/natural"
)

// Generator は画像シーケンスからタイムラプス動画を生成する
type Generator struct {
	config  Config
	tempDir string // 一時ファイル用ディレクトリ
}

// NewGenerator は新しいGeneratorを作成する
func NewGenerator(config Config) *Generator {
	return &Generator{
		config:  config,
		tempDir: filepath.Join(os.TempDir(), "camerafetch-timelapse"),
	}
}

// Generate はディレクトリ内の画像を自然順に連結して1本の動画を生成する。
// 対象画像が1枚もない場合はエラーを返す
func (g *Generator) Generate(ctx context.Context, imageDir, outputPath string) error {
	images, err := g.listImages(imageDir)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		return fmt.Errorf("拡張子 %s の画像が見つかりません: %s", g.config.Extension, imageDir)
	}
	log.Printf("%d枚の画像から動画を生成します: %s", len(images), outputPath)

	// 一時ディレクトリを作成
	sessionDir := filepath.Join(g.tempDir, fmt.Sprintf("session_%d", time.Now().UnixNano()))
	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return fmt.Errorf("一時ディレクトリの作成に失敗: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(sessionDir) // cleanup中のエラーは無視
	}()

	// 画像ファイルリストを作成
	listFile := filepath.Join(sessionDir, "images.txt")
	if err := g.createImageList(listFile, imageDir, images); err != nil {
		return fmt.Errorf("画像リストの作成に失敗: %w", err)
	}

	// FFmpegで動画を作成
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-r", strconv.Itoa(g.config.FPS),
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", qualityToCRF(g.config.Quality),
		"-pix_fmt", "yuv420p",
		"-y", // 上書き許可
		outputPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("動画生成に失敗: %w (output: %s)", err, string(output))
	}

	log.Printf("動画を保存しました: %s", outputPath)
	return nil
}

// listImages は指定拡張子の画像ファイル名を自然順で返す。
// ゼロ埋めされていない連番（img2, img10）も数値として正しく並ぶ
func (g *Generator) listImages(imageDir string) ([]string, error) {
	entries, err := os.ReadDir(imageDir)
	if err != nil {
		return nil, fmt.Errorf("ディレクトリの読み取りに失敗 (%s): %w", imageDir, err)
	}

	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), g.config.Extension) {
			images = append(images, entry.Name())
		}
	}

	sort.Slice(images, func(i, j int) bool {
		return natural.Less(images[i], images[j])
	})

	return images, nil
}

// createImageList はFFmpegのconcat用リストファイルを作成する
func (g *Generator) createImageList(listFile, imageDir string, images []string) error {
	frameDuration := 1.0 / float64(g.config.FPS)

	var b strings.Builder
	for _, image := range images {
		fmt.Fprintf(&b, "file '%s'\nduration %.6f\n", filepath.Join(imageDir, image), frameDuration)
	}

	// 最後のフレームは追加の表示時間なし
	if len(images) > 0 {
		fmt.Fprintf(&b, "file '%s'\n", filepath.Join(imageDir, images[len(images)-1]))
	}

	return os.WriteFile(listFile, []byte(b.String()), 0644)
}

// qualityToCRF は品質設定をFFmpegのCRF値に変換する
func qualityToCRF(quality int) string {
	// 品質1(低) -> CRF28, 品質5(高) -> CRF18
	crf := 28.0 - float64(quality-1)*2.5
	if crf < 18 {
		crf = 18
	}
	if crf > 28 {
		crf = 28
	}
	return strconv.FormatFloat(crf, 'f', 1, 64)
}

// ValidateFFmpeg はFFmpegが利用可能かチェックする
func (g *Generator) ValidateFFmpeg() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "ffmpeg", "-version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("FFmpegが見つかりません。インストールしてください: %w", err)
	}

	return nil
}
