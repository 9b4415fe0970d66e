package timelapse

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestImages は指定された名前の空ファイルを作成する
func writeTestImages(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("image"), 0644); err != nil {
			t.Fatalf("テスト用画像の作成に失敗しました: %v", err)
		}
	}
}

// TestListImagesNaturalOrder は画像が自然順に並ぶことをテストする
func TestListImagesNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	writeTestImages(t, dir, "img10.jpg", "img2.jpg", "img1.jpg")

	g := NewGenerator(DefaultConfig())
	images, err := g.listImages(dir)
	if err != nil {
		t.Fatalf("listImagesでエラーが発生しました: %v", err)
	}

	expected := []string{"img1.jpg", "img2.jpg", "img10.jpg"}
	if len(images) != len(expected) {
		t.Fatalf("画像数が一致しません: got %d, want %d", len(images), len(expected))
	}
	for i, want := range expected {
		if images[i] != want {
			t.Errorf("並び順が一致しません (%d番目): got %s, want %s", i, images[i], want)
		}
	}
}

// TestListImagesFiltersExtension は拡張子でフィルタされることをテストする
func TestListImagesFiltersExtension(t *testing.T) {
	dir := t.TempDir()
	writeTestImages(t, dir, "a.jpg", "b.png", "c.txt", "d.JPG")

	g := NewGenerator(DefaultConfig())
	images, err := g.listImages(dir)
	if err != nil {
		t.Fatalf("listImagesでエラーが発生しました: %v", err)
	}

	// 大文字小文字は区別しない（.JPGも対象）
	if len(images) != 2 {
		t.Fatalf("画像数が一致しません: got %d, want 2 (%v)", len(images), images)
	}
	for _, image := range images {
		if !strings.EqualFold(filepath.Ext(image), ".jpg") {
			t.Errorf("対象外の拡張子が含まれています: %s", image)
		}
	}
}

// TestListImagesMissingDirectory は存在しないディレクトリでエラーになることをテストする
func TestListImagesMissingDirectory(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	if _, err := g.listImages(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("エラーが期待されましたが、エラーが発生しませんでした")
	}
}

// TestGenerateEmptyDirectory は画像がない場合にエラーになることをテストする
func TestGenerateEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(DefaultConfig())

	err := g.Generate(context.Background(), dir, filepath.Join(t.TempDir(), "out.mp4"))
	if err == nil {
		t.Fatal("エラーが期待されましたが、エラーが発生しませんでした")
	}
	if !strings.Contains(err.Error(), "見つかりません") {
		t.Errorf("エラーメッセージが一致しません: %v", err)
	}
}

// TestCreateImageList はconcat用リストファイルの内容をテストする
func TestCreateImageList(t *testing.T) {
	imageDir := t.TempDir()
	listFile := filepath.Join(t.TempDir(), "images.txt")

	g := NewGenerator(Config{FPS: 10, OutputFormat: "mp4", Quality: 3, Extension: ".jpg"})
	if err := g.createImageList(listFile, imageDir, []string{"a.jpg", "b.jpg"}); err != nil {
		t.Fatalf("リスト作成でエラーが発生しました: %v", err)
	}

	content, err := os.ReadFile(listFile)
	if err != nil {
		t.Fatalf("リストファイルの読み込みに失敗しました: %v", err)
	}

	text := string(content)
	if !strings.Contains(text, filepath.Join(imageDir, "a.jpg")) {
		t.Error("1枚目の画像がリストに含まれていません")
	}
	if !strings.Contains(text, "duration 0.100000") {
		t.Errorf("フレーム表示時間が一致しません:\n%s", text)
	}
	// 最後のフレームはduration行なしで再掲される
	if strings.Count(text, filepath.Join(imageDir, "b.jpg")) != 2 {
		t.Errorf("最終フレームの再掲がありません:\n%s", text)
	}
}

// TestQualityToCRF は品質からCRFへの変換をテストする
func TestQualityToCRF(t *testing.T) {
	testCases := []struct {
		name     string
		quality  int
		expected string
	}{
		{"最低品質", 1, "28.0"},
		{"標準品質", 3, "23.0"},
		{"最高品質", 5, "18.0"},
		{"範囲外（下）", 0, "28.0"},
		{"範囲外（上）", 10, "18.0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if actual := qualityToCRF(tc.quality); actual != tc.expected {
				t.Errorf("CRF値が一致しません: got %s, want %s", actual, tc.expected)
			}
		})
	}
}
