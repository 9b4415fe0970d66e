// Package timelapse は、保存済み画像からのタイムラプス動画生成を提供します。
//
// このパッケージは、ディレクトリ内の画像ファイルを自然順
// （img2がimg10より前）に並べ、FFmpegで1本の動画に連結します。
//
// 責務:
//   - 指定拡張子の画像ファイルの列挙と自然順ソート
//   - FFmpegによる動画生成（libx264、品質1〜5をCRFへ変換）
//   - FFmpegの利用可否チェック
//
// 仕様:
//   - 画像が1枚もない場合はエラー
//   - 出力先の既存ファイルは上書きされる
package timelapse
