// Package camera は、ポーリング対象カメラの定義と画像取得を提供します。
//
// このパッケージは、HTTPエンドポイントから静止画像を1枚取得し、
// カメラ別ディレクトリへタイムスタンプ付きファイルとして保存する
// 責務を持ちます。
//
// 責務:
//   - カメラ定義（名前・URL・ポーリング間隔）の提供
//   - 画像の取得（タイムアウト付きHTTP GET）
//   - Content-Typeヘッダからの拡張子判定
//   - タイムスタンプ付きファイルへの保存
//
// 仕様:
//   - 取得の失敗（タイムアウト・不正なステータス・書き込みエラー）は
//     エラーとして返し、呼び出し側が次のサイクルへ進む
//   - ファイル名は {カメラ名}_{YYYYMMDD_HHMMSS}{拡張子}
package camera
