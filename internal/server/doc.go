// Package server は、ポーリングデーモンのステータスAPIを提供します。
//
// このパッケージは、稼働状況の確認用HTTPエンドポイントを担当します。
// ポーリング本体には関与せず、Supervisorの状態を読み取るだけです。
//
// 責務:
//   - ヘルスチェックとシステム状態の公開
//   - カメラ一覧と各ループの状態の公開
//   - カメラ毎の最新保存画像の配信
//
// 仕様:
//   - gin-gonic/ginを使用
//   - グレースフルシャットダウンに対応
//   - 認証なし（観測用途のみ）
package server
