// Package poller は、カメラ毎のポーリングループと全体の監督を提供します。
//
// このパッケージは、カメラ1台につき1つのゴルーチンを起動し、
// 単調時計ベースのデッドラインで一定間隔のポーリングを維持します。
// 停止要求は共有のShutdownを通じて全ループへ同時に伝わります。
//
// 責務:
//   - 保存先ディレクトリの準備（冪等）
//   - カメラ毎のポーリングループの起動と終了待機
//   - 停止要求の調整（冪等なRequest、割り込み可能な待機）
//
// 仕様:
//   - 取得の所要時間は次の待機から差し引かれ、間隔の実測値を設定値に近づける
//   - 取得が間隔を超過した場合、次の取得は待機なしで開始される
//   - あるカメラの取得失敗は他のカメラにも全体にも影響しない
//   - 取得中に停止要求があった場合、その取得は完了してからループが終了する
package poller
