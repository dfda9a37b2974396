package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Batch level messages (info)
		"Processing %d files in %s":                            "%d ファイルを処理中 (%s)",
		"Batch completed: %d succeeded, %d skipped, %d failed": "バッチ完了: 成功 %d, スキップ %d, 失敗 %d",

		// Batch level problems
		"Failed to process %s: %s":         "%s の処理に失敗しました: %s",
		"Aborting batch after failure: %s": "失敗のためバッチを中止します: %s",
		"Interrupted, stopping before %s":  "中断されました。%s の前で停止します",
		"Processing %s":                    "%s を処理中",

		// Extract stage
		"Decoding %s":       "%s をデコード中",
		"Decoded %d frames": "%d フレームをデコードしました",

		// Compose stage
		"Composing %d frames of %dx%d into %dx%d atlas": "%d フレーム (%dx%d) を %dx%d のアトラスに合成中",
		"Resizing frame %d from %dx%d to %dx%d":         "フレーム %d を %dx%d から %dx%d にリサイズ中",
		"Failed to save debug output: %s":               "デバッグ出力の保存に失敗しました: %s",

		// Metadata stage
		"Average frame duration %.2f ms, %.3f fps": "平均フレーム時間 %.2f ms, %.3f fps",

		// Write stage
		"Wrote %s (%d bytes)":                    "%s を書き込みました (%d バイト)",
		"Removed %s after failed metadata write": "メタデータの書き込み失敗のため %s を削除しました",
	})
}
