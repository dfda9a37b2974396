// Package main provides localization for the gifatlas CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Input":          "入力",
		"Output":         "出力先",
		"Decoding":       "デコード",
		"Error Handling": "エラー処理",
		"Debug":          "デバッグ",
		"Logging":        "ログ",

		// Root command
		"Convert animated GIFs into vertical sprite-sheet atlases": "アニメーションGIFを縦並びのスプライトシート（アトラス）に変換",
		"gifatlas scans a directory for GIF files and writes, next to each one, a PNG atlas with all frames stacked vertically and a JSON file describing it.": "gifatlasはディレクトリ内のGIFファイルを探し、それぞれの隣に全フレームを縦に並べたPNGアトラスと、その内容を記述したJSONファイルを書き出します。",

		// Input flags
		"YAML configuration file (flags take precedence)":  "YAML設定ファイル（フラグが優先）",
		"Root directory scanned recursively for GIF files": "GIFファイルを再帰的に探すルートディレクトリ",
		"File name pattern of inputs (case-sensitive)":     "入力ファイル名のパターン（大文字小文字を区別する）",

		// Decoding flags
		"Use raw GIF sub-frames instead of fully rendered frames": "描画済みフレームではなくGIFの生のサブフレームを使用",

		// Output flags
		"Suffix replacing the input extension for the atlas image":   "アトラス画像で入力の拡張子を置き換えるサフィックス",
		"Suffix replacing the input extension for the metadata file": "メタデータファイルで入力の拡張子を置き換えるサフィックス",
		"Output execution summary to file (Markdown format)":         "実行サマリーをファイルに出力（Markdown形式）",

		// Error handling flags
		"What a failed file does to the batch (continue, abort)": "失敗したファイルの扱い（continue: 続行, abort: 中止）",

		// Debug flags
		"Enable debug output":                               "デバッグ出力を有効化",
		"Directory for debug output":                        "デバッグ出力のディレクトリ",
		"Color outlining atlas bands in debug output (hex)": "デバッグ出力でアトラスの帯を囲む色（16進数）",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Runtime messages
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"Loaded configuration from %s":  "%s から設定を読み込みました",
		"Summary saved to %s":           "サマリーを %s に保存しました",
		"Failed to write summary: %s":   "サマリーの書き込みに失敗しました: %s",

		// Summary content
		"Atlas Summary": "アトラス生成サマリー",
		"Item":          "項目",
		"Value":         "値",
		"Run ID":        "実行ID",
		"Generated At":  "生成日時",
		"Directory":     "ディレクトリ",
		"On Error":      "エラー時の動作",
		"Totals":        "集計",
		"Files":         "ファイル",
		"Succeeded":     "成功",
		"Skipped":       "スキップ",
		"Failed":        "失敗",
		"Status":        "状態",
		"File":          "ファイル",
		"Frames":        "フレーム数",
		"Frame Size":    "フレームサイズ",
		"FPS":           "FPS",
		"Reason":        "理由",
		"Generated by":  "生成:",
	})
}
