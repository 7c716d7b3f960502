// Package config はnus3bankコマンドの設定管理を行います
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
)

const Version = "0.1.0"

// ErrModeConflict は動作モードのフラグが複数指定された場合のエラー
var ErrModeConflict = errors.New("動作モードのフラグが複数指定されています")

// Mode はアプリケーションの動作モードです
type Mode int

const (
	// ModeList はトラック一覧を表示します
	ModeList Mode = iota
	// ModeInfo はバンクの概要を表示します
	ModeInfo
	// ModeExtract はトラックのペイロードを書き出します
	ModeExtract
	// ModeReplace は既存トラックのペイロードを差し替えます
	ModeReplace
	// ModeAdd は新しいトラックを追加します
	ModeAdd
	// ModeRemove はトラックを削除します
	ModeRemove
)

// Config はアプリケーションの設定を保持します
type Config struct {
	BankPath    string
	TrackArgs   []string
	List        bool
	ShowInfo    bool
	Extract     bool
	TrackFilter string
	ReplaceID   string
	AddName     string
	RemoveID    string
	InputPath   string
	OutputDir   string
	SavePath    string
	DryRun      bool
	DebugMode   bool
	ShowVersion bool
}

// ParseFlags はコマンドライン引数を解析して設定を返します
func ParseFlags() *Config {
	config := &Config{}

	// カスタムUsage関数を設定（ダブルハイフン表示）
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "  --bank string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tpath to .nus3bank file (e.g. snd_bgm_CRS01.nus3bank)")
		fmt.Fprintln(flag.CommandLine.Output(), "  -b string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tpath to .nus3bank file (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --list")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tlist tracks in the bank (default mode)")
		fmt.Fprintln(flag.CommandLine.Output(), "  -l\tlist tracks in the bank (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --info")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tshow bank information and section table")
		fmt.Fprintln(flag.CommandLine.Output(), "  --extract")
		fmt.Fprintln(flag.CommandLine.Output(), "    \textract track payloads to files")
		fmt.Fprintln(flag.CommandLine.Output(), "  -x\textract track payloads to files (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  -t string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tcomma-separated track names or hex ids to extract (default: all)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --replace string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \thex id of the track to replace (requires --in)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --add string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tname of the track to add (requires --in)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --remove string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \thex id of the track to remove")
		fmt.Fprintln(flag.CommandLine.Output(), "  --in string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tpayload file for --replace / --add")
		fmt.Fprintln(flag.CommandLine.Output(), "  -o string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \toutput directory for extracted files (default \".\")")
		fmt.Fprintln(flag.CommandLine.Output(), "  --out string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \toutput path for the saved bank (default: same as --bank)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --dry-run")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tperform a dry run without writing output files")
		fmt.Fprintln(flag.CommandLine.Output(), "  -n\tperform a dry run without writing output files (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --debug")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tenable debug output")
		fmt.Fprintln(flag.CommandLine.Output(), "  -d\tenable debug output (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --version")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tshow version information")
		fmt.Fprintln(flag.CommandLine.Output(), "  -v\tshow version information (shorthand)")
	}

	// バンクフラグ
	flag.StringVar(&config.BankPath, "bank", "", "path to .nus3bank file (e.g. snd_bgm_CRS01.nus3bank)")
	flag.StringVar(&config.BankPath, "b", "", "path to .nus3bank file (shorthand)")

	// 一覧表示
	flag.BoolVar(&config.List, "list", false, "list tracks in the bank")
	flag.BoolVar(&config.List, "l", false, "list tracks in the bank (shorthand)")

	// 概要表示
	flag.BoolVar(&config.ShowInfo, "info", false, "show bank information and section table")

	// 抽出
	flag.BoolVar(&config.Extract, "extract", false, "extract track payloads to files")
	flag.BoolVar(&config.Extract, "x", false, "extract track payloads to files (shorthand)")
	flag.StringVar(&config.TrackFilter, "t", "", "comma-separated track names or hex ids to extract")

	// 編集操作
	flag.StringVar(&config.ReplaceID, "replace", "", "hex id of the track to replace")
	flag.StringVar(&config.AddName, "add", "", "name of the track to add")
	flag.StringVar(&config.RemoveID, "remove", "", "hex id of the track to remove")
	flag.StringVar(&config.InputPath, "in", "", "payload file for --replace / --add")

	// 出力先
	flag.StringVar(&config.OutputDir, "o", ".", "output directory for extracted files")
	flag.StringVar(&config.SavePath, "out", "", "output path for the saved bank")

	// ドライランモード
	flag.BoolVar(&config.DryRun, "dry-run", false, "perform a dry run without writing output files")
	flag.BoolVar(&config.DryRun, "n", false, "perform a dry run without writing output files (shorthand)")

	// デバッグモード
	flag.BoolVar(&config.DebugMode, "debug", false, "enable debug output")
	flag.BoolVar(&config.DebugMode, "d", false, "enable debug output (shorthand)")

	// バージョン表示
	flag.BoolVar(&config.ShowVersion, "version", false, "show version information")
	flag.BoolVar(&config.ShowVersion, "v", false, "show version information (shorthand)")

	flag.Parse()

	// フラグ未指定ならば最初の位置引数をバンクパスとして扱い、
	// 残りの位置引数はトラック指定として扱う
	args := flag.Args()
	if config.BankPath == "" && len(args) > 0 {
		config.BankPath = args[0]
		args = args[1:]
	}
	config.TrackArgs = args

	return config
}

// Mode は指定されたフラグから動作モードを決定します
func (c *Config) Mode() (Mode, error) {
	mode := ModeList
	count := 0
	if c.List {
		mode = ModeList
		count++
	}
	if c.ShowInfo {
		mode = ModeInfo
		count++
	}
	if c.Extract {
		mode = ModeExtract
		count++
	}
	if c.ReplaceID != "" {
		mode = ModeReplace
		count++
	}
	if c.AddName != "" {
		mode = ModeAdd
		count++
	}
	if c.RemoveID != "" {
		mode = ModeRemove
		count++
	}
	if count > 1 {
		return ModeList, ErrModeConflict
	}
	return mode, nil
}

// Selectors はトラック絞り込み指定を個々の条件に分解します。
// -t のカンマ区切り指定と位置引数による指定を合わせて返します。
func (c *Config) Selectors() []string {
	var selectors []string
	for _, s := range strings.Split(c.TrackFilter, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	selectors = append(selectors, c.TrackArgs...)
	return selectors
}

// HandleVersion はバージョン表示を処理します
func HandleVersion(showVersion bool) {
	if showVersion {
		fmt.Printf("nus3bank version %s\n", Version)
		os.Exit(0)
	}
}

// DebugLogger はデバッグ出力を管理します
type DebugLogger struct {
	enabled bool
}

// NewDebugLogger は新しいDebugLoggerを作成します
func NewDebugLogger(enabled bool) *DebugLogger {
	return &DebugLogger{enabled: enabled}
}

// Printf はデバッグモードが有効な場合のみメッセージを表示します
func (d *DebugLogger) Printf(format string, a ...any) {
	if d.enabled {
		fmt.Printf(format, a...)
	}
}
