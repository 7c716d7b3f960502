package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akisawa/go-nus3bank/internal/editor/bank"
	"github.com/akisawa/go-nus3bank/internal/editor/config"
	"github.com/akisawa/go-nus3bank/internal/editor/fileutil"
)

var debugFlag = flag.Bool("d", false, "debug mode (show more info)")

func main() {
	flag.Parse()

	fs := fileutil.NewOSFileSystem()
	logger := config.NewDebugLogger(*debugFlag)
	service := bank.NewService(fs, logger)

	// 引数がなければカレントディレクトリなどから自動検出
	files := flag.Args()
	if len(files) == 0 {
		finder := fileutil.NewBankFileFinder(fs)
		found, err := finder.Find()
		if err != nil {
			fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
			os.Exit(1)
		}
		files = found
	}

	if len(files) == 0 {
		fmt.Println("使用方法: banknames [オプション] [バンクファイル...]")
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	exitCode := 0
	for _, path := range files {
		archive, err := service.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exitCode = 1
			continue
		}

		base := filepath.Base(path)
		for _, tr := range archive.Tracks() {
			fmt.Printf("%s\t%s\t%s\n", base, tr.HexID, tr.Name)
		}
	}

	os.Exit(exitCode)
}
