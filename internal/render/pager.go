package render

import (
	"bytes"
	"io"

	"github.com/noborus/ov/oviewer"

	"github.com/derickschaefer/reel/internal/model"
)

// Pager modes accepted by --pager.
const (
	PagerAuto  = "auto"
	PagerNever = "never"
)

// runPager is swapped out in tests; ov needs a real terminal.
var runPager = func(r io.Reader) error {
	root, err := oviewer.NewRoot(r)
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = true
	config.IsWriteOriginal = true
	config.QuitSmall = true
	root.SetConfig(config)

	return root.Run()
}

// Page renders result into memory and shows it in the ov pager. Short
// output that fits the screen is written straight through on exit.
func Page(result *model.Result, format string) error {
	var buf bytes.Buffer
	if err := Render(&buf, result, format); err != nil {
		return err
	}
	return runPager(&buf)
}

// UsePager decides whether output should go through the pager: only for
// table output to a terminal, with no --out file and --pager auto.
func UsePager(mode, format, outPath string, tty bool) bool {
	return mode == PagerAuto && format == FormatTable && outPath == "" && tty
}
