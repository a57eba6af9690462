package output

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ResolveColorMode determines the effective isTTY value from the --color flag
// ("never", "always" or "auto") and the detected terminal state.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY
	}
}

// IsTTY reports whether writer is a terminal (including Cygwin/MSYS ptys).
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
