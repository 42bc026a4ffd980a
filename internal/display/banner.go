package display

import (
	"fmt"
	"os"

	"github.com/backmassage/mkvkit/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` __  __ _          _  ___ _
|  \/  | | ____   _| |/ (_) |_
| |\/| | |/ /\ \ / / ' /| | __|
| |  | |   <  \ V /| . \| | |_
|_|  |_|_|\_\  \_/ |_|\_\_|\__|
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
