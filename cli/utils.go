package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.viam.com/utils"
)

// printf prints a message with no decoration.
func printf(w io.Writer, format string, a ...interface{}) {
	_, err := fmt.Fprintf(w, format+"\n", a...)
	utils.UncheckedError(err)
}

// warningf prints a yellow warning.
func warningf(w io.Writer, format string, a ...interface{}) {
	_, err := color.New(color.FgYellow).Fprintf(w, "Warning: "+format+"\n", a...)
	utils.UncheckedError(err)
}
