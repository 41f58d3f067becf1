package cli

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/doeshing/clicra-go/internal/ports"
)

// Clipboard implements ports.Clipboard using platform tools. Copying is
// best-effort: a missing utility is reported but never fatal.
type Clipboard struct{}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

func (c *Clipboard) Enabled() bool {
	switch runtime.GOOS {
	case "darwin", "linux":
		return true
	default:
		return false
	}
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	if !c.Enabled() {
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	default: // linux
		switch {
		case lookPathOK("wl-copy"):
			cmd = exec.Command("wl-copy")
		case lookPathOK("xclip"):
			cmd = exec.Command("xclip", "-selection", "clipboard")
		case lookPathOK("xsel"):
			cmd = exec.Command("xsel", "--clipboard", "--input")
		default:
			return fmt.Errorf("no clipboard utility found (wl-copy, xclip, or xsel)")
		}
	}
	cmd.Stdin = bytes.NewBufferString(text)
	return cmd.Run()
}

func lookPathOK(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

var _ ports.Clipboard = (*Clipboard)(nil)
