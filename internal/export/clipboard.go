package export

import (
	"os"

	"github.com/atotto/clipboard"

	"github.com/anstrom/scanview/internal/errors"
	"github.com/anstrom/scanview/internal/scandata"
)

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the desktop clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.WrapExportError("no clipboard utility available", "clipboard", nil)
	}
	return clipboard.WriteAll(text)
}

// CopyCommand copies the recon command for one host.
func CopyCommand(clip Clipboard, h scandata.Host) error {
	return copyText(clip, ReconCommand(h))
}

// CopyCommands copies the recon commands for all hosts, one per line.
func CopyCommands(clip Clipboard, hosts []scandata.Host) error {
	return copyText(clip, ReconCommands(hosts))
}

func copyText(clip Clipboard, text string) error {
	if err := clip.WriteAll(text); err != nil {
		if errors.IsCode(err, errors.CodeExportFailed) {
			return err
		}
		return errors.WrapExportError("clipboard write denied", "clipboard", err)
	}
	return nil
}

// WriteFile saves a text export.
func WriteFile(path string, data string) error {
	if err := os.WriteFile(path, []byte(data+"\n"), 0o600); err != nil {
		return errors.WrapExportError("cannot write file", path, err)
	}
	return nil
}
