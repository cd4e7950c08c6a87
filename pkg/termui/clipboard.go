package termui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/brazucaphish/console/pkg/dashboard"
)

// ErrClipboardUnavailable is returned when no clipboard utility is installed.
var ErrClipboardUnavailable = errors.New("termui: clipboard is not available on this system")

// writeClipboard is replaced in tests.
var writeClipboard = func(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// CopyLinks puts the "copy all" text of links on the system clipboard.
func CopyLinks(links *dashboard.Links) error {
	if err := writeClipboard(links.CopyAll); err != nil {
		return fmt.Errorf("failed to copy links: %w", err)
	}
	return nil
}
