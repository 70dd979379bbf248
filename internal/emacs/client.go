// Package emacs drives a running Emacs through emacsclient. It is the
// buffer text provider: every read is a fresh snapshot, every write a
// single splice, with the editor itself serializing buffer access.
package emacs

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dannyob/mcp-servers/internal/textloc"
)

// Client evaluates elisp in a running Emacs via emacsclient -e.
type Client struct {
	// Command is the emacsclient binary to invoke.
	Command string
	// Socket, when non-empty, is passed as --socket-name.
	Socket string

	log commonlog.Logger
}

// NewClient returns a client invoking command ("emacsclient" when empty).
func NewClient(command string) *Client {
	if command == "" {
		command = "emacsclient"
	}
	return &Client{
		Command: command,
		log:     commonlog.GetLogger("emacs"),
	}
}

// Eval evaluates raw elisp and returns emacsclient's printed result with
// the trailing newline stripped. A non-zero exit surfaces as an error
// carrying stderr.
func (c *Client) Eval(ctx context.Context, code string) (string, error) {
	args := []string{"-e", code}
	if c.Socket != "" {
		args = append([]string{"--socket-name", c.Socket}, args...)
	}
	cmd := exec.CommandContext(ctx, c.Command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.log.Debugf("eval: %s", code)
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("emacsclient failed: %s", msg)
	}
	return strings.TrimSuffix(stdout.String(), "\n"), nil
}

// Read returns the full contents of the named buffer.
func (c *Client) Read(ctx context.Context, buffer string) (string, error) {
	code := fmt.Sprintf(
		"(with-current-buffer %s (buffer-substring-no-properties (point-min) (point-max)))",
		quoteString(buffer))
	out, err := c.Eval(ctx, code)
	if err != nil {
		return "", fmt.Errorf("read buffer %q: %w", buffer, err)
	}
	text, err := decodeString(out)
	if err != nil {
		return "", fmt.Errorf("read buffer %q: %w", buffer, err)
	}
	return text, nil
}

// Apply splices a single edit into the named buffer and saves it. Edit
// offsets are byte offsets into the snapshot; Emacs points are 1-based
// character positions, so the conversion goes through byte-to-position
// inside the buffer itself.
func (c *Client) Apply(ctx context.Context, buffer string, edit textloc.Edit) error {
	var form strings.Builder
	fmt.Fprintf(&form, "(with-current-buffer %s (save-excursion", quoteString(buffer))
	fmt.Fprintf(&form, " (let ((start (byte-to-position (1+ %d))) (end (byte-to-position (1+ %d))))",
		edit.Offset, edit.Offset+edit.DeleteLen)
	if edit.DeleteLen > 0 {
		form.WriteString(" (delete-region start end)")
	}
	if edit.Insert != "" {
		fmt.Fprintf(&form, " (goto-char start) (insert %s)", quoteString(edit.Insert))
	}
	form.WriteString(" (when (buffer-file-name) (save-buffer)))))")

	if _, err := c.Eval(ctx, form.String()); err != nil {
		return fmt.Errorf("apply edit to buffer %q: %w", buffer, err)
	}
	return nil
}
