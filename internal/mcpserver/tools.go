package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dannyob/mcp-servers/internal/shell"
	"github.com/dannyob/mcp-servers/internal/textloc"
)

func boolPtr(b bool) *bool { return &b }

type getRegionInput struct {
	Buffer string `json:"buffer"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type insertAtInput struct {
	Buffer  string `json:"buffer"`
	Locator string `json:"locator"`
	Text    string `json:"text"`
	// After defaults to true when omitted.
	After *bool `json:"after,omitempty"`
}

type replaceRegionInput struct {
	Buffer  string `json:"buffer"`
	Start   string `json:"start"`
	End     string `json:"end"`
	OldText string `json:"old_text"`
	NewText string `json:"new_text"`
}

type orgPropertiesInput struct {
	Buffer  string `json:"buffer"`
	Heading string `json:"heading"`
}

type evalInput struct {
	Code string `json:"code"`
}

type runCommandInput struct {
	Command string `json:"command"`
}

type commandOutput struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) registerBufferTools() {
	readOnly := &mcp.ToolAnnotations{ReadOnlyHint: true}
	writeNonDestructive := &mcp.ToolAnnotations{DestructiveHint: boolPtr(false)}
	writeDestructive := &mcp.ToolAnnotations{DestructiveHint: boolPtr(true)}

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "emacs_get_region",
		Description: "Retrieves text from an Emacs buffer between two locators. Read-only.\n\n" +
			"A locator is either a zero-based byte offset (a bare integer) or a literal " +
			"substring to search for; the first occurrence in the buffer wins, so include " +
			"surrounding context to address a later one. The start locator's match begins " +
			"the region and the end locator's matched text is included in it.",
		Annotations: readOnly,
	}, s.handleGetRegion)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "emacs_insert_at",
		Description: "Inserts text at a location in an Emacs buffer without removing anything, " +
			"then saves the buffer. The locator is an offset or a search pattern; with " +
			"after=true (the default) and a pattern, the text goes immediately after the " +
			"matched text (for an offset locator the flag has no effect).",
		Annotations: writeNonDestructive,
	}, s.handleInsertAt)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "emacs_replace_region",
		Description: "Replaces text inside a region of an Emacs buffer, then saves it. " +
			"old_text must occur exactly once, verbatim, inside the region bounded by the " +
			"start and end locators: zero occurrences or more than one fail the call and " +
			"leave the buffer untouched. Narrow the region or extend old_text to disambiguate.",
		Annotations: writeDestructive,
	}, s.handleReplaceRegion)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "emacs_get_org_properties",
		Description: "Retrieves the metadata attached to an org-mode heading: the " +
			":PROPERTIES: drawer plus planning keywords (SCHEDULED, DEADLINE, CLOSED). " +
			"The heading is matched by exact title. A heading without metadata returns " +
			"an empty mapping.",
		Annotations: readOnly,
	}, s.handleOrgProperties)
}

func (s *Server) handleGetRegion(ctx context.Context, req *mcp.CallToolRequest, in getRegionInput) (*mcp.CallToolResult, any, error) {
	if in.Buffer == "" || in.Start == "" || in.End == "" {
		return errorResult("buffer, start and end are required"), nil, nil
	}
	start := time.Now()
	text, err := s.opts.Buffers.GetRegion(ctx, in.Buffer,
		textloc.ParseLocator(in.Start), textloc.ParseLocator(in.End))
	s.record("emacs_get_region", in, start, err)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	return textResult(text), nil, nil
}

func (s *Server) handleInsertAt(ctx context.Context, req *mcp.CallToolRequest, in insertAtInput) (*mcp.CallToolResult, any, error) {
	if in.Buffer == "" || in.Locator == "" || in.Text == "" {
		return errorResult("buffer, locator and text are required"), nil, nil
	}
	after := true
	if in.After != nil {
		after = *in.After
	}
	start := time.Now()
	err := s.opts.Buffers.InsertAt(ctx, in.Buffer,
		textloc.ParseLocator(in.Locator), in.Text, after)
	s.record("emacs_insert_at", in, start, err)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	return textResult("inserted"), nil, nil
}

func (s *Server) handleReplaceRegion(ctx context.Context, req *mcp.CallToolRequest, in replaceRegionInput) (*mcp.CallToolResult, any, error) {
	if in.Buffer == "" || in.Start == "" || in.End == "" || in.OldText == "" {
		return errorResult("buffer, start, end and old_text are required"), nil, nil
	}
	start := time.Now()
	err := s.opts.Buffers.ReplaceRegion(ctx, in.Buffer,
		textloc.ParseLocator(in.Start), textloc.ParseLocator(in.End),
		in.OldText, in.NewText)
	s.record("emacs_replace_region", in, start, err)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	return textResult("replaced"), nil, nil
}

func (s *Server) handleOrgProperties(ctx context.Context, req *mcp.CallToolRequest, in orgPropertiesInput) (*mcp.CallToolResult, any, error) {
	if in.Buffer == "" || in.Heading == "" {
		return errorResult("buffer and heading are required"), nil, nil
	}
	start := time.Now()
	props, err := s.opts.Buffers.Properties(ctx, in.Buffer, in.Heading)
	s.record("emacs_get_org_properties", in, start, err)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	encoded, err := json.Marshal(props)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	return textResult(string(encoded)), nil, nil
}

func (s *Server) registerEvalTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "run_emacsclient_code",
		Description: "Evaluates Emacs Lisp code in the running Emacs via emacsclient and " +
			"returns the printed result. The code is passed as-is; do not add outer quoting.",
		Annotations: &mcp.ToolAnnotations{OpenWorldHint: boolPtr(true)},
	}, s.handleEval)
}

func (s *Server) handleEval(ctx context.Context, req *mcp.CallToolRequest, in evalInput) (*mcp.CallToolResult, any, error) {
	if in.Code == "" {
		return errorResult("code is required"), nil, nil
	}
	start := time.Now()
	out, err := s.opts.Emacs.Eval(ctx, in.Code)
	s.record("run_emacsclient_code", in, start, err)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	return textResult(out), nil, nil
}

func (s *Server) registerShellTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "run_command",
		Description: "Executes a shell command on the local machine. Use for system " +
			"operations, file inspection, or utilities. Commands run with user permissions " +
			"and full shell processing, so expansions and pipelines work.",
		Annotations: &mcp.ToolAnnotations{OpenWorldHint: boolPtr(true)},
	}, s.handleRunCommand)
}

func (s *Server) handleRunCommand(ctx context.Context, req *mcp.CallToolRequest, in runCommandInput) (*mcp.CallToolResult, commandOutput, error) {
	if in.Command == "" {
		return errorResult("command is required"), commandOutput{}, nil
	}
	start := time.Now()
	res, err := s.opts.Runner.Run(ctx, in.Command)
	s.record("run_command", in, start, err)

	out := commandOutput{Stdout: res.Stdout, Stderr: res.Stderr}
	var execErr *shell.ExecError
	if errors.As(err, &execErr) {
		// The command ran and failed; its output is still the answer.
		out.Error = execErr.Message
		return nil, out, nil
	}
	if err != nil {
		return errorResult(err.Error()), commandOutput{}, nil
	}
	return nil, out, nil
}
