package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dannyob/mcp-servers/internal/shell"
)

func (s *Server) registerCommandPrompt() {
	s.server.AddPrompt(&mcp.Prompt{
		Name: "include_command_output",
		Description: "Executes a command and formats its output as conversation " +
			"messages, providing context for the response.",
		Arguments: []*mcp.PromptArgument{
			{Name: "command", Description: "Command to run", Required: true},
		},
	}, s.handleIncludeCommandOutput)
}

func (s *Server) handleIncludeCommandOutput(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	command := req.Params.Arguments["command"]
	if command == "" {
		return nil, errors.New("command is required")
	}

	res, err := s.opts.Runner.Run(ctx, command)

	userText := func(text string) *mcp.PromptMessage {
		return &mcp.PromptMessage{
			Role:    "user",
			Content: &mcp.TextContent{Text: text},
		}
	}

	var execErr *shell.ExecError
	if errors.As(err, &execErr) {
		messages := []*mcp.PromptMessage{
			userText(fmt.Sprintf("I ran the following command, but it failed:\n%s", command)),
			userText("ERROR:\n" + execErr.Message),
		}
		if execErr.Stderr != "" {
			messages = append(messages, userText("STDERR:\n"+execErr.Stderr))
		}
		if execErr.Stdout != "" {
			messages = append(messages, userText("STDOUT:\n"+execErr.Stdout))
		}
		return &mcp.GetPromptResult{Messages: messages}, nil
	}
	if err != nil {
		return nil, err
	}

	messages := []*mcp.PromptMessage{
		userText(fmt.Sprintf("I ran the following command, if there is any output it will be shown below:\n%s", command)),
	}
	if res.Stdout != "" {
		messages = append(messages, userText("STDOUT:\n"+res.Stdout))
	}
	if res.Stderr != "" {
		messages = append(messages, userText("STDERR:\n"+res.Stderr))
	}
	return &mcp.GetPromptResult{Messages: messages}, nil
}
