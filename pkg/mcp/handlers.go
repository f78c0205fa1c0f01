package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Sriram-PR/md-toc/pkg/process"
	"github.com/Sriram-PR/md-toc/pkg/utils"
)

// documentName labels tool input in errors and logs
const documentName = "markdown"

// handleGenerateTOC handles the generate_toc tool
func (s *Server) handleGenerateTOC(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, err := tocRequest(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	processor, err := s.processorFor(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	output, err := processor.ProcessText(documentName, req.Markdown)
	if err != nil {
		s.log.WithField("error_type", utils.CategorizeError(err)).Debugf("generate_toc failed: %v", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := map[string]interface{}{
		"markdown": output,
		"changed":  output != req.Markdown,
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

// handleExtractOutline handles the extract_outline tool
func (s *Server) handleExtractOutline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, err := tocRequest(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	processor, err := s.processorFor(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	forest, err := processor.Outline(documentName, req.Markdown)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := process.FormatOutline(process.OutlineEntries(forest), req.OutlineFormat(), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// processorFor builds a processor from the configured options and the
// call's overrides
func (s *Server) processorFor(req process.TOCRequest) (*process.ContentProcessor, error) {
	opts := req.Apply(s.cfg.Config.TOCOptions(s.cfg.Comment))
	return process.NewContentProcessor(opts, s.cfg.Config.Newlines, s.log)
}

// tocRequest collects the document and the overrides present in the call
func tocRequest(request mcp.CallToolRequest) (process.TOCRequest, error) {
	markdown, err := request.RequireString("markdown")
	if err != nil {
		return process.TOCRequest{}, fmt.Errorf("%w: %w", utils.ErrUsage, err)
	}

	req := process.TOCRequest{
		Markdown:                markdown,
		HeadingText:             optString(request, "heading_text"),
		HeadingLevel:            optInt(request, "heading_level"),
		SkipLevel:               optInt(request, "skip_level"),
		MaxLevel:                optInt(request, "max_level"),
		Numbered:                optBool(request, "numbered"),
		AltListChar:             optBool(request, "alt_list_char"),
		AddTrailingHeadingChars: optBool(request, "add_trailing_heading_chars"),
		Comment:                 optString(request, "comment"),
		Format:                  request.GetString("format", ""),
	}
	return req, nil
}

func hasArgument(request mcp.CallToolRequest, key string) bool {
	_, ok := request.GetArguments()[key]
	return ok
}

func optString(request mcp.CallToolRequest, key string) *string {
	if !hasArgument(request, key) {
		return nil
	}
	v := request.GetString(key, "")
	return &v
}

func optInt(request mcp.CallToolRequest, key string) *int {
	if !hasArgument(request, key) {
		return nil
	}
	v := request.GetInt(key, 0)
	return &v
}

func optBool(request mcp.CallToolRequest, key string) *bool {
	if !hasArgument(request, key) {
		return nil
	}
	v := request.GetBool(key, false)
	return &v
}

// formatJSON formats data as an indented JSON string
func formatJSON(data map[string]interface{}) string {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("{\"error\": %q}", err.Error())
	}
	return string(b)
}
