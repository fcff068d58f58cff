package mcp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/mcp-xpdf/internal/config"
	"github.com/a3tai/mcp-xpdf/internal/descriptions"
	"github.com/a3tai/mcp-xpdf/internal/log"
	"github.com/a3tai/mcp-xpdf/internal/xpdf"
	"github.com/a3tai/mcp-xpdf/internal/xpdf/pdfimages"
	"github.com/a3tai/mcp-xpdf/internal/xpdf/pdfinfo"
	"github.com/a3tai/mcp-xpdf/internal/xpdf/pdftext"
)

const shutdownTimeout = 5 * time.Second

// Tools bundles the three Xpdf tools served over MCP.
type Tools struct {
	Text   *pdftext.Tool
	Info   *pdfinfo.Tool
	Images *pdfimages.Tool
}

// NewTools provisions every tool from the configuration.
func NewTools(cfg *config.Config, logger log.Logger) (*Tools, error) {
	text, err := pdftext.NewTool(cfg.ToolConfig(cfg.PDFText, logger))
	if err != nil {
		return nil, fmt.Errorf("failed to set up pdftotext: %w", err)
	}
	info, err := pdfinfo.NewTool(cfg.ToolConfig(cfg.PDFInfo, logger))
	if err != nil {
		return nil, fmt.Errorf("failed to set up pdfinfo: %w", err)
	}
	images, err := pdfimages.NewTool(cfg.ToolConfig(cfg.PDFImages, logger))
	if err != nil {
		return nil, fmt.Errorf("failed to set up pdfimages: %w", err)
	}
	return &Tools{Text: text, Info: info, Images: images}, nil
}

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	tools     *Tools
	paths     *PathValidator
	logger    log.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, tools *Tools, logger log.Logger) (*Server, error) {
	if tools == nil || tools.Text == nil || tools.Info == nil || tools.Images == nil {
		return nil, fmt.Errorf("tools cannot be nil")
	}
	if logger == nil {
		logger = log.Default
	}

	paths, err := NewPathValidator(cfg.PDFDirectory)
	if err != nil {
		return nil, err
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		tools:     tools,
		paths:     paths,
		logger:    logger,
		mcpServer: mcpServer,
	}
	s.registerTools()

	return s, nil
}

func pageOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("page_start", mcp.Description("First page to process (1-based)")),
		mcp.WithNumber("page_stop", mcp.Description("Last page to process (inclusive)")),
		mcp.WithString("owner_password", mcp.Description("Owner password of an encrypted PDF")),
		mcp.WithString("user_password", mcp.Description("User password of an encrypted PDF")),
		mcp.WithArray("native_options",
			mcp.Description("Extra command line options passed through in order, e.g. [{\"name\": \"-cfg\", \"value\": \"xpdfrc\"}]"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":  map[string]any{"type": "string"},
					"value": map[string]any{"type": "string"},
				},
				"required": []string{"name"},
			}),
		),
	}
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	textOptions := append([]mcp.ToolOption{
		mcp.WithDescription(descriptions.PDFTextDescription),
		mcp.WithString("pdf_file", mcp.Required(), mcp.Description("Path to the PDF file, absolute or relative to the PDF directory")),
		mcp.WithString("text_file",
			mcp.Description("File to write the text to; when omitted the text is returned inline"),
		),
		mcp.WithString("format", mcp.Enum(pdftext.Formats()...), mcp.Description("Text layout mode")),
		mcp.WithString("encoding", mcp.Enum(pdftext.Encodings()...), mcp.Description("Output text encoding")),
		mcp.WithString("end_of_line", mcp.Enum(pdftext.EndOfLines()...), mcp.Description("End of line convention")),
		mcp.WithBoolean("page_break_excluded", mcp.Description("Do not insert page breaks between pages")),
	}, pageOptions()...)
	s.mcpServer.AddTool(mcp.NewTool(descriptions.PDFText, textOptions...), s.handlePDFText)

	infoOptions := append([]mcp.ToolOption{
		mcp.WithDescription(descriptions.PDFInfoDescription),
		mcp.WithString("pdf_file", mcp.Required(), mcp.Description("Path to the PDF file, absolute or relative to the PDF directory")),
		mcp.WithString("encoding", mcp.Enum(pdfinfo.Encodings()...), mcp.Description("Output text encoding")),
		mcp.WithBoolean("bounding_boxes", mcp.Description("Print the page bounding boxes")),
		mcp.WithBoolean("metadata", mcp.Description("Print the document metadata stream")),
		mcp.WithBoolean("raw_dates", mcp.Description("Print dates undecoded")),
	}, pageOptions()...)
	s.mcpServer.AddTool(mcp.NewTool(descriptions.PDFInfo, infoOptions...), s.handlePDFInfo)

	imagesOptions := append([]mcp.ToolOption{
		mcp.WithDescription(descriptions.PDFImagesDescription),
		mcp.WithString("pdf_file", mcp.Required(), mcp.Description("Path to the PDF file, absolute or relative to the PDF directory")),
		mcp.WithString("image_prefix",
			mcp.Description("Path prefix of the image files; defaults to a temporary directory"),
		),
		mcp.WithString("file_format", mcp.Enum(pdfimages.FileFormats()...), mcp.Description("Image file format")),
		mcp.WithBoolean("list", mcp.Description("Print one line of information per image")),
	}, pageOptions()...)
	s.mcpServer.AddTool(mcp.NewTool(descriptions.PDFImages, imagesOptions...), s.handlePDFImages)
}

// Handler functions
func (s *Server) handlePDFText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pdfFile, err := s.pdfFileArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := request.GetArguments()

	opts := &pdftext.Options{
		Format:            pdftext.Format(stringArg(args, "format")),
		Encoding:          pdftext.Encoding(stringArg(args, "encoding")),
		EndOfLine:         pdftext.EndOfLine(stringArg(args, "end_of_line")),
		PageBreakExcluded: boolArg(args, "page_break_excluded"),
		OwnerPassword:     stringArg(args, "owner_password"),
		UserPassword:      stringArg(args, "user_password"),
	}
	if opts.PageStart, opts.PageStop, err = pageArgs(args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if opts.NativeOptions, err = nativeOptionsArg(args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	textFile, err := s.optionalPathArg(args, "text_file")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if textFile == "" {
		textFile = pdftext.Stdout
	}

	result, err := s.tools.Text.Process(ctx, &pdftext.Request{PdfFile: pdfFile, TextFile: textFile, Options: opts})
	if err != nil {
		return mcp.NewToolResultError(formatError(err)), nil
	}

	if result.TextFile != "" {
		return mcp.NewToolResultText(fmt.Sprintf("Text written to: %s\n", result.TextFile)), nil
	}
	return mcp.NewToolResultText(result.StandardOutput), nil
}

func (s *Server) handlePDFInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pdfFile, err := s.pdfFileArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := request.GetArguments()

	opts := &pdfinfo.Options{
		Encoding:              pdfinfo.Encoding(stringArg(args, "encoding")),
		BoundingBoxesIncluded: boolArg(args, "bounding_boxes"),
		MetadataIncluded:      boolArg(args, "metadata"),
		DatesUndecoded:        boolArg(args, "raw_dates"),
		OwnerPassword:         stringArg(args, "owner_password"),
		UserPassword:          stringArg(args, "user_password"),
	}
	if opts.PageStart, opts.PageStop, err = pageArgs(args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if opts.NativeOptions, err = nativeOptionsArg(args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.tools.Info.Process(ctx, &pdfinfo.Request{PdfFile: pdfFile, Options: opts})
	if err != nil {
		return mcp.NewToolResultError(formatError(err)), nil
	}
	return mcp.NewToolResultText(result.StandardOutput), nil
}

func (s *Server) handlePDFImages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pdfFile, err := s.pdfFileArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := request.GetArguments()

	opts := &pdfimages.Options{
		FileFormat:       pdfimages.FileFormat(stringArg(args, "file_format")),
		MetadataIncluded: boolArg(args, "list"),
		OwnerPassword:    stringArg(args, "owner_password"),
		UserPassword:     stringArg(args, "user_password"),
	}
	if opts.PageStart, opts.PageStop, err = pageArgs(args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if opts.NativeOptions, err = nativeOptionsArg(args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	prefix, err := s.optionalPathArg(args, "image_prefix")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.tools.Images.Process(ctx, &pdfimages.Request{
		PdfFile:             pdfFile,
		ImageFilePathPrefix: prefix,
		Options:             opts,
	})
	if err != nil {
		return mcp.NewToolResultError(formatError(err)), nil
	}

	text := formatImagesResult(result)
	if result.Temporary() {
		// The client cannot reach the temporary directory.
		if err := result.Remove(); err != nil {
			s.logger.Warnf("Failed to remove temporary images: %v", err)
		}
	}
	return mcp.NewToolResultText(text), nil
}

func formatImagesResult(result *pdfimages.Response) string {
	text := fmt.Sprintf("Total images extracted: %d\n", len(result.ImageFiles))
	for i, file := range result.ImageFiles {
		if result.Temporary() {
			file = filepath.Base(file)
		}
		text += fmt.Sprintf("%d. %s\n", i+1, file)
	}
	if result.Temporary() && len(result.ImageFiles) > 0 {
		text += "Images were not kept; pass image_prefix to save them.\n"
	}
	if result.StandardOutput != "" {
		text += "\n" + result.StandardOutput
	}
	return text
}

// pdfFileArg reads the required pdf_file argument and confines it to the
// configured directory.
func (s *Server) pdfFileArg(request mcp.CallToolRequest) (string, error) {
	pdfFile, err := request.RequireString("pdf_file")
	if err != nil {
		return "", err
	}
	return s.paths.NormalizePath(pdfFile)
}

// optionalPathArg confines an optional path argument. Absent stays empty.
func (s *Server) optionalPathArg(args map[string]any, key string) (string, error) {
	path := stringArg(args, key)
	if path == "" {
		return "", nil
	}
	normalized, err := s.paths.NormalizePath(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	return normalized, nil
}

// nativeOptionsArg decodes native_options, an array of {name, value}
// objects, keeping their order.
func nativeOptionsArg(args map[string]any) (xpdf.NativeOptions, error) {
	raw, ok := args["native_options"]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, errors.New("native_options must be an array")
	}

	options := make(xpdf.NativeOptions, 0, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("native_options[%d] must be an object", i)
		}
		name, _ := entry["name"].(string)
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("native_options[%d].name is required", i)
		}
		var value string
		if v, present := entry["value"]; present && v != nil {
			if value, ok = v.(string); !ok {
				return nil, fmt.Errorf("native_options[%d].value must be a string", i)
			}
		}
		options = append(options, xpdf.NativeOption{Name: name, Value: value})
	}
	return options, nil
}

// formatError renders tool errors with the details a caller needs to act
// on them.
func formatError(err error) string {
	var xerr *xpdf.Error
	if !errors.As(err, &xerr) {
		return err.Error()
	}

	text := fmt.Sprintf("%s error: %s", xerr.Kind, xerr.Message)
	if xerr.Kind == xpdf.KindExecution {
		text += fmt.Sprintf(" (exit code %d)", xerr.ExitCode)
	}
	if stderr := strings.TrimSpace(xerr.ErrorOutput); stderr != "" {
		text += "\n" + stderr
	}
	return text
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func boolArg(args map[string]any, key string) bool {
	v, ok := args[key].(bool)
	return ok && v
}

// pageArgs reads the optional page bounds. JSON numbers arrive as float64.
func pageArgs(args map[string]any) (start, stop *int, err error) {
	if start, err = intArg(args, "page_start"); err != nil {
		return nil, nil, err
	}
	if stop, err = intArg(args, "page_stop"); err != nil {
		return nil, nil, err
	}
	return start, stop, nil
}

func intArg(args map[string]any, key string) (*int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return nil, fmt.Errorf("%s must be a whole number", key)
		}
		return xpdf.Page(int(v)), nil
	case int:
		return xpdf.Page(v), nil
	default:
		return nil, fmt.Errorf("%s must be a number", key)
	}
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	s.logger.Debugf("Starting xpdf MCP server in stdio mode")

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode serves MCP over SSE until ctx is done.
func (s *Server) runServerMode(ctx context.Context) error {
	sseServer := server.NewSSEServer(s.mcpServer)
	s.logger.Infof("Starting xpdf MCP server on %s", s.config.Address())

	errCh := make(chan error, 1)
	go func() {
		errCh <- sseServer.Start(s.config.Address())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve sse: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down sse server: %w", err)
		}
		return nil
	}
}
