package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"migration-advisor/src/controller"
	"migration-advisor/src/model"
	"migration-advisor/src/util"
)

func (h *Handler) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve assessments over the Model Context Protocol",
		Long:  "Exposes the assessment pipeline as MCP tools over stdio so agents can query coupling structure directly",
		RunE: func(cmd *cobra.Command, args []string) error {
			return h.serveMCP()
		},
	}
}

func (h *Handler) serveMCP() error {
	mcpServer := server.NewMCPServer(
		h.cfg.Tool.Name,
		h.cfg.Tool.Version,
		server.WithToolCapabilities(false),
	)

	assessTool := mcp.NewTool("assess_codebase",
		mcp.WithDescription("Run a full decomposition readiness assessment over a Java codebase"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Codebase root directory"),
		),
		mcp.WithString("format",
			mcp.Description("Report format: json or markdown (default: json)"),
		),
	)
	mcpServer.AddTool(assessTool, h.assessCodebaseHandler)

	metricsTool := mcp.NewTool("coupling_metrics",
		mcp.WithDescription("Compute afferent/efferent coupling, instability, abstractness and distance per component"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Codebase root directory"),
		),
		mcp.WithString("granularity",
			mcp.Description("Metric granularity: type or package (default: type)"),
		),
		mcp.WithString("component",
			mcp.Description("Restrict output to a single component by qualified name"),
		),
	)
	mcpServer.AddTool(metricsTool, h.couplingMetricsHandler)

	cyclesTool := mcp.NewTool("dependency_cycles",
		mcp.WithDescription("List circular dependency chains between types"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Codebase root directory"),
		),
	)
	mcpServer.AddTool(cyclesTool, h.dependencyCyclesHandler)

	depsTool := mcp.NewTool("type_dependencies",
		mcp.WithDescription("Show the dependencies and dependents of one type"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Codebase root directory"),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Fully qualified type name"),
		),
	)
	mcpServer.AddTool(depsTool, h.typeDependenciesHandler)

	util.Info("Serving MCP tools on stdio")
	return server.ServeStdio(mcpServer)
}

// assessFor runs the pipeline for an MCP tool call
func (h *Handler) assessFor(ctx context.Context, path string) (*model.AssessmentReport, error) {
	assessCtrl := controller.NewAssessmentController(h.cfg)
	return assessCtrl.Assess(ctx, controller.AssessRequest{RootPath: path})
}

func (h *Handler) assessCodebaseHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format := request.GetString("format", "json")

	report, err := h.assessFor(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("assessment failed: %v", err)), nil
	}

	output, err := controller.NewReportController(h.cfg).GenerateToString(report, format)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(output), nil
}

func (h *Handler) couplingMetricsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	granularity := request.GetString("granularity", "type")
	component := request.GetString("component", "")

	report, err := h.assessFor(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("assessment failed: %v", err)), nil
	}

	var records []model.CouplingRecord
	switch granularity {
	case "type":
		records = report.TypeRecords
	case "package":
		records = report.PackageRecords
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown granularity: %s", granularity)), nil
	}

	if component != "" {
		var filtered []model.CouplingRecord
		for _, r := range records {
			if r.Name == component {
				filtered = append(filtered, r)
			}
		}
		if len(filtered) == 0 {
			return mcp.NewToolResultError(fmt.Sprintf("component not found: %s", component)), nil
		}
		records = filtered
	}

	jsonData, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal records: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *Handler) dependencyCyclesHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := h.assessFor(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("assessment failed: %v", err)), nil
	}

	jsonData, err := json.MarshalIndent(report.Cycles, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal cycles: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *Handler) typeDependenciesHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	typeName, err := request.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := h.assessFor(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("assessment failed: %v", err)), nil
	}

	dependencies, ok := report.TypeAdjacency[typeName]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("type not found: %s", typeName)), nil
	}

	var dependents []string
	for source, targets := range report.TypeAdjacency {
		for _, target := range targets {
			if target == typeName {
				dependents = append(dependents, source)
				break
			}
		}
	}
	sort.Strings(dependents)

	result := struct {
		Type         string   `json:"type"`
		Dependencies []string `json:"dependencies"`
		Dependents   []string `json:"dependents"`
	}{
		Type:         typeName,
		Dependencies: dependencies,
		Dependents:   dependents,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
