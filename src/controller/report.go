package controller

import (
	"os"
	"path/filepath"

	"migration-advisor/src/config"
	"migration-advisor/src/model"
	"migration-advisor/src/service/report"
	"migration-advisor/src/util"
)

// ReportController handles report generation
type ReportController struct {
	cfg *config.Config
}

// NewReportController creates a new report controller
func NewReportController(cfg *config.Config) *ReportController {
	return &ReportController{cfg: cfg}
}

// GenerateReports writes reports in all configured formats and returns the
// paths written.
func (c *ReportController) GenerateReports(assessment *model.AssessmentReport) ([]string, error) {
	util.Debug("Generating reports for %d formats: %v", len(c.cfg.Output.Formats), c.cfg.Output.Formats)
	generator := report.NewGenerator(c.cfg.Output)
	var outputPaths []string

	for _, format := range c.cfg.Output.Formats {
		util.Debug("Generating %s report", format)
		output, err := generator.Generate(assessment, format)
		if err != nil {
			util.Error("Failed to generate %s report: %v", format, err)
			return nil, err
		}

		outputPath := c.getOutputPath(assessment.RootPath, format)

		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			util.Error("Failed to create output directory: %v", err)
			return nil, err
		}

		if err := os.WriteFile(outputPath, []byte(output), 0644); err != nil {
			util.Error("Failed to write report to %s: %v", outputPath, err)
			return nil, err
		}

		util.Info("Report written: %s", outputPath)
		outputPaths = append(outputPaths, outputPath)
	}

	return outputPaths, nil
}

// GenerateToString renders a single report format to a string
func (c *ReportController) GenerateToString(assessment *model.AssessmentReport, format string) (string, error) {
	generator := report.NewGenerator(c.cfg.Output)
	return generator.Generate(assessment, format)
}

func (c *ReportController) getOutputPath(rootPath, format string) string {
	filename := filepath.Base(rootPath) + "-assessment." + report.Extension(format)
	return filepath.Join(c.cfg.Output.OutputDir, filename)
}
