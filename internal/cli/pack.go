package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/packlayout/internal/engine"
	"github.com/piwi3910/packlayout/internal/export"
	"github.com/piwi3910/packlayout/internal/model"
	"github.com/piwi3910/packlayout/internal/project"
)

const (
	formatJSON   = "json"   // packing result as JSON
	formatYAML   = "yaml"   // packing result as YAML
	formatPDF    = "pdf"    // layout sheet with summary page
	formatXLSX   = "xlsx"   // workbook with layout, summary and unpacked sheets
	formatLabels = "labels" // QR label sheet (PDF)
	formatDXF    = "dxf"    // container and item outlines
)

var outputFormats = []string{formatJSON, formatYAML, formatPDF, formatXLSX, formatLabels, formatDXF}

// packOpts holds the command-line flags for the pack command.
type packOpts struct {
	algorithm string
	width     float64
	height    float64
	padding   float64
	gap       float64
	sortBy    string
	preset    string
	strict    bool
	output    string
	format    string
	pageSize  string
	saveJob   string
}

func (c *CLI) packCommand() *cobra.Command {
	var opts packOpts

	cmd := &cobra.Command{
		Use:   "pack [file]",
		Short: "Lay out the items of a job, CSV, XLSX or DXF file",
		Long: `Lay out the items of a job, CSV, XLSX or DXF file inside a container.

Flags override the job's own options, which override the config defaults.
Without --output the result is written to stdout as JSON or YAML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPack(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "algorithm: maxrects, treemap, shelf, guillotine, masonry")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "container width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "container height")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "padding subtracted from every container edge")
	cmd.Flags().Float64Var(&opts.gap, "gap", 0, "spacing between items (maxrects)")
	cmd.Flags().StringVar(&opts.sortBy, "sort", "", "placement order: priority (default), area, input")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "container preset (see 'packlayout presets')")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on algorithms without an implementation")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: json, yaml, pdf, xlsx, labels, dxf (default from extension)")
	cmd.Flags().StringVar(&opts.pageSize, "page-size", "", "PDF page size: A4, A3, Letter (default from config)")
	cmd.Flags().StringVar(&opts.saveJob, "save-job", "", "save the job with its result to this file")

	return cmd
}

func (c *CLI) runPack(cmd *cobra.Command, input string, opts packOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	format, err := outputFormat(opts.format, opts.output)
	if err != nil {
		return err
	}

	job, err := c.loadInput(input)
	if err != nil {
		return err
	}
	if err := c.applyPackFlags(cmd, &job, opts); err != nil {
		return err
	}
	cfg.ApplyToJob(&job)

	prog := newProgress(c.Logger)
	eng := c.newEngine()
	var result model.PackingResult
	if opts.strict {
		if result, err = eng.PackStrict(job.Algorithm, job.Items, job.Options); err != nil {
			return err
		}
	} else {
		result = eng.Pack(job.Algorithm, job.Items, job.Options)
	}
	prog.done(fmt.Sprintf("Packed %d items", len(job.Items)))

	report := export.Report{
		Title:   job.Name,
		Items:   job.Items,
		Result:  result,
		Metrics: engine.Evaluate(result),
	}

	if opts.saveJob != "" {
		job.Result = &result
		if err := project.SaveJob(opts.saveJob, job); err != nil {
			return err
		}
		project.AddRecentJob(&cfg, opts.saveJob)
		if err := project.SaveAppConfig(c.configFile(), cfg); err != nil {
			c.Logger.Warn("Could not update recent jobs", "error", err)
		}
	}

	pageSize := opts.pageSize
	if pageSize == "" {
		pageSize = cfg.PageSize
	}
	if err := c.writeReport(report, format, opts.output, pageSize); err != nil {
		return err
	}

	if opts.output != "" {
		c.printPackSummary(report)
		c.printFile(opts.output)
		if opts.saveJob != "" {
			c.printFile(opts.saveJob)
		}
	}
	return nil
}

// applyPackFlags layers the preset and explicitly set flags over the job.
func (c *CLI) applyPackFlags(cmd *cobra.Command, job *model.Job, opts packOpts) error {
	flags := cmd.Flags()

	if opts.preset != "" {
		presets, err := c.loadPresets()
		if err != nil {
			return err
		}
		preset, ok := model.FindPreset(presets, opts.preset)
		if !ok {
			return fmt.Errorf("unknown preset %q", opts.preset)
		}
		preset.ApplyTo(&job.Options)
	}

	if flags.Changed("algorithm") {
		alg, err := model.ParseAlgorithm(opts.algorithm)
		if err != nil {
			return err
		}
		job.Algorithm = alg
	}
	if flags.Changed("sort") {
		s, err := model.ParseSortBy(opts.sortBy)
		if err != nil {
			return err
		}
		job.Options.SortBy = s
	}
	if flags.Changed("width") {
		job.Options.ContainerWidth = opts.width
	}
	if flags.Changed("height") {
		job.Options.ContainerHeight = opts.height
	}
	if flags.Changed("padding") {
		job.Options.Padding = opts.padding
	}
	if flags.Changed("gap") {
		job.Options.Gap = opts.gap
	}
	return nil
}

// outputFormat resolves --format, falling back to the output file extension.
func outputFormat(flag, output string) (string, error) {
	if flag != "" {
		f := strings.ToLower(flag)
		for _, known := range outputFormats {
			if f == known {
				return f, nil
			}
		}
		return "", fmt.Errorf("unknown output format %q (want one of %s)", flag, strings.Join(outputFormats, ", "))
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".pdf":
		return formatPDF, nil
	case ".xlsx":
		return formatXLSX, nil
	case ".dxf":
		return formatDXF, nil
	default:
		return formatJSON, nil
	}
}

func (c *CLI) writeReport(report export.Report, format, output, pageSize string) error {
	switch format {
	case formatJSON, formatYAML:
		pf := project.FormatJSON
		if format == formatYAML {
			pf = project.FormatYAML
		}
		if output == "" {
			data, err := project.Marshal(pf, report.Result)
			if err != nil {
				return err
			}
			c.printf("%s", data)
			if pf == project.FormatJSON {
				c.printf("\n")
			}
			return nil
		}
		if project.FormatForPath(output) != pf {
			c.Logger.Warn("Output extension does not match format", "format", format, "file", output)
		}
		return project.SaveResult(output, report.Result)
	}

	if output == "" {
		return fmt.Errorf("--output is required for %s output", format)
	}
	switch format {
	case formatPDF:
		return export.ExportPDF(output, report, pageSize)
	case formatXLSX:
		return export.ExportXLSX(output, report)
	case formatLabels:
		return export.ExportLabels(output, report)
	case formatDXF:
		return export.ExportDXF(output, report)
	}
	return nil
}

func (c *CLI) printPackSummary(report export.Report) {
	result := report.Result
	c.printSuccess("Packed %d of %d items with %s", len(result.Packed), len(report.Items), result.Algorithm)
	c.printKeyValue("Container", fmt.Sprintf("%.0f x %.0f", result.ContainerSize.Width, result.ContainerSize.Height))
	c.printKeyValue("Efficiency", percent(report.Metrics.Efficiency))
	c.printKeyValue("Wasted", fmt.Sprintf("%.1f", report.Metrics.WastedSpace))
	if len(result.Unpacked) > 0 {
		c.printWarning("%d items did not fit: %s", len(result.Unpacked), strings.Join(result.Unpacked, ", "))
	}
	if result.Cramped {
		c.printWarning("Minimum sizes exceed the container; cells were clipped")
	}
}
