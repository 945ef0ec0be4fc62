// Command shapeforge nests 2D shapes onto a stone slab and exports the
// resulting layout. Shapes come from a project file, a DXF drawing or a
// CSV/Excel cut list; results go out as DXF, SVG, PDF or QR labels.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/engine"
	"github.com/cssftj2-sketch/shapeforge-dxf/internal/export"
	"github.com/cssftj2-sketch/shapeforge-dxf/internal/importer"
	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
	"github.com/cssftj2-sketch/shapeforge-dxf/internal/project"
)

func main() {
	var (
		projectPath = flag.String("project", "", "load shapes and settings from a project file")
		dxfPath     = flag.String("dxf", "", "import shapes (and slab boundary) from a DXF file")
		csvPath     = flag.String("csv", "", "import a shape list from a CSV file")
		xlsxPath    = flag.String("xlsx", "", "import a shape list from an Excel file")
		slabFlag    = flag.String("slab", "", "slab size in cm, e.g. 250x120 (overrides imported slab)")
		spacing     = flag.Float64("spacing", 0, "minimum spacing between shapes in cm (0 = default)")
		mode        = flag.String("mode", "optimize", "nesting mode: arrange (row layout) or optimize (strategy search)")
		compare     = flag.Bool("compare", false, "compare spacing scenarios instead of a single run")
		outDXF      = flag.String("out-dxf", "", "write the nested layout as DXF")
		outSVG      = flag.String("out-svg", "", "write the nested layout as SVG")
		outPDF      = flag.String("out-pdf", "", "write a PDF shop drawing")
		outLabels   = flag.String("out-labels", "", "write a PDF of QR piece labels")
		savePath    = flag.String("save", "", "save the project (with result) to this path")
		quiet       = flag.Bool("quiet", false, "suppress progress output")
	)
	flag.Parse()

	if err := run(config{
		projectPath: *projectPath,
		dxfPath:     *dxfPath,
		csvPath:     *csvPath,
		xlsxPath:    *xlsxPath,
		slabFlag:    *slabFlag,
		spacing:     *spacing,
		mode:        *mode,
		compare:     *compare,
		outDXF:      *outDXF,
		outSVG:      *outSVG,
		outPDF:      *outPDF,
		outLabels:   *outLabels,
		savePath:    *savePath,
		quiet:       *quiet,
	}); err != nil {
		log.Fatal(err)
	}
}

type config struct {
	projectPath, dxfPath, csvPath, xlsxPath string
	slabFlag                                string
	spacing                                 float64
	mode                                    string
	compare                                 bool
	outDXF, outSVG, outPDF, outLabels       string
	savePath                                string
	quiet                                   bool
}

func run(cfg config) error {
	proj, err := loadProject(cfg)
	if err != nil {
		return err
	}

	if cfg.slabFlag != "" {
		slab, err := parseSlab(cfg.slabFlag)
		if err != nil {
			return err
		}
		proj.Slab = slab
	}
	if cfg.spacing > 0 {
		proj.Settings.Spacing = cfg.spacing
	}

	if len(proj.Shapes) == 0 {
		return fmt.Errorf("no shapes to nest; provide -project, -dxf, -csv or -xlsx")
	}

	if !cfg.quiet {
		fmt.Printf("Nesting %d shapes on a %.0fx%.0f cm slab (spacing %.1f cm)\n",
			len(proj.Shapes), proj.Slab.Width, proj.Slab.Height, proj.Settings.Spacing)
	}

	if cfg.compare {
		return runCompare(proj)
	}

	result, err := nest(proj, cfg)
	if err != nil {
		return err
	}
	proj.Result = &result

	printResult(result)

	if cfg.outDXF != "" {
		if err := export.ExportDXF(cfg.outDXF, result.Layout); err != nil {
			return fmt.Errorf("DXF export: %w", err)
		}
	}
	if cfg.outSVG != "" {
		if err := export.ExportSVG(cfg.outSVG, result.Layout); err != nil {
			return fmt.Errorf("SVG export: %w", err)
		}
	}
	if cfg.outPDF != "" {
		if err := export.ExportPDF(cfg.outPDF, result, proj.Settings); err != nil {
			return fmt.Errorf("PDF export: %w", err)
		}
	}
	if cfg.outLabels != "" {
		if err := export.ExportLabels(cfg.outLabels, result.Layout); err != nil {
			return fmt.Errorf("label export: %w", err)
		}
	}
	if cfg.savePath != "" {
		if err := project.Save(cfg.savePath, proj); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		rememberRecent(cfg.savePath)
	}
	return nil
}

// loadProject assembles the working project from whichever input was
// given, seeded with the user's saved defaults.
func loadProject(cfg config) (model.Project, error) {
	proj := model.NewProject()
	if path, err := project.DefaultConfigPath(); err == nil {
		if appCfg, err := project.LoadAppConfig(path); err == nil {
			appCfg.ApplyToProject(&proj)
		}
	}

	switch {
	case cfg.projectPath != "":
		p, err := project.Load(cfg.projectPath)
		if err != nil {
			return model.Project{}, err
		}
		rememberRecent(cfg.projectPath)
		return p, nil

	case cfg.dxfPath != "":
		res := importer.ImportDXF(cfg.dxfPath)
		reportImport(res, cfg.quiet)
		if len(res.Shapes) == 0 {
			return model.Project{}, fmt.Errorf("no shapes imported from %s", cfg.dxfPath)
		}
		proj.Shapes = res.Shapes
		if res.Slab != nil {
			proj.Slab = *res.Slab
		}

	case cfg.csvPath != "":
		res := importer.ImportCSV(cfg.csvPath)
		reportImport(res, cfg.quiet)
		if len(res.Shapes) == 0 {
			return model.Project{}, fmt.Errorf("no shapes imported from %s", cfg.csvPath)
		}
		proj.Shapes = res.Shapes

	case cfg.xlsxPath != "":
		res := importer.ImportExcel(cfg.xlsxPath)
		reportImport(res, cfg.quiet)
		if len(res.Shapes) == 0 {
			return model.Project{}, fmt.Errorf("no shapes imported from %s", cfg.xlsxPath)
		}
		proj.Shapes = res.Shapes
	}

	return proj, nil
}

func nest(proj model.Project, cfg config) (model.NestResult, error) {
	switch cfg.mode {
	case "arrange":
		placed := engine.Arrange(proj.Shapes, proj.Settings.Spacing, proj.Slab)
		layout := model.Layout{Slab: proj.Slab, Shapes: placed}
		return model.NestResult{
			Layout:     layout,
			Efficiency: layout.Efficiency(),
			InputCount: len(proj.Shapes),
		}, nil

	case "optimize":
		opt := engine.New(proj.Settings)
		var onProgress engine.ProgressFunc
		if !cfg.quiet {
			onProgress = func(percent float64, best model.NestResult) {
				fmt.Printf("\r  searching... %3.0f%% (best: %d placed, %.1f%%)",
					percent, best.PlacedCount(), best.Efficiency)
			}
		}
		result := opt.Optimize(proj.Shapes, proj.Slab, onProgress)
		if !cfg.quiet {
			fmt.Println()
		}
		return result, nil

	default:
		return model.NestResult{}, fmt.Errorf("unknown mode %q (want arrange or optimize)", cfg.mode)
	}
}

func runCompare(proj model.Project) error {
	scenarios := engine.BuildDefaultScenarios(proj.Settings)
	results := engine.CompareScenarios(scenarios, proj.Shapes, proj.Slab)

	fmt.Printf("%-28s %8s %8s %10s\n", "Scenario", "Placed", "Waste", "Strategy")
	for _, r := range results {
		fmt.Printf("%-28s %5d/%-2d %7.1f%% %10s\n",
			r.Scenario.Name, r.Result.PlacedCount(), r.Result.InputCount,
			r.WastePercent, r.Result.Strategy)
	}
	return nil
}

func printResult(result model.NestResult) {
	fmt.Printf("Placed %d of %d shapes, efficiency %.1f%%",
		result.PlacedCount(), result.InputCount, result.Efficiency)
	if result.Strategy != "" {
		fmt.Printf(" (strategy %s", result.Strategy)
		if result.Rotation {
			fmt.Print(" + rotation")
		}
		fmt.Print(")")
	}
	fmt.Println()

	if result.UnplacedCount() > 0 {
		fmt.Printf("WARNING: %d shape(s) did not fit on the slab\n", result.UnplacedCount())
	}

	offcuts := model.DetectOffcuts(result.Layout)
	if len(offcuts) > 0 {
		fmt.Printf("Usable offcuts: %d (largest %.0fx%.0f cm)\n",
			len(offcuts), offcuts[0].Width, offcuts[0].Height)
	}
}

func reportImport(res importer.ImportResult, quiet bool) {
	if !quiet {
		for _, w := range res.Warnings {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}
	}
	for _, e := range res.Errors {
		fmt.Fprintln(os.Stderr, "error:", e)
	}
}

// rememberRecent records a project path in the app config, best effort.
func rememberRecent(path string) {
	cfgPath, err := project.DefaultConfigPath()
	if err != nil {
		return
	}
	appCfg, err := project.LoadAppConfig(cfgPath)
	if err != nil {
		return
	}
	appCfg.AddRecentProject(path)
	_ = project.SaveAppConfig(cfgPath, appCfg)
}

// parseSlab parses "WxH" in cm.
func parseSlab(s string) (model.Slab, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return model.Slab{}, fmt.Errorf("invalid slab %q, want WxH (cm)", s)
	}
	w, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	h, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return model.Slab{}, fmt.Errorf("invalid slab %q, want WxH (cm)", s)
	}
	return model.NewSlab(w, h), nil
}
