package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/Satria0ibnu/deftection-sub000/internal/annotate"
	"github.com/Satria0ibnu/deftection-sub000/internal/config"
	"github.com/Satria0ibnu/deftection-sub000/internal/defect"
	"github.com/Satria0ibnu/deftection-sub000/internal/logging"
	"github.com/Satria0ibnu/deftection-sub000/internal/maskio"
	"github.com/Satria0ibnu/deftection-sub000/internal/report"
	"github.com/Satria0ibnu/deftection-sub000/internal/store"
	"github.com/Satria0ibnu/deftection-sub000/internal/taxonomy"
)

type analyzeFlags struct {
	confidencePath  string
	photoPath       string
	correctionsPath string
	annotatePath    string
	jsonOut         bool
	save            bool
}

func newAnalyzeCmd(cfg func() *config.Config) *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze <mask>",
		Short: "Analyze a segmentation mask and report the defect verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, cfg(), args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.confidencePath, "confidence", "", "confidence map file (image or raw .bin); defaults to full confidence")
	cmd.Flags().StringVar(&flags.photoPath, "photo", "", "product photo to annotate")
	cmd.Flags().StringVar(&flags.correctionsPath, "corrections", "", "JSON file with correction directives")
	cmd.Flags().StringVar(&flags.annotatePath, "annotate", "", "write annotated PNG to this path")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "print the full JSON report instead of a summary")
	cmd.Flags().BoolVar(&flags.save, "save", false, "persist the scan to the database")
	return cmd
}

func runAnalyze(cmd *cobra.Command, cfg *config.Config, maskPath string, flags *analyzeFlags) error {
	log := logging.Component("cli")

	engine, err := defect.NewEngine(taxonomy.Default(), cfg.EngineSettings())
	if err != nil {
		return err
	}

	mask, err := maskio.LoadMask(maskPath)
	if err != nil {
		return err
	}

	conf, err := loadConfidence(flags.confidencePath, mask)
	if err != nil {
		return err
	}

	res, err := engine.Analyze(mask, conf)
	if err != nil {
		return err
	}

	if flags.correctionsPath != "" {
		directives, err := loadCorrections(flags.correctionsPath)
		if err != nil {
			return err
		}
		res = engine.ApplyCorrections(res, directives)
	}

	if flags.annotatePath != "" {
		var photo image.Image
		if flags.photoPath != "" {
			if photo, err = maskio.LoadImage(flags.photoPath); err != nil {
				return err
			}
		}
		if err := writePNG(flags.annotatePath, annotate.Overlay(photo, res, annotate.DefaultOptions())); err != nil {
			return err
		}
		log.Info("annotated image written", "path", flags.annotatePath)
	}

	if flags.save {
		st, err := store.OpenSql(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		id, err := st.SaveScan(store.NewScan(maskPath, res))
		if err != nil {
			return err
		}
		log.Info("scan saved", "id", id)
	}

	rep := report.Build(res)
	if flags.jsonOut {
		data, err := rep.JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), rep.Summary())
	return nil
}

// loadConfidence reads the confidence map, or synthesizes a fully confident
// one when no file was given.
func loadConfidence(path string, mask *defect.Mask) (*defect.ConfidenceMap, error) {
	if path != "" {
		return maskio.LoadConfidence(path, mask.Width, mask.Height)
	}
	values := make([]float32, mask.Width*mask.Height)
	for i := range values {
		values[i] = 1
	}
	return defect.NewConfidenceMap(mask.Width, mask.Height, values)
}

func loadCorrections(path string) ([]defect.CorrectionDirective, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corrections: %w", err)
	}
	var directives []defect.CorrectionDirective
	if err := json.Unmarshal(data, &directives); err != nil {
		return nil, fmt.Errorf("parse corrections: %w", err)
	}
	return directives, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
