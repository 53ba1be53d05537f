// Command godetect runs a detection model over images and either renders
// the results, shows them on screen, or exports labelme annotations.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"gocv.io/x/gocv"

	"github.com/visionml/godetect/inference"
	"github.com/visionml/godetect/labelme"
	"github.com/visionml/godetect/models"
	"github.com/visionml/godetect/util"
	"github.com/visionml/godetect/visualizer"
)

type arguments struct {
	image      string
	config     string
	checkpoint string
	outDir     string
	device     string
	show       bool
	deploy     bool
	scoreThr   float64
	classNames []string
	toLabelme  bool
}

func parseArgs() (*arguments, error) {
	args := &arguments{}
	var classNames string

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"usage: godetect [flags] IMAGE CONFIG CHECKPOINT\n\n"+
				"  IMAGE       image file, directory or URL\n"+
				"  CONFIG      model configuration file (YAML)\n"+
				"  CHECKPOINT  ONNX checkpoint file\n\n")
		flag.PrintDefaults()
	}

	flag.StringVar(&args.outDir, "out-dir", "./output", "Path to output directory")
	flag.StringVar(&args.device, "device", "cpu", "Device used for inference (cpu, cuda[:N], coreml, openvino)")
	flag.BoolVar(&args.show, "show", false, "Show the detection results on screen")
	flag.BoolVar(&args.deploy, "deploy", false, "Switch model to deployment mode")
	flag.Float64Var(&args.scoreThr, "score-thr", 0.3, "Bbox score threshold")
	flag.StringVar(&classNames, "class-name", "", "Comma-separated list; only save those classes if set")
	flag.BoolVar(&args.toLabelme, "to-labelme", false, "Output labelme style label files")
	flag.Parse()

	if flag.NArg() != 3 {
		flag.Usage()
		return nil, fmt.Errorf("expected 3 arguments, got %d", flag.NArg())
	}
	args.image = flag.Arg(0)
	args.config = flag.Arg(1)
	args.checkpoint = flag.Arg(2)

	if classNames != "" {
		for _, name := range strings.Split(classNames, ",") {
			if name = strings.TrimSpace(name); name != "" {
				args.classNames = append(args.classNames, name)
			}
		}
	}

	return args, validateArgs(args)
}

// validateArgs rejects flag combinations before any model work happens.
func validateArgs(args *arguments) error {
	if args.toLabelme && args.show {
		return fmt.Errorf("`--to-labelme` or `--show` only can choose one at the same time")
	}
	if args.scoreThr < 0 || args.scoreThr > 1 {
		return fmt.Errorf("score threshold %v out of range [0, 1]", args.scoreThr)
	}
	return nil
}

func main() {
	args, err := parseArgs()
	if err != nil {
		log.Fatal(err)
	}
	if err := run(args); err != nil {
		log.Fatal(err)
	}
}

func run(args *arguments) error {
	ctx := context.Background()

	cfg, err := models.LoadConfig(args.config)
	if err != nil {
		return err
	}

	// Check the class allow-list before touching the model.
	if err := models.ValidateClassFilter(cfg.Classes, args.classNames); err != nil {
		return err
	}

	detector, err := inference.NewDetector(cfg, args.checkpoint, inference.Options{
		Device: args.device,
		Deploy: args.deploy,
	})
	if err != nil {
		return err
	}
	defer detector.Close()

	if !args.show {
		if err := os.MkdirAll(args.outDir, 0o755); err != nil {
			return err
		}
	}

	files, source, err := util.ListImageFiles(args.image)
	if err != nil {
		return err
	}

	viz := visualizer.New(detector.Classes())
	defer viz.Close()

	bar := progressbar.Default(int64(len(files)), "inference")
	for _, file := range files {
		mat := gocv.IMRead(file, gocv.IMReadColor)
		if mat.Empty() {
			return fmt.Errorf("failed to read image %s", file)
		}

		img, err := mat.ToImage()
		if err != nil {
			mat.Close()
			return err
		}

		results, err := detector.Detect(ctx, img, float32(args.scoreThr))
		if err != nil {
			mat.Close()
			return err
		}

		name := util.OutputName(file, args.image, source)

		switch {
		case args.toLabelme:
			doc := labelme.FromResults(
				filepath.Base(file),
				mat.Cols(), mat.Rows(),
				results, cfg.Classes, args.classNames,
			)
			err = doc.Save(filepath.Join(args.outDir, util.ReplaceExt(name, ".json")))
		case args.show:
			viz.Draw(&mat, results)
			viz.Show(name, mat)
		default:
			viz.Draw(&mat, results)
			err = viz.Save(mat, filepath.Join(args.outDir, name))
		}
		mat.Close()
		if err != nil {
			return err
		}

		_ = bar.Add(1)
	}

	outDir, err := filepath.Abs(args.outDir)
	if err != nil {
		outDir = args.outDir
	}
	switch {
	case args.toLabelme:
		fmt.Printf("\nLabelme format label files had all been saved in %s\n", outDir)
	case !args.show:
		fmt.Printf("\nResults have been saved at %s\n", outDir)
	}

	return nil
}
