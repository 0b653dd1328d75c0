package main

import (
	"fmt"
	"log"
	"os"

	"github.com/abs-int/iva/analysis/absint"
	"github.com/abs-int/iva/analysis/cfg"
	"github.com/abs-int/iva/config"
	"github.com/abs-int/iva/progutil"
	"github.com/abs-int/iva/utils"
)

var (
	opts = utils.Opts()
	task = opts.Task()
)

func main() {
	args := utils.ParseArgs()
	if len(args) != 1 {
		log.Fatalln("expected exactly one program file argument")
	}

	conf := config.Default()
	if path := opts.ConfigPath(); path != "" {
		var err error
		if conf, err = config.Load(path); err != nil {
			log.Fatalln("failed loading configuration:", err)
		}
	}

	program, err := progutil.LoadProgram(args[0])
	if err != nil {
		log.Println("failed loading program")
		log.Println(err)
		os.Exit(1)
	}

	switch {
	case task.IsDumpAst():
		fmt.Println(program)
		for _, stmt := range program.Children {
			fmt.Println(" ", stmt)
		}

	case task.IsCfgToDot():
		g, err := cfg.Build(program)
		if err != nil {
			log.Fatalln(err)
		}
		img, err := g.Visualize(opts.OutputFile())
		if err != nil {
			log.Fatalln(err)
		}
		fmt.Println("Location graph rendered to", img)

	case task.IsAnalyze():
		utils.VerbosePrint("Building location graph...\n")
		result, err := absint.AnalyzeWithConfig(program, conf)
		if err != nil {
			log.Fatalln(err)
		}
		utils.VerbosePrint("Fixpoint reached after %d iterations\n", result.Report.Iterations)

		if opts.Visualize() {
			if img, err := result.Graph.Visualize(opts.OutputFile()); err == nil {
				fmt.Println("Location graph rendered to", img)
			} else {
				log.Println("visualization failed:", err)
			}
		}

		if opts.JSONReport() {
			err = result.Report.WriteJSON(os.Stdout)
		} else {
			err = result.Report.WriteText(os.Stdout)
		}
		if err != nil {
			log.Fatalln(err)
		}

		if _, _, violated := result.Report.Assertions(); violated > 0 {
			os.Exit(1)
		}

	default:
		log.Fatalln("unknown task")
	}
}
