package utils

import (
	"flag"
	"fmt"
	"strings"
)

type options struct {
	nodesep      float64
	outputFormat string
	outputFile   string
	configPath   string
	task         string
	jsonReport   bool
	noColorize   bool
	verbose      bool
	visualize    bool
}

const (
	_ANALYZE = iota
	_CFG_TO_DOT
	_DUMP_AST
)

var task = []struct{ flag, explanation string }{{
	"analyze",
	"Run the interval analysis and check every assertion in the program",
}, {
	"cfg-to-dot",
	"Create a graph for the location graph derived from the program",
}, {
	"dump-ast",
	"Print the abstract syntax tree of the loaded program",
}}

var opts = &options{}

type optInterface struct{}

type taskInterface struct{}

func Opts() optInterface {
	return optInterface{}
}

func (optInterface) NoColorize() bool {
	return opts.noColorize
}

func (optInterface) Nodesep() float64 {
	return opts.nodesep
}

func (optInterface) OutputFormat() string {
	return opts.outputFormat
}

func (optInterface) OutputFile() string {
	return opts.outputFile
}

func (optInterface) ConfigPath() string {
	return opts.configPath
}

func (optInterface) JSONReport() bool {
	return opts.jsonReport
}

func (optInterface) Verbose() bool {
	return opts.verbose
}

func (optInterface) Visualize() bool {
	return opts.visualize
}

func (optInterface) Task() taskInterface {
	return taskInterface{}
}

func (taskInterface) IsAnalyze() bool {
	return opts.task == task[_ANALYZE].flag
}

func (taskInterface) IsCfgToDot() bool {
	return opts.task == task[_CFG_TO_DOT].flag
}

func (taskInterface) IsDumpAst() bool {
	return opts.task == task[_DUMP_AST].flag
}

// CanColorize wraps a color.SprintFunc such that colorization is skipped
// when disabled on the command line.
func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	if opts.noColorize {
		return func(is ...interface{}) string {
			return fmt.Sprintf(strings.Repeat("%s", len(is)), is...)
		}
	}
	return col
}

func init() {
	taskFlag := "\n"
	for _, task := range task {
		taskFlag += task.flag + " -- " + task.explanation + "\n"
	}
	taskFlag += "\n"

	flag.Float64Var(&(opts.nodesep), "nodesep", 0.35, "Minimum space between two adjacent nodes in the same rank (for taller output).")
	flag.StringVar(&(opts.outputFormat), "format", "svg", "output file format [svg | png | jpg | ...]")
	flag.StringVar(&(opts.outputFile), "out", "", "output file name for graph rendering (without extension)")
	flag.StringVar(&(opts.configPath), "config", "", "path to a TOML analyzer configuration file")
	flag.StringVar(&(opts.task), "task", task[_ANALYZE].flag, "Set the task to do during execution. Options:"+taskFlag)
	flag.BoolVar(&(opts.jsonReport), "json", false, "Emit the analysis report as JSON records instead of text")
	flag.BoolVar(&(opts.noColorize), "no-colorize", false, "Disable pretty printer colorization")
	flag.BoolVar(&(opts.verbose), "verbose", false, "Verbose log output")
	flag.BoolVar(&(opts.visualize), "visualize", false, "Render the location graph after analysis")
}

// ParseArgs parses command line flags and returns the positional arguments.
func ParseArgs() []string {
	flag.Parse()
	return flag.Args()
}
