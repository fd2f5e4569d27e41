// Command vlint is a static linter for a subset of Verilog. It reads one
// source file, parses it into a single module, runs the fixed check set
// in internal/lint, and prints a violation report.
package main

import (
	"fmt"
	"os"

	"github.com/robert-at-pretension-io/vlint/internal/config"
	"github.com/robert-at-pretension-io/vlint/internal/lexer"
	"github.com/robert-at-pretension-io/vlint/internal/pipeline"
	"github.com/robert-at-pretension-io/vlint/internal/trace"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		runInit()
	case "-h", "--help", "help":
		printUsage()
	case "-c", "--config":
		if len(os.Args) < 4 {
			printUsage()
			os.Exit(1)
		}
		runLintWithConfig(os.Args[2], os.Args[3])
	case "-tokens":
		if len(os.Args) < 3 {
			printUsage()
			os.Exit(1)
		}
		dumpTokens(os.Args[2])
	default:
		runLint(os.Args[1])
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: vlint <verilog_file>
       vlint init
       vlint -c <config_file> <verilog_file>
       vlint -tokens <verilog_file>

Commands:
  init                    Create a vlint.json configuration file
  <verilog_file>          Lint a single Verilog module

Options:
  -c, --config            Specify config file: vlint -c config.json <file>
  -tokens                 Dump the token stream for <file> and exit (debug aid)
  -h, --help              Show this help message

Configuration:
  vlint looks for configuration in:
    1. ./vlint.json
    2. ./.vlint.json
    3. ~/.config/vlint/config.json

  Run 'vlint init' to create a default configuration file.`)
}

func runInit() {
	configPath := "vlint.json"

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file %s already exists. Overwrite? [y/N]: ", configPath)
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return
		}
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created %s\n", configPath)
}

func runLint(path string) {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf("Warning: Could not load config: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}
	lintWithConfig(path, cfg)
}

func runLintWithConfig(configPath, lintPath string) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config %s: %v\n", configPath, err)
		os.Exit(1)
	}
	lintWithConfig(lintPath, cfg)
}

// lintWithConfig runs one lint session over the file at path and exits
// per spec.md §6: 0 on any completed analysis, 1 on a missing/unreadable
// file or a parse failure, 2 if cfg.FailOnViolation is set and the
// report is non-empty.
func lintWithConfig(path string, cfg *config.Config) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rec := trace.New(cfg.TraceFile)
	if err := rec.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open trace file: %v\n", err)
	}
	defer rec.Close()

	res, err := pipeline.RunAndReport(os.Stdout, string(src), rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.FailOnViolation && len(res.Violations) > 0 {
		os.Exit(2)
	}
}

func dumpTokens(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lex := lexer.New(string(src))
	for {
		tok := lex.Next()
		fmt.Printf("%-12s %q\n", tok.Kind.String(), tok.Text)
		if tok.Kind == lexer.End {
			return
		}
	}
}
