package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	var input, output, configPath string
	var watch bool

	flag.StringVar(&input, "i", "", "Input image (.qoi, .png, .jpg, .gif, .bmp, .tiff)")
	flag.StringVar(&input, "input", "", "Input image (.qoi, .png, .jpg, .gif, .bmp, .tiff)")
	flag.StringVar(&output, "o", "", "Output file (defaults to the input name with the converted extension)")
	flag.StringVar(&output, "output", "", "Output file (defaults to the input name with the converted extension)")
	flag.StringVar(&configPath, "config", "config.toml", "Path to config file (TOML)")
	flag.BoolVar(&watch, "watch", false, "Run as daemon, watching directories from config [watch] section")
	flag.Parse()

	if watch {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		if len(cfg.Watch.Inputs) == 0 || cfg.Watch.Location == "" {
			fmt.Fprintln(os.Stderr, "Error: [watch] requires inputs and location in config for --watch mode")
			os.Exit(1)
		}
		if err := runWatchMode(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if input == "" {
		fmt.Fprintln(os.Stderr, "Usage: qoikit -i <input> [-o <output>]")
		fmt.Fprintln(os.Stderr, "       qoikit --watch [--config config.toml]")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if output == "" {
		output = defaultOutput(input)
	}

	if err := convertFile(input, output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Converted %s → %s\n", input, output)
}
