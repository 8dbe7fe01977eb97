package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"survival/app"
	"survival/config"
	"survival/plot"
)

func main() {
	part1 := flag.String("part1", "kLambdaFromXi", "first species to display (kLambdaFromXi, kLambdaFromOmega, kLambda, kK0s, kXi, kOmega, kD0, kDplus, kDSplus, kLambdaCplus)")
	part2 := flag.String("part2", "kLambdaFromOmega", "second species to overlay, empty for none")
	write := flag.Int("write", 0, "0 = display only, 1 = vector image (svg), 2 = raster image (png)")
	cfgFile := flag.String("config", "", "path to a gcfg settings file")
	debug := flag.Bool("debug", false, "log sampling progress")
	flag.Parse()

	var zapLogger *zap.Logger
	var err error
	if *debug {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "can't initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()
	log := zapLogger.Sugar()

	cfg := config.Default()
	if *cfgFile != "" {
		cfg, err = config.Read(*cfgFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	status := app.Run(context.Background(), app.Options{
		Species1: *part1,
		Species2: *part2,
		Mode:     plot.Format(*write),
		Config:   cfg,
		Logger:   log,
	})
	if status != app.StatusOK {
		log.Errorw("run failed", "status", status)
		zapLogger.Sync()
		os.Exit(1)
	}
}
