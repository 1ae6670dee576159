package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skypix/srcmeas/app"
	"github.com/skypix/srcmeas/config"
	"github.com/skypix/srcmeas/core/image"
	"github.com/skypix/srcmeas/infra/logger"
)

var (
	measureImage string
	measureField string
	measureX     float64
	measureY     float64
	measureID    int
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Measure one source on a raster cutout",
	RunE:  runMeasure,
}

func init() {
	measureCmd.Flags().StringVar(&measureImage, "image", "", "raster cutout file")
	measureCmd.Flags().StringVar(&measureField, "field", "adhoc", "field name recorded on the run")
	measureCmd.Flags().Float64Var(&measureX, "x", 0, "starting x position")
	measureCmd.Flags().Float64Var(&measureY, "y", 0, "starting y position")
	measureCmd.Flags().IntVar(&measureID, "id", 0, "source identifier")
	rootCmd.AddCommand(measureCmd)
}

func runMeasure(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if measureImage == "" {
		return fmt.Errorf("--image is required")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	img, err := image.ReadRasterFile(measureImage)
	if err != nil {
		return err
	}

	svc, err := app.New(cfg, measureField)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("measure-command").Errorf("service close: %v", err)
		}
	}()
	svc.Start(ctx)

	rec, err := svc.MeasureSource(img, measureID, measureX, measureY)
	if err != nil {
		return fmt.Errorf("measure source %d: %w", measureID, err)
	}
	svc.RecordRunSize(1)

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
