// Command palletctl is the operator-facing CLI: trigger hits the same
// pipeline.Runner in-process for a forced repack without going through
// HTTP, and replay re-validates a previously emitted artifact against the
// engine's invariants — a regression tool for when weights change.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/fulcrum-wms/packer/internal/archive"
	"github.com/fulcrum-wms/packer/internal/artifact"
	"github.com/fulcrum-wms/packer/internal/config"
	"github.com/fulcrum-wms/packer/internal/db"
	"github.com/fulcrum-wms/packer/internal/logging"
	"github.com/fulcrum-wms/packer/internal/metrics"
	"github.com/fulcrum-wms/packer/internal/packing"
	"github.com/fulcrum-wms/packer/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	app := &cli.App{
		Name:  "palletctl",
		Usage: "operate the pallet packing service out of band",
		Commands: []*cli.Command{
			triggerCommand(),
			replayCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func triggerCommand() *cli.Command {
	return &cli.Command{
		Name:  "trigger",
		Usage: "force a repack for one order, in-process",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "order", Required: true, Usage: "order id to repack"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			sqlxDB, err := db.OpenSQLX(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer sqlxDB.Close()

			gormDB, err := db.OpenGorm(cfg.ArchiveDSN, db.DefaultGormOptions())
			if err != nil {
				return err
			}
			archiveIdx := archive.NewIndex(gormDB)

			reg := prometheus.NewRegistry()
			m := metrics.New(reg)

			runner := pipeline.NewRunner(sqlxDB, archiveIdx, cfg.ArtifactDir, cfg.ResolvedPallet(), cfg.ResolvedWeights(), m, log)

			orderID := c.Int64("order")
			if err := runner.RunOrder(context.Background(), orderID); err != nil {
				return fmt.Errorf("trigger order %d: %w", orderID, err)
			}
			fmt.Printf("order %d packed\n", orderID)
			return nil
		},
	}
}

func replayCommand() *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "re-validate a previously emitted artifact against the engine's invariants",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "artifact", Required: true, Usage: "path to a pallet_instructions_*.json file"},
		},
		Action: func(c *cli.Context) error {
			records, err := artifact.Read(c.String("artifact"))
			if err != nil {
				return err
			}

			violations := validateRecords(records)
			if len(violations) > 0 {
				for _, v := range violations {
					fmt.Fprintln(os.Stderr, v)
				}
				return fmt.Errorf("replay: %d invariant violation(s) found", len(violations))
			}
			fmt.Printf("replay: %d pallet(s) validated, no violations\n", len(records))
			return nil
		},
	}
}

// validateRecords re-checks an artifact's recorded coordinates for a
// non-negative origin (the lower half of P1) and pairwise non-overlap (P2).
// The pallet bounds, support, fragility and upright checks are not made:
// the serialized record shape alone does not carry what they need.
func validateRecords(records []packing.PalletRecord) []string {
	var violations []string
	for _, pallet := range records {
		for i, a := range pallet.Items {
			if a.X < 0 || a.Y < 0 || a.Z < 0 {
				violations = append(violations, fmt.Sprintf("pallet %d item %s: negative origin", pallet.PalletID, a.ID))
			}
			for j, b := range pallet.Items {
				if i == j {
					continue
				}
				if overlap3D(a, b) {
					violations = append(violations, fmt.Sprintf("pallet %d items %s/%s overlap", pallet.PalletID, a.ID, b.ID))
				}
			}
		}
	}
	return violations
}

func overlap3D(a, b packing.PlacedItemRecord) bool {
	return overlap1D(a.X, a.X+a.W, b.X, b.X+b.W) &&
		overlap1D(a.Y, a.Y+a.D, b.Y, b.Y+b.D) &&
		overlap1D(a.Z, a.Z+a.H, b.Z, b.Z+b.H)
}

func overlap1D(aMin, aMax, bMin, bMax int) bool {
	return aMin < bMax && bMin < aMax
}
