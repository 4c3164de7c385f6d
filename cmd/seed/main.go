package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"session-booking/cmd/bootstrap"
	"session-booking/internal/seed"
	"session-booking/internal/usecase/commands"
	"session-booking/internal/usecase/shared"

	"github.com/spf13/pflag"
	"go.uber.org/fx"
)

type options struct {
	file        string
	horizonDays int
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	fs.StringVarP(&opts.file, "file", "f", "seed.yaml", "YAML fixture with restaurants and templates")
	fs.IntVarP(&opts.horizonDays, "generate-days", "g", 0, "generate session instances for this many days after seeding")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.horizonDays < 0 {
		return options{}, errors.New("--generate-days must not be negative")
	}
	return opts, nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	fixture, err := seed.LoadFile(opts.file)
	if err != nil {
		slog.Error("Failed to load fixture", "error", err)
		return 1
	}

	var seeder *seed.Seeder
	app := fx.New(
		bootstrap.CoreModule,
		fx.NopLogger,
		fx.Provide(func(uow shared.UnitOfWork, r commands.RestaurantCommands, s commands.ScheduleCommands) *seed.Seeder {
			return seed.NewSeeder(uow, r, s)
		}),
		fx.Populate(&seeder),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		slog.Error("Failed to start seed", "error", err)
		return 1
	}
	defer func() {
		if err := app.Stop(ctx); err != nil {
			slog.Error("Failed to stop seed", "error", err)
		}
	}()

	res, err := seeder.Apply(ctx, fixture, opts.horizonDays)
	if err != nil {
		slog.Error("Seed failed", "error", err)
		return 1
	}
	slog.Info("Seed finished",
		"restaurants_created", res.RestaurantsCreated,
		"restaurants_skipped", res.RestaurantsSkipped,
		"templates_created", res.TemplatesCreated,
		"instances_generated", res.InstancesGenerated,
	)
	return 0
}
