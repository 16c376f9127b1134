// shopctl — консольные операции магазина: миграции схемы и отчёты.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/shopcrm/internal/app"
	"github.com/vladislavdragonenkov/shopcrm/internal/domain"
	"github.com/vladislavdragonenkov/shopcrm/internal/service/reports"
	"github.com/vladislavdragonenkov/shopcrm/internal/storage/postgres"
	"github.com/vladislavdragonenkov/shopcrm/internal/version"
)

const migrateTimeout = 30 * time.Second

func main() {
	log.SetLevel(log.WarnLevel)
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "shopctl",
		Short:         "Консольные операции магазина: миграции и отчёты",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file (optional)")

	root.AddCommand(
		newMigrateCmd(&cfgFile),
		newOrdersCmd(&cfgFile),
		newTopClientsCmd(&cfgFile),
		newCitiesCmd(&cfgFile),
		newVersionCmd(),
	)
	return root
}

// loadDeps собирает зависимости для отчётных команд.
// Kafka в CLI не используется.
func loadDeps(cfgFile string) (*app.Dependencies, error) {
	cfg, err := app.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg.KafkaBrokers = nil

	return app.NewDependencies(context.Background(), cfg, log.WithField("component", "shopctl"))
}

// openPostgres открывает postgres хранилище для миграций.
func openPostgres(ctx context.Context, cfgFile string) (*postgres.Store, error) {
	cfg, err := app.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if cfg.StorageDriver != app.DriverPostgres {
		return nil, fmt.Errorf("migrations require postgres driver, configured driver is %q", cfg.StorageDriver)
	}
	return postgres.Open(ctx, cfg.PostgresDSN)
}

func newMigrateCmd(cfgFile *string) *cobra.Command {
	var steps int

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Управление миграциями схемы postgres",
	}
	migrate.PersistentFlags().IntVar(&steps, "steps", 0, "number of migrations to apply/rollback (0=all for up, 1 for down)")

	up := &cobra.Command{
		Use:   "up",
		Short: "Применить миграции",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPostgres(*cfgFile, func(ctx context.Context, store *postgres.Store) error {
				if err := store.MigrateUp(ctx, steps); err != nil {
					return fmt.Errorf("migrate up: %w", err)
				}
				return printMigrationStatus(ctx, cmd.OutOrStdout(), store, "migrate up ok")
			})
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Откатить миграции",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPostgres(*cfgFile, func(ctx context.Context, store *postgres.Store) error {
				n := steps
				if n <= 0 {
					n = 1
				}
				if err := store.MigrateDown(ctx, n); err != nil {
					return fmt.Errorf("migrate down: %w", err)
				}
				return printMigrationStatus(ctx, cmd.OutOrStdout(), store, "migrate down ok")
			})
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Показать состояние миграций",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPostgres(*cfgFile, func(ctx context.Context, store *postgres.Store) error {
				return printMigrationStatus(ctx, cmd.OutOrStdout(), store, "migration status")
			})
		},
	}

	migrate.AddCommand(up, down, status)
	return migrate
}

func withPostgres(cfgFile string, fn func(ctx context.Context, store *postgres.Store) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	store, err := openPostgres(ctx, cfgFile)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(ctx, store)
}

func printMigrationStatus(ctx context.Context, w io.Writer, store *postgres.Store, prefix string) error {
	version, count, err := store.MigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	fmt.Fprintf(w, "%s: version=%d applied=%d\n", prefix, version, count)
	return nil
}

func newOrdersCmd(cfgFile *string) *cobra.Command {
	var (
		sortBy     string
		descending bool
	)

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Отчёт по заказам с суммами",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := loadDeps(*cfgFile)
			if err != nil {
				return err
			}
			defer deps.Close()

			rows, err := deps.ReportEngine.OrderTotals()
			if err != nil {
				return err
			}
			if sortBy != "" {
				rows = reports.SortOrders(rows, reports.ParseColumn(sortBy), descending)
			}
			renderOrders(cmd.OutOrStdout(), rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort column: client|items|total")
	cmd.Flags().BoolVar(&descending, "desc", false, "sort in descending order")
	return cmd
}

func newTopClientsCmd(cfgFile *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top-clients",
		Short: "Клиенты с наибольшими суммарными тратами",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := loadDeps(*cfgFile)
			if err != nil {
				return err
			}
			defer deps.Close()

			top, err := deps.ReportEngine.TopClientsBySpend(limit)
			if err != nil {
				return err
			}
			renderTopClients(cmd.OutOrStdout(), top)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "n", reports.DefaultTopClients, "number of clients to show")
	return cmd
}

func newCitiesCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "Распределение клиентов по городам",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := loadDeps(*cfgFile)
			if err != nil {
				return err
			}
			defer deps.Close()

			cities, err := deps.ReportEngine.ClientsByCity()
			if err != nil {
				return err
			}
			renderCities(cmd.OutOrStdout(), cities)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Версия утилиты",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func renderOrders(w io.Writer, rows []reports.OrderRow) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLIENT\tITEMS\tTOTAL")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Client, row.Items, row.Total)
	}
	_ = tw.Flush()
}

func renderTopClients(w io.Writer, top []domain.ClientSpend) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLIENT\tTOTAL")
	for _, row := range top {
		fmt.Fprintf(tw, "%s\t%s\n", row.ClientName, reports.FormatTotal(row.Total))
	}
	_ = tw.Flush()
}

func renderCities(w io.Writer, cities []reports.CityCount) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CITY\tCLIENTS")
	for _, row := range cities {
		fmt.Fprintf(tw, "%s\t%d\n", row.City, row.Count)
	}
	_ = tw.Flush()
}
