package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/induplan/pathopt/config"
	"github.com/induplan/pathopt/core/logger"
	"github.com/induplan/pathopt/core/lookup"
	"github.com/induplan/pathopt/core/model"
	"github.com/induplan/pathopt/core/optimize"
	"github.com/induplan/pathopt/infra/dataset"
	infralogger "github.com/induplan/pathopt/infra/logger"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Audit the dataset for missing lookup values",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg := infralogger.New("check")

	techs := model.Technologies()
	tables, err := dataset.Load(cfg.Dataset, techs)
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	facilities, err := tables.Facilities()
	if err != nil {
		return fmt.Errorf("facilities: %w", err)
	}

	missing := auditDataset(tables, cfg.Plan, techs, logg)
	if missing > 0 {
		return fmt.Errorf("dataset incomplete: %d missing values", missing)
	}
	logg.Infof("dataset complete: %d facilities, %d years, %d scenarios",
		len(facilities), cfg.Plan.Horizon().Years(), len(cfg.Plan.Scenarios))
	return nil
}

// auditDataset probes every lookup the planner will perform and counts the
// holes instead of stopping at the first one.
func auditDataset(data lookup.Provider, plan optimize.Config, techs model.TechnologySet, logg logger.Logger) int {
	missing := 0
	h := plan.Horizon()
	for y := h.Start; y <= h.End; y++ {
		for _, sc := range plan.Scenarios {
			if _, err := data.CarbonPrice(y, sc); lookup.IsNotFound(err) {
				logg.Warnf("carbon price missing for year %d scenario %s", y, sc)
				missing++
			}
		}
		if _, err := data.AllowanceFraction(y); lookup.IsNotFound(err) {
			logg.Warnf("allowance fraction missing for year %d", y)
			missing++
		}
		for i := 0; i < techs.Len(); i++ {
			tech := model.Technology(i)
			if _, err := data.EmissionIntensity(y, tech); lookup.IsNotFound(err) {
				logg.Warnf("emission intensity missing for year %d tech %s", y, techs.Name(tech))
				missing++
			}
			if _, err := data.AbatementCost(y, tech); lookup.IsNotFound(err) {
				logg.Warnf("abatement cost missing for year %d tech %s", y, techs.Name(tech))
				missing++
			}
		}
	}
	return missing
}
