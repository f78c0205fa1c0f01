package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Sriram-PR/md-toc/pkg/config"
	"github.com/Sriram-PR/md-toc/pkg/orchestrate"
	"github.com/Sriram-PR/md-toc/pkg/process"
	"github.com/Sriram-PR/md-toc/pkg/storage"
)

// runInPlace rewrites every input file. A failing file is reported and the
// others are still processed.
func (a *app) runInPlace(cmd *cobra.Command, cfg *config.Config, logger *logrus.Logger, processor *process.ContentProcessor, inputs []string) error {
	entry := logger.WithField("command", "toc")

	var store storage.DocumentStore
	if cfg.StateDir != "" {
		badgerStore, err := storage.NewBadgerStore(cfg.StateDir, entry)
		if err != nil {
			return err
		}
		defer badgerStore.Close()
		store = badgerStore
	}

	orch := orchestrate.NewOrchestrator(processor, store, cfg.Jobs, entry)
	results := orch.Run(cmd.Context(), inputs)

	for _, err := range orchestrate.Failures(results) {
		fmt.Fprintf(a.stderr, "%s: %v\n", a.prog, err)
	}

	reportChanges := a.flags.changed || a.flags.diff
	for _, result := range results {
		if !result.Changed() || !reportChanges {
			continue
		}
		fmt.Fprintf(a.stderr, "Updated %s\n", result.Path)
		if a.flags.diff {
			diff, err := process.UnifiedDiff(result.Path, result.Input, result.Output)
			if err != nil {
				entry.Errorf("Failed to compute diff: %v", err)
				continue
			}
			fmt.Fprint(a.stdout, diff)
		}
	}

	a.status = orchestrate.AggregateStatus(results, reportChanges)
	return nil
}
