package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Sriram-PR/md-toc/pkg/config"
	"github.com/Sriram-PR/md-toc/pkg/orchestrate"
	"github.com/Sriram-PR/md-toc/pkg/process"
	"github.com/Sriram-PR/md-toc/pkg/storage"
	"github.com/Sriram-PR/md-toc/pkg/watch"
)

func (a *app) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE...",
		Short: "Keep the TOC of files up to date while they are edited",
		Long: `Update the table of contents of each file now and again whenever it changes
on disk, until interrupted. Changes to the config file are picked up without
a restart.`,
		Example: `  md-toc watch README.md docs/guide.md
  md-toc watch --state-dir .md-toc-state -n README.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runWatch,
	}
}

func (a *app) runWatch(cmd *cobra.Command, args []string) error {
	mgr, err := config.NewManager(a.flags.cfgFile)
	if err != nil {
		return err
	}
	loaded := *mgr.Get()
	cfg, logger, err := a.finishConfig(cmd, &loaded, "info")
	if err != nil {
		return err
	}
	entry := logger.WithField("command", "watch")

	var store storage.DocumentStore = storage.NewMemoryStore()
	if cfg.StateDir != "" {
		badgerStore, err := storage.NewBadgerStore(cfg.StateDir, entry)
		if err != nil {
			return err
		}
		defer badgerStore.Close()
		if count, err := badgerStore.Count(); err == nil {
			entry.Debugf("State store holds %d documents", count)
		}
		go badgerStore.RunGC(cmd.Context(), 0)
		store = badgerStore
	}

	orch, err := a.watchOrchestrator(cmd, cfg, store, entry)
	if err != nil {
		return err
	}
	w, err := watch.NewWatcher(orch, args, cfg.WatchDebounce, cfg.StateDir, entry)
	if err != nil {
		return err
	}

	mgr.OnChange(func(changed *config.Config) {
		next := *changed
		a.applyFlags(cmd, &next)
		warnings, err := next.Validate()
		for _, warning := range warnings {
			entry.Warn(warning)
		}
		if err != nil {
			entry.Errorf("Ignoring invalid configuration change: %v", err)
			return
		}
		orch, err := a.watchOrchestrator(cmd, &next, store, entry)
		if err != nil {
			entry.Errorf("Ignoring invalid configuration change: %v", err)
			return
		}
		entry.Infof("Configuration reloaded from %s", mgr.ConfigFile())
		w.SetOrchestrator(orch)
	})
	mgr.WatchConfig()

	return w.Run(cmd.Context())
}

func (a *app) watchOrchestrator(cmd *cobra.Command, cfg *config.Config, store storage.DocumentStore, entry *logrus.Entry) (*orchestrate.Orchestrator, error) {
	processor, err := process.NewContentProcessor(cfg.TOCOptions(a.resolveComment(cmd, cfg)), cfg.Newlines, entry)
	if err != nil {
		return nil, err
	}
	return orchestrate.NewOrchestrator(processor, store, cfg.Jobs, entry), nil
}
