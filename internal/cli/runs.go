package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/aretw0/turing/pkg/ports"
)

var errNoStore = errors.New("no run store configured (set store.kind or TURING_STORE_KIND)")

func (a *App) recordStore(ctx context.Context) (ports.RunStore, func() error, error) {
	store, closeStore, err := a.openStore(ctx, true)
	if err != nil {
		return nil, nil, err
	}
	if store == nil {
		return nil, nil, errNoStore
	}
	return store, closeStore, nil
}

// ListRuns prints the recorded runs, oldest first.
func (a *App) ListRuns(ctx context.Context, asJSON bool) error {
	store, closeStore, err := a.recordStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	ids, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if asJSON {
		if ids == nil {
			ids = []string{}
		}
		return json.NewEncoder(a.Out).Encode(ids)
	}
	if len(ids) == 0 {
		printSystemMessage(a.Out, "No recorded runs.")
		return nil
	}

	tw := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMACHINE\tINPUT\tRESULT\tSTEPS\tSTARTED")
	for _, id := range ids {
		rec, err := store.Load(ctx, id)
		if err != nil {
			a.logger().Warn("skipping unreadable run", "id", id, "err", err)
			continue
		}
		result := string(rec.Verdict)
		if rec.Error != "" {
			result = "error"
		}
		fmt.Fprintf(tw, "%s\t%s\t%q\t%s\t%d\t%s\n",
			rec.ID, rec.Machine, rec.Input, result, rec.Steps, rec.StartedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

// InspectRun prints one run record as JSON.
func (a *App) InspectRun(ctx context.Context, id string) error {
	store, closeStore, err := a.recordStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	rec, err := store.Load(ctx, id)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// RemoveRuns deletes the given runs, or every run with all.
func (a *App) RemoveRuns(ctx context.Context, ids []string, all bool) error {
	store, closeStore, err := a.recordStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if all {
		if ids, err = store.List(ctx); err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
	}
	for _, id := range ids {
		if err := store.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete run %s: %w", id, err)
		}
	}
	printSystemMessage(a.Out, "Removed %d run(s).", len(ids))
	return nil
}
