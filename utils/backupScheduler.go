package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/robfig/cron/v3"

	"elearn/logger"
	"elearn/store"
)

// InitializeBackupScheduler snapshots the store on the given cron spec.
func InitializeBackupScheduler(st store.Store, dir, spec string, keep int) (*cron.Cron, error) {
	logger.Log.Info("[BACKUP-SCHEDULER] Initializing backup scheduler", "spec", spec, "dir", dir)

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		path, err := RunBackup(ctx, st, dir, keep)
		if err != nil {
			logger.Log.Error("[BACKUP-SCHEDULER] Backup failed", "error", err)
			return
		}
		logger.Log.Info("[BACKUP-SCHEDULER] Backup written", "path", path)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}

	c.Start()
	return c, nil
}

// RunBackup writes a full export of st into dir and prunes all but the
// newest keep snapshots. It returns the path of the new snapshot.
func RunBackup(ctx context.Context, st store.Store, dir string, keep int) (string, error) {
	doc, err := st.Export(ctx)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("db-%s.json", time.Now().UTC().Format("20060102T150405.000000000Z"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	if keep > 0 {
		if err := pruneBackups(dir, keep); err != nil {
			return path, err
		}
	}
	return path, nil
}

func pruneBackups(dir string, keep int) error {
	matches, err := filepath.Glob(filepath.Join(dir, "db-*.json"))
	if err != nil {
		return err
	}
	if len(matches) <= keep {
		return nil
	}
	// Timestamped names sort chronologically.
	sort.Strings(matches)
	for _, old := range matches[:len(matches)-keep] {
		if err := os.Remove(old); err != nil {
			return fmt.Errorf("prune %s: %w", old, err)
		}
	}
	return nil
}
