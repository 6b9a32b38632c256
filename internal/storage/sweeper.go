package storage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// ReferenceChecker menjawab apakah sebuah path upload masih direferensikan
// baris database. Diimplementasikan oleh repo attendance dan leave.
type ReferenceChecker interface {
	IsFileReferenced(ctx context.Context, path string) (bool, error)
}

// SweepOrphans membersihkan berkas upload yang lebih tua dari cutoff dan
// tidak lagi direferensikan baris manapun. Ini kompensasi untuk upload yang
// berhasil tetapi penulisan barisnya gagal.
func SweepOrphans(
	ctx context.Context,
	root string,
	olderThan time.Duration,
	checkers []ReferenceChecker,
	logger *zap.Logger,
) (int, error) {
	log := logger.Named("storage.sweeper")
	cutoff := time.Now().Add(-olderThan)
	removed := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		for _, checker := range checkers {
			referenced, err := checker.IsFileReferenced(ctx, rel)
			if err != nil {
				return err
			}
			if referenced {
				return nil
			}
		}

		if err := os.Remove(path); err != nil {
			log.Error("remove orphan file failed", zap.String("path", rel), zap.Error(err))
			return nil
		}

		removed++
		log.Info("orphan file removed", zap.String("path", rel))
		return nil
	})

	return removed, err
}
