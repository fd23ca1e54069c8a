// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

// Package extract drives a full extraction run: it scans a directory of
// decoded archive entry dumps, materializes each entry on parallel workers
// and persists the results. Only the store commit does I/O under a
// deadline; materialization itself is pure and never blocks.
package extract

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb"
	"github.com/spacemonkeygo/monkit/v3"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/CIick/BattleBot/demondb"
	"github.com/CIick/BattleBot/materialize"
	"github.com/CIick/BattleBot/typelist"
	"github.com/CIick/BattleBot/wadobj"
)

var (
	mon = monkit.Package()

	// Error is the default extract errs class.
	Error = errs.Class("extract")
)

// Config configures an extraction run.
type Config struct {
	// SourceDir holds the decoded entry dumps, one JSON file per entry.
	SourceDir string
	// TypesPath is the type list file the dumps were produced against.
	TypesPath string
	// Revision the archive declares; must match the type list's revision.
	Revision string
	// Workers is the number of parallel entry processors.
	Workers int
	// CommitTimeout bounds each store commit. An expired commit counts as
	// a failed record.
	CommitTimeout time.Duration
	// FailedDir receives raw snapshots of records that failed to commit.
	FailedDir string
	// FailOnUnknown fails whole entries on unknown type hashes instead of
	// degrading the affected subtree.
	FailOnUnknown bool
	// Progress draws a terminal progress bar.
	Progress bool
}

// Service runs extractions.
type Service struct {
	log          *zap.Logger
	db           *demondb.DB
	types        *typelist.List
	materializer *materialize.Materializer
	config       Config
}

// New creates an extraction service over an opened store and a loaded,
// revision-validated type list.
func New(log *zap.Logger, db *demondb.DB, types *typelist.List, factory materialize.Factory, config Config) *Service {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.CommitTimeout <= 0 {
		config.CommitTimeout = 30 * time.Second
	}
	return &Service{
		log:          log,
		db:           db,
		types:        types,
		materializer: materialize.New(log.Named("materialize"), types, factory, materialize.Policy{FailOnUnknown: config.FailOnUnknown}),
		config:       config,
	}
}

// Run processes every entry dump under SourceDir and returns the run
// summary. Cancelling ctx stops scheduling new entries; records already
// committed stay committed.
func (service *Service) Run(ctx context.Context) (_ demondb.RunSummary, err error) {
	defer mon.Task()(&ctx)(&err)

	started := time.Now().UTC()
	entries, err := service.scan()
	if err != nil {
		return demondb.RunSummary{}, err
	}
	service.log.Info("run started",
		zap.String("source", service.config.SourceDir),
		zap.Int("entries", len(entries)),
		zap.Int("workers", service.config.Workers))

	var bar *pb.ProgressBar
	if service.config.Progress {
		bar = pb.New(len(entries)).Start()
	}

	var processed, inserted, duplicates, failed, skipped int64

	queue := make(chan string)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer close(queue)
		for _, entry := range entries {
			select {
			case queue <- entry:
			case <-groupCtx.Done():
				return nil
			}
		}
		return nil
	})

	for i := 0; i < service.config.Workers; i++ {
		group.Go(func() error {
			for entry := range queue {
				outcome := service.processEntry(groupCtx, entry)
				atomic.AddInt64(&processed, 1)
				atomic.AddInt64(&skipped, outcome.skips)
				switch outcome.persist {
				case demondb.PersistInserted:
					atomic.AddInt64(&inserted, 1)
				case demondb.PersistDuplicateRejected:
					atomic.AddInt64(&duplicates, 1)
				case demondb.PersistFailed:
					if outcome.attempted {
						atomic.AddInt64(&failed, 1)
					}
				}
				if bar != nil {
					bar.Increment()
				}
			}
			return nil
		})
	}

	err = group.Wait()
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return demondb.RunSummary{}, Error.Wrap(err)
	}

	summary := demondb.RunSummary{
		Revision:   service.types.Revision(),
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
		Processed:  atomic.LoadInt64(&processed),
		Inserted:   atomic.LoadInt64(&inserted),
		Duplicates: atomic.LoadInt64(&duplicates),
		Failed:     atomic.LoadInt64(&failed),
		Skipped:    atomic.LoadInt64(&skipped),
		SourceDir:  service.config.SourceDir,
		TypesPath:  service.config.TypesPath,
	}
	// the summary row is bookkeeping; losing it does not fail the run
	if recordErr := service.db.RecordRun(ctx, summary); recordErr != nil {
		service.log.Warn("recording run summary failed", zap.Error(recordErr))
	}
	service.log.Info("run finished",
		zap.Int64("processed", summary.Processed),
		zap.Int64("inserted", summary.Inserted),
		zap.Int64("duplicates", summary.Duplicates),
		zap.Int64("failed", summary.Failed),
		zap.Int64("skipped", summary.Skipped),
		zap.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)))
	return summary, nil
}

// scan lists entry dumps under SourceDir, natural keys being paths
// relative to it.
func (service *Service) scan() ([]string, error) {
	var entries []string
	err := filepath.WalkDir(service.config.SourceDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		rel, err := filepath.Rel(service.config.SourceDir, path)
		if err != nil {
			return err
		}
		entries = append(entries, rel)
		return nil
	})
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return entries, nil
}

type entryOutcome struct {
	persist   demondb.PersistOutcome
	attempted bool
	skips     int64
}

// processEntry materializes and persists a single entry. Every problem is
// absorbed into the outcome; an entry never fails the run.
func (service *Service) processEntry(ctx context.Context, entry string) entryOutcome {
	log := service.log.With(zap.String("entry", entry))
	path := filepath.Join(service.config.SourceDir, entry)

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Error("reading entry failed", zap.Error(err))
		return entryOutcome{persist: demondb.PersistFailed, attempted: true}
	}
	root, err := wadobj.Parse(bytes.NewReader(raw))
	if err != nil {
		log.Error("parsing entry failed", zap.Error(err))
		service.dumpFailed(log, entry, raw)
		return entryOutcome{persist: demondb.PersistFailed, attempted: true}
	}

	ledger := materialize.NewLedger()
	record, ok := service.materializer.Materialize(root, ledger)
	skips := ledger.Drain()
	if err := service.db.RecordSkips(ctx, entry, skips); err != nil {
		log.Warn("recording skip entries failed", zap.Error(err))
	}
	if !ok {
		log.Warn("entry did not materialize", zap.Int("skips", len(skips)))
		return entryOutcome{skips: int64(len(skips))}
	}

	commitCtx, cancel := context.WithTimeout(ctx, service.config.CommitTimeout)
	outcome, err := service.db.Persist(commitCtx, entry, record, string(raw))
	cancel()
	if err != nil {
		log.Error("persisting entry failed", zap.Error(err))
		service.dumpFailed(log, entry, raw)
	}
	return entryOutcome{persist: outcome, attempted: true, skips: int64(len(skips))}
}

// dumpFailed keeps the raw snapshot of a failed record on disk for offline
// inspection.
func (service *Service) dumpFailed(log *zap.Logger, entry string, raw []byte) {
	if service.config.FailedDir == "" {
		return
	}
	path := filepath.Join(service.config.FailedDir, filepath.Base(entry))
	if err := os.MkdirAll(service.config.FailedDir, 0755); err != nil {
		log.Warn("creating failed-records dir failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		log.Warn("writing failed-record snapshot failed", zap.Error(err))
	}
}
