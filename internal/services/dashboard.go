package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"commerce-dashboard/internal/analytics"
	"commerce-dashboard/internal/dataset"
	"commerce-dashboard/internal/models"
	"commerce-dashboard/internal/observability"
	"commerce-dashboard/internal/presentation"
)

// Options lists the values offered by the sidebar filters.
type Options struct {
	Divisions      []string `json:"divisions"`
	PaymentMethods []string `json:"payment_methods"`
	MinDate        string   `json:"min_date"`
	MaxDate        string   `json:"max_date"`
}

// Dashboard owns the unified base table. It is built once at startup and
// every request filters, aggregates and presents from it without mutating
// it.
type Dashboard struct {
	records  []models.Record
	options  Options
	loadedAt time.Time
	loadTime time.Duration
	source   string
	passes   atomic.Int64
	logger   *slog.Logger
}

// NewDashboard wraps already unified records.
func NewDashboard(records []models.Record, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{
		records:  records,
		options:  buildOptions(records),
		loadedAt: time.Now(),
		source:   "memory",
		logger:   logger,
	}
}

// Load reads and unifies the six source tables. When snapshot is enabled a
// cached copy for the same source files is used instead, and a fresh
// unification is written back.
func Load(ctx context.Context, src dataset.Sources, snapshot *dataset.Snapshot, logger *slog.Logger) (*Dashboard, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, span := observability.StartSpan(ctx, "dashboard.load")
	defer span.Finish()

	start := time.Now()
	records, source, err := loadRecords(ctx, src, snapshot, logger)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	d := NewDashboard(records, logger)
	d.loadTime = time.Since(start)
	d.source = source
	span.SetTag("records", fmt.Sprint(len(records)))
	span.SetTag("source", source)

	logger.Info("dataset ready",
		"records", len(records),
		"source", source,
		"duration", d.loadTime,
		"divisions", len(d.options.Divisions),
		"payment_methods", len(d.options.PaymentMethods),
	)
	return d, nil
}

func loadRecords(ctx context.Context, src dataset.Sources, snapshot *dataset.Snapshot, logger *slog.Logger) ([]models.Record, string, error) {
	var key string
	if snapshot.Enabled() {
		fp, err := snapshot.Fingerprint(src)
		if err != nil {
			return nil, "", err
		}
		key = fp
		records, err := snapshot.Load(key)
		if err == nil {
			return records, "snapshot", nil
		}
		logger.Debug("snapshot miss", "key", key, "error", err)
	}

	tables, err := dataset.LoadTables(ctx, src)
	if err != nil {
		return nil, "", fmt.Errorf("load tables: %w", err)
	}
	for _, t := range []*dataset.Table{tables.Fact, tables.Customer, tables.Item, tables.Store, tables.Time, tables.Transaction} {
		logger.Debug("table loaded", "table", t.Name, "encoding", t.Encoding, "rows", t.Len())
	}

	records, err := dataset.Unify(tables)
	if err != nil {
		return nil, "", fmt.Errorf("unify tables: %w", err)
	}

	if snapshot.Enabled() {
		if err := snapshot.Save(key, records); err != nil {
			logger.Warn("failed to save snapshot", "error", err)
		}
	}
	return records, "csv", nil
}

func buildOptions(records []models.Record) Options {
	divisions, payments := []string{}, []string{}
	seenDivision := make(map[string]bool)
	seenPayment := make(map[string]bool)
	for _, r := range records {
		if r.StoreFound && !seenDivision[r.Division] {
			seenDivision[r.Division] = true
			divisions = append(divisions, r.Division)
		}
		if r.PaymentFound && !seenPayment[r.PaymentType] {
			seenPayment[r.PaymentType] = true
			payments = append(payments, r.PaymentType)
		}
	}

	opts := Options{Divisions: divisions, PaymentMethods: payments}
	span := analytics.DateSpan(records)
	if span.From != nil {
		opts.MinDate = span.From.Format(analytics.DayLayout)
		opts.MaxDate = span.To.Format(analytics.DayLayout)
	}
	return opts
}

// Options returns the filter choices available in the base table.
func (d *Dashboard) Options() Options {
	return d.options
}

// Report runs the filter and aggregation stages.
func (d *Dashboard) Report(f analytics.Filter) analytics.Report {
	return analytics.Build(analytics.Apply(d.records, f))
}

// Compute runs one full pass: filter, aggregate, present.
func (d *Dashboard) Compute(ctx context.Context, f analytics.Filter) presentation.View {
	_, span := observability.StartSpan(ctx, "dashboard.compute")
	defer span.Finish()

	start := time.Now()
	report := d.Report(f)
	view := presentation.Build(report)
	d.passes.Add(1)

	span.SetTag("filtered", fmt.Sprint(report.KPIs.Orders))
	d.logger.Debug("dashboard computed",
		"filtered", report.KPIs.Orders,
		"total", len(d.records),
		"empty", view.Empty,
		"duration", time.Since(start),
		"request_id", observability.GetRequestID(ctx),
	)
	return view
}

// Len returns the number of unified records held.
func (d *Dashboard) Len() int {
	return len(d.records)
}

// Stats reports load and usage figures for monitoring.
func (d *Dashboard) Stats() map[string]any {
	return map[string]any{
		"record_count":    len(d.records),
		"loaded_at":       d.loadedAt,
		"load_duration":   d.loadTime.String(),
		"source":          d.source,
		"divisions":       len(d.options.Divisions),
		"payment_methods": len(d.options.PaymentMethods),
		"compute_passes":  d.passes.Load(),
	}
}
