// Package pipeline turns a loaded property table into coordinates, one row at
// a time.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/maplink/internal/coords"
	"github.com/sells-group/maplink/internal/model"
	"github.com/sells-group/maplink/internal/pacing"
	"github.com/sells-group/maplink/internal/resolve"
)

// Resolver expands a short URL.
type Resolver interface {
	Resolve(ctx context.Context, shortURL string) resolve.Result
}

// Summary counts row outcomes for one run.
type Summary struct {
	Total    int
	Skipped  int
	Failed   int
	Missed   int
	Located  int
	Duration time.Duration
}

// Fields returns the summary as log fields.
func (s Summary) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("total", s.Total),
		zap.Int("located", s.Located),
		zap.Int("missed", s.Missed),
		zap.Int("failed", s.Failed),
		zap.Int("skipped", s.Skipped),
		zap.Duration("duration", s.Duration),
	}
}

// Processor resolves and extracts coordinates for each row in table order.
// It is strictly sequential: one request is outstanding at a time.
type Processor struct {
	resolver Resolver
	pacer    pacing.Pacer
	log      *zap.Logger
}

// New creates a Processor. A nil pacer never pauses; a nil logger uses the
// global zap logger.
func New(resolver Resolver, pacer pacing.Pacer, log *zap.Logger) *Processor {
	if pacer == nil {
		pacer = pacing.None
	}
	if log == nil {
		log = zap.L()
	}
	return &Processor{resolver: resolver, pacer: pacer, log: log}
}

// Run fills Latitude and Longitude on every record of t in place. Per-row
// failures are logged and never returned; Run only fails when ctx is done.
func (p *Processor) Run(ctx context.Context, t *model.Table) (Summary, error) {
	start := time.Now()
	sum := Summary{Total: t.Len()}

	p.log.Info("processing rows", zap.Int("rows", t.Len()))

	for i := range t.Records {
		if err := ctx.Err(); err != nil {
			sum.Duration = time.Since(start)
			return sum, eris.Wrap(err, "pipeline: run cancelled")
		}

		rec := &t.Records[i]
		err := p.processRow(ctx, rec)

		switch rec.Status {
		case model.RowStatusSkipped:
			sum.Skipped++
		case model.RowStatusFailed:
			sum.Failed++
		case model.RowStatusMissed:
			sum.Missed++
		case model.RowStatusLocated:
			sum.Located++
		}

		if err != nil {
			sum.Duration = time.Since(start)
			return sum, err
		}
	}

	sum.Duration = time.Since(start)
	return sum, nil
}

// processRow handles a single record. The pause only follows a successful
// resolution; skipped and failed rows move on immediately.
func (p *Processor) processRow(ctx context.Context, rec *model.Record) error {
	log := p.log.With(zap.String("property_id", rec.PropertyID), zap.Int("line", rec.Line))

	if !rec.HasMapURL() {
		rec.Status = model.RowStatusSkipped
		log.Info("skipping empty map location")
		return nil
	}

	log.Info("expanding map url", zap.String("map_url", rec.MapURL))
	res := p.resolver.Resolve(ctx, rec.MapURL)
	if !res.OK() {
		rec.Status = model.RowStatusFailed
		log.Warn("failed to expand map url",
			zap.String("map_url", rec.MapURL),
			zap.String("kind", string(res.Err.Kind)),
			zap.Error(res.Err),
		)
		return nil
	}

	rec.ResolvedURL = res.URL
	log.Info("expanded url", zap.String("resolved_url", res.URL))

	pair, ok := coords.Extract(res.URL)
	rec.SetCoordinates(pair.Latitude, pair.Longitude)
	if ok {
		rec.Status = model.RowStatusLocated
		log.Info("located property",
			zap.String("latitude", pair.Latitude),
			zap.String("longitude", pair.Longitude),
		)
	} else {
		rec.Status = model.RowStatusMissed
		log.Warn("no coordinates found in url", zap.String("resolved_url", res.URL))
	}

	if err := p.pacer.Wait(ctx); err != nil {
		return eris.Wrap(err, "pipeline: pause after resolution")
	}
	return nil
}
