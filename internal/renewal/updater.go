package renewal

import (
	"context"
	"fmt"
	"time"

	"porenew/internal/logging"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
)

// POLineAPI is the slice of the Alma client the updater needs.
type POLineAPI interface {
	GetPOLine(ctx context.Context, poLineID string) ([]byte, error)
	UpdatePOLine(ctx context.Context, poLineID string, body []byte) error
}

// Change is the renewal mutation applied to every target PO line.
type Change struct {
	// RenewalDate is the new renewal date in YYYY-MM-DD form. Alma stores
	// it as <date>Z; the trailing Z is appended on submit.
	RenewalDate string

	// RenewalPeriod is the new renewal reminder period. Only written when
	// HasPeriod is true, so an explicit 0 is distinguishable from unset.
	RenewalPeriod int
	HasPeriod     bool
}

// Validate checks the change before any record is touched.
func (ch Change) Validate() error {
	if _, err := time.Parse("2006-01-02", ch.RenewalDate); err != nil {
		return fmt.Errorf("invalid renewal date %q: want YYYY-MM-DD", ch.RenewalDate)
	}
	if ch.HasPeriod && ch.RenewalPeriod < 0 {
		return fmt.Errorf("renewal period must be non-negative, got %d", ch.RenewalPeriod)
	}
	return nil
}

// Updater applies a Change to PO lines one at a time. Each record is
// fetched in full, patched in place, and submitted back; a failure on one
// record does not stop the rest.
type Updater struct {
	api POLineAPI
	log *zap.Logger

	// Progress, when set, is called after each record with the number of
	// records processed so far and the total.
	Progress func(done, total int)
}

// NewUpdater creates an updater. A nil logger is replaced with a no-op.
func NewUpdater(api POLineAPI, log *zap.Logger) *Updater {
	if log == nil {
		log = zap.NewNop()
	}
	return &Updater{api: api, log: log}
}

// Run applies the change to every ID in order and returns the per-record
// report. The only error returned directly is a validation failure of the
// change itself; remote failures land in the report.
func (u *Updater) Run(ctx context.Context, poLineIDs []string, ch Change) (*Report, error) {
	if err := ch.Validate(); err != nil {
		return nil, err
	}

	report := NewReport(len(poLineIDs))
	timer := logging.StartTimer(logging.CategoryRenewal, fmt.Sprintf("bulk update of %d PO lines", len(poLineIDs)))

	for i, id := range poLineIDs {
		err := u.updateOne(ctx, id, ch)
		report.Add(id, err)
		if err != nil {
			logging.RenewalError("PO line %s: %v", id, err)
			u.log.Warn("PO line update failed", zap.String("po_line_id", id), zap.Error(err))
		}
		if u.Progress != nil {
			u.Progress(i+1, len(poLineIDs))
		}
		if ctx.Err() != nil {
			break
		}
	}

	timer.StopWithInfo()
	return report, nil
}

func (u *Updater) updateOne(ctx context.Context, poLineID string, ch Change) error {
	body, err := u.api.GetPOLine(ctx, poLineID)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	number := gjson.GetBytes(body, "number").String()

	body, err = sjson.SetBytes(body, "renewal_date", ch.RenewalDate+"Z")
	if err != nil {
		return fmt.Errorf("failed to set renewal_date: %w", err)
	}
	if ch.HasPeriod {
		body, err = sjson.SetBytes(body, "renewal_period", ch.RenewalPeriod)
		if err != nil {
			return fmt.Errorf("failed to set renewal_period: %w", err)
		}
	}

	if err := u.api.UpdatePOLine(ctx, poLineID, body); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	u.log.Debug("PO line updated",
		zap.String("po_line_id", poLineID),
		zap.String("number", number),
		zap.String("renewal_date", ch.RenewalDate))
	return nil
}
