package intake

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Theworldzyours/TRADE-SOURCER/internal/contracts"
	"github.com/Theworldzyours/TRADE-SOURCER/pkg/logger"
)

// RejectedRecord is one snapshot record that never entered the
// pipeline, with a human-readable reason.
type RejectedRecord struct {
	Index  int    `json:"index"`
	Ticker string `json:"ticker,omitempty"`
	Reason string `json:"reason"`
}

// Loader reads and validates a snapshot of metric bundles. Records
// that fail validation are rejected individually; one malformed
// record never discards the snapshot.
type Loader struct {
	validate *validator.Validate
	log      *logger.Logger
}

// New creates a snapshot loader.
func New(log *logger.Logger) *Loader {
	v := validator.New()
	// Report JSON field names in rejection reasons, not Go names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Loader{
		validate: v,
		log:      log,
	}
}

// LoadFile reads a JSON snapshot file. A file that cannot be read or
// parsed at all is a hard error; per-record problems are returned as
// rejections.
func (l *Loader) LoadFile(path string) ([]*contracts.MetricBundle, []RejectedRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	return l.Load(f)
}

// Load parses and validates a snapshot from r.
func (l *Loader) Load(r io.Reader) ([]*contracts.MetricBundle, []RejectedRecord, error) {
	var records []*contracts.MetricBundle
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot: %w", err)
	}

	bundles := make([]*contracts.MetricBundle, 0, len(records))
	var rejected []RejectedRecord
	seen := make(map[string]bool)

	for i, rec := range records {
		if rec == nil {
			rejected = append(rejected, RejectedRecord{Index: i, Reason: "null record"})
			continue
		}
		if err := l.validate.Struct(rec); err != nil {
			rejected = append(rejected, RejectedRecord{
				Index:  i,
				Ticker: rec.Ticker,
				Reason: validationReason(err),
			})
			continue
		}
		if seen[rec.Ticker] {
			rejected = append(rejected, RejectedRecord{
				Index:  i,
				Ticker: rec.Ticker,
				Reason: "duplicate ticker",
			})
			continue
		}
		seen[rec.Ticker] = true
		bundles = append(bundles, rec)
	}

	if len(rejected) > 0 {
		l.log.WithFields(map[string]interface{}{
			"records":  len(records),
			"rejected": len(rejected),
		}).Warn("snapshot records rejected during intake")
	}

	return bundles, rejected, nil
}

// validationReason flattens validator output into one readable line.
func validationReason(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "min":
			parts = append(parts, fmt.Sprintf("%s is required", fieldName(fe)))
		case "gt":
			parts = append(parts, fmt.Sprintf("%s must be greater than %s", fieldName(fe), fe.Param()))
		case "gte":
			parts = append(parts, fmt.Sprintf("%s must be at least %s", fieldName(fe), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", fieldName(fe), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// fieldName strips the type prefix from the validator namespace:
// "MetricBundle.Candles[3].Close" becomes "candles[3].close".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}
