// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	appcontact "github.com/registers/backend/internal/application/contact"
	"github.com/registers/backend/internal/domain/contact"
)

// RegisterMetrics provides domain metrics for the register service. It
// tracks contact details mutations and the orphaned value rows collected
// alongside them.
type RegisterMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	contactMutationTotal *Counter
	orphanDeletedTotal   *Counter
}

// RegisterMetricsConfig holds configuration for register metrics.
type RegisterMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewRegisterMetrics creates a new RegisterMetrics instance.
func NewRegisterMetrics(cfg RegisterMetricsConfig) (*RegisterMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rm := &RegisterMetrics{
		meter:  cfg.Meter,
		logger: logger,
	}

	var err error

	rm.contactMutationTotal, err = NewCounter(
		cfg.Meter,
		"register_contact_mutation_total",
		"Total number of contact details mutations",
		"{mutations}",
	)
	if err != nil {
		return nil, err
	}

	rm.orphanDeletedTotal, err = NewCounter(
		cfg.Meter,
		"register_contact_orphan_deleted_total",
		"Total number of orphaned contact value rows deleted",
		"{rows}",
	)
	if err != nil {
		return nil, err
	}

	return rm, nil
}

var _ appcontact.Metrics = (*RegisterMetrics)(nil)

// RecordMutation counts a contact details mutation by operation and
// department.
func (rm *RegisterMetrics) RecordMutation(ctx context.Context, operation string, department contact.DepartmentType) {
	rm.contactMutationTotal.Inc(ctx,
		attribute.String("operation", operation),
		AttrDepartment.String(string(department)),
	)
}

// RecordOrphanDeleted counts a garbage-collected value row by channel.
func (rm *RegisterMetrics) RecordOrphanDeleted(ctx context.Context, channel contact.Channel) {
	rm.orphanDeletedTotal.Inc(ctx,
		AttrChannel.String(string(channel)),
	)
}

// MetricsError represents a metrics initialization error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewRegisterMetrics", Err: "meter cannot be nil"}
