package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/registers/backend/internal/domain/contact"
	"github.com/registers/backend/internal/infrastructure/telemetry"
)

func TestNewRegisterMetrics(t *testing.T) {
	t.Run("requires a meter", func(t *testing.T) {
		_, err := telemetry.NewRegisterMetrics(telemetry.RegisterMetricsConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "meter cannot be nil")
	})

	t.Run("records without panicking", func(t *testing.T) {
		rm, err := telemetry.NewRegisterMetrics(telemetry.RegisterMetricsConfig{
			Meter:  noop.NewMeterProvider().Meter("test"),
			Logger: zap.NewNop(),
		})
		require.NoError(t, err)

		ctx := context.Background()
		rm.RecordMutation(ctx, "create", contact.DepartmentSocialVisit)
		rm.RecordMutation(ctx, "update", contact.DepartmentOffenderManagementUnit)
		rm.RecordOrphanDeleted(ctx, contact.ChannelEmail)
	})
}
