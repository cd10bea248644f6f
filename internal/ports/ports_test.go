package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockChecker implements HealthChecker for testing.
type mockChecker struct {
	name string
	err  error
}

func (m *mockChecker) Name() string {
	return m.name
}

func (m *mockChecker) Check(_ context.Context) error {
	return m.err
}

// optionalChecker is a mockChecker that reports itself optional.
type optionalChecker struct {
	mockChecker
}

func (*optionalChecker) Optional() bool { return true }

// blockingChecker waits for its context to end.
type blockingChecker struct {
	name string
}

func (b *blockingChecker) Name() string { return b.name }

func (b *blockingChecker) Check(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRegister(t *testing.T) {
	registry := NewHealthRegistry()

	require.NoError(t, registry.Register(&mockChecker{name: "sqlite"}))
	require.NoError(t, registry.Register(&mockChecker{name: "redis"}))

	err := registry.Register(&mockChecker{name: "sqlite"})
	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "sqlite")
	assert.Len(t, registry.checkers, 2)
}

func TestCheckAll_NoCheckers(t *testing.T) {
	result := NewHealthRegistry().CheckAll(context.Background())

	require.NotNil(t, result)
	assert.Equal(t, HealthStatusHealthy, result.Status)
	assert.Empty(t, result.Checks)
	assert.False(t, result.Timestamp.IsZero())
}

func TestCheckAll_Status(t *testing.T) {
	down := errors.New("connection refused")

	tests := []struct {
		name     string
		checkers []HealthChecker
		want     HealthStatus
	}{
		{
			name:     "all healthy",
			checkers: []HealthChecker{&mockChecker{name: "sqlite"}, &optionalChecker{mockChecker{name: "redis"}}},
			want:     HealthStatusHealthy,
		},
		{
			name:     "optional failure degrades",
			checkers: []HealthChecker{&mockChecker{name: "sqlite"}, &optionalChecker{mockChecker{name: "redis", err: down}}},
			want:     HealthStatusDegraded,
		},
		{
			name:     "required failure is unhealthy",
			checkers: []HealthChecker{&mockChecker{name: "sqlite", err: down}, &optionalChecker{mockChecker{name: "redis"}}},
			want:     HealthStatusUnhealthy,
		},
		{
			name: "unhealthy outranks degraded",
			checkers: []HealthChecker{
				&optionalChecker{mockChecker{name: "redis", err: down}},
				&mockChecker{name: "sqlite", err: down},
			},
			want: HealthStatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewHealthRegistry()
			for _, c := range tt.checkers {
				require.NoError(t, registry.Register(c))
			}

			result := registry.CheckAll(context.Background())

			assert.Equal(t, tt.want, result.Status)
			assert.Len(t, result.Checks, len(tt.checkers))
		})
	}
}

func TestCheckAll_ResultDetails(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(&mockChecker{name: "sqlite"}))
	require.NoError(t, registry.Register(&optionalChecker{mockChecker{name: "redis", err: errors.New("timeout")}}))

	result := registry.CheckAll(context.Background())

	sqlite := result.Checks["sqlite"]
	require.NotNil(t, sqlite)
	assert.Equal(t, HealthStatusHealthy, sqlite.Status)
	assert.False(t, sqlite.Optional)
	assert.Empty(t, sqlite.Message)

	redis := result.Checks["redis"]
	require.NotNil(t, redis)
	assert.Equal(t, HealthStatusDegraded, redis.Status)
	assert.True(t, redis.Optional)
	assert.Equal(t, "timeout", redis.Message)
}

func TestCheckAll_CheckTimeout(t *testing.T) {
	registry := NewHealthRegistry(WithCheckTimeout(20 * time.Millisecond))
	require.NoError(t, registry.Register(&blockingChecker{name: "sqlite"}))

	start := time.Now()
	result := registry.CheckAll(context.Background())

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["sqlite"].Message, "deadline exceeded")
}

func TestCheckAll_ContextCancelled(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(&blockingChecker{name: "sqlite"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := registry.CheckAll(ctx)

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["sqlite"].Message, "canceled")
}

func TestWithCheckTimeout_IgnoresNonPositive(t *testing.T) {
	assert.Equal(t, DefaultCheckTimeout, NewHealthRegistry(WithCheckTimeout(0)).timeout)
	assert.Equal(t, time.Second, NewHealthRegistry(WithCheckTimeout(time.Second)).timeout)
}
