package monitoring

import "context"

type Monitor interface {
	MonitorBudgets(ctx context.Context) (*MonitorResult, error)
}
