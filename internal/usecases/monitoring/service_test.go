package monitoring

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-monitor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/budget-monitor-api/internal/config"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var referenceNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

// alertStore reproduz o índice único parcial (campaign_id, threshold_amount) WHERE is_active
type alertStore struct {
	mu     sync.Mutex
	alerts []*domain.CampaignAlert
}

func (s *alertStore) RefreshActiveAmounts(_ context.Context, campaignID string, currentAmount float64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated int64
	for _, alert := range s.alerts {
		if alert.CampaignID == campaignID && alert.IsActive {
			alert.CurrentAmount = currentAmount
			updated++
		}
	}
	return updated, nil
}

func (s *alertStore) CreateIfAbsent(_ context.Context, alert *domain.CampaignAlert) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.alerts {
		if existing.CampaignID == alert.CampaignID && existing.ThresholdAmount == alert.ThresholdAmount && existing.IsActive {
			return false, nil
		}
	}

	copied := *alert
	copied.ID = fmt.Sprintf("alert-%d", len(s.alerts)+1)
	s.alerts = append(s.alerts, &copied)
	return true, nil
}

func (s *alertStore) ListByCampaign(_ context.Context, campaignID string, activeOnly bool) ([]*domain.CampaignAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.CampaignAlert, 0)
	for _, alert := range s.alerts {
		if alert.CampaignID == campaignID && (!activeOnly || alert.IsActive) {
			result = append(result, alert)
		}
	}
	return result, nil
}

type inlineTransactor struct {
	calls int
	mu    sync.Mutex
}

func (t *inlineTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	return fn(ctx)
}

func floatPtr(f float64) *float64 {
	return &f
}

type fixture struct {
	campaigns  *mocks.MockCampaignRepository
	metrics    *mocks.MockMetricRepository
	syncLogs   *mocks.MockSyncLogRepository
	alerts     *alertStore
	transactor *inlineTransactor
	service    *Service
	finished   []*domain.SyncLog
}

func newFixture(ctrl *gomock.Controller) *fixture {
	f := &fixture{
		campaigns:  mocks.NewMockCampaignRepository(ctrl),
		metrics:    mocks.NewMockMetricRepository(ctrl),
		syncLogs:   mocks.NewMockSyncLogRepository(ctrl),
		alerts:     &alertStore{},
		transactor: &inlineTransactor{},
	}

	f.service = NewService(f.campaigns, f.metrics, f.alerts, f.syncLogs, f.transactor, config.BudgetMonitor{Workers: 2}).
		WithClock(func() time.Time { return referenceNow })

	f.syncLogs.EXPECT().Start(gomock.Any(), gomock.Nil(), domain.SyncTypeBudgetMonitor).
		Return(&domain.SyncLog{ID: "log-1", Status: domain.SyncStatusRunning}, nil).AnyTimes()
	f.syncLogs.EXPECT().Finish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, log *domain.SyncLog) error {
		copied := *log
		f.finished = append(f.finished, &copied)
		return nil
	}).AnyTimes()

	return f
}

func TestService_MonitorBudgets_Thresholds(t *testing.T) {
	tests := []struct {
		name           string
		spend          float64
		wantThresholds []float64
	}{
		{name: "Abaixo de 80%", spend: 79.99, wantThresholds: []float64{}},
		{name: "Exatamente 80%", spend: 80, wantThresholds: []float64{80}},
		{name: "Entre 90% e 100%", spend: 95, wantThresholds: []float64{80, 90}},
		{name: "Acima do orçamento", spend: 105, wantThresholds: []float64{80, 90, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			f.campaigns.EXPECT().ListMonitorable(gomock.Any()).Return([]*domain.Campaign{
				{ID: "camp-1", Status: domain.CampaignStatusActive, DailyBudget: floatPtr(100)},
			}, nil)
			f.metrics.EXPECT().SumSpendByCampaign(gomock.Any(), "camp-1").Return(tt.spend, nil)

			result, err := f.service.MonitorBudgets(context.Background())
			require.NoError(t, err)

			assert.Equal(t, 1, result.CampaignsChecked)
			assert.Equal(t, len(tt.wantThresholds), result.AlertsCreated)

			thresholds := make([]float64, 0, len(f.alerts.alerts))
			for _, alert := range f.alerts.alerts {
				thresholds = append(thresholds, alert.ThresholdAmount)
				assert.Equal(t, tt.spend, alert.CurrentAmount)
				assert.True(t, alert.IsActive)
				assert.Equal(t, referenceNow, alert.TriggeredAt)
			}
			assert.ElementsMatch(t, tt.wantThresholds, thresholds)
		})
	}
}

func TestService_MonitorBudgets_AlertTypes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.campaigns.EXPECT().ListMonitorable(gomock.Any()).Return([]*domain.Campaign{
		{ID: "camp-1", DailyBudget: floatPtr(250)},
	}, nil)
	f.metrics.EXPECT().SumSpendByCampaign(gomock.Any(), "camp-1").Return(260.0, nil)

	_, err := f.service.MonitorBudgets(context.Background())
	require.NoError(t, err)

	byType := map[string]float64{}
	for _, alert := range f.alerts.alerts {
		byType[alert.AlertType] = alert.ThresholdAmount
	}

	assert.Equal(t, map[string]float64{
		"budget_80_percent":  200,
		"budget_90_percent":  225,
		"budget_100_percent": 250,
	}, byType)
}

func TestService_MonitorBudgets_NoDuplicateAlertsAcrossRuns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	campaigns := []*domain.Campaign{{ID: "camp-1", DailyBudget: floatPtr(100)}}
	f.campaigns.EXPECT().ListMonitorable(gomock.Any()).Return(campaigns, nil).Times(2)

	gomock.InOrder(
		f.metrics.EXPECT().SumSpendByCampaign(gomock.Any(), "camp-1").Return(85.0, nil),
		f.metrics.EXPECT().SumSpendByCampaign(gomock.Any(), "camp-1").Return(87.0, nil),
	)

	first, err := f.service.MonitorBudgets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.AlertsCreated)
	assert.Equal(t, 0, first.AlertsUpdated)

	second, err := f.service.MonitorBudgets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.AlertsCreated)
	assert.Equal(t, 1, second.AlertsUpdated)

	active, err := f.alerts.ListByCampaign(context.Background(), "camp-1", true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, 87.0, active[0].CurrentAmount)
	assert.Equal(t, "budget_80_percent", active[0].AlertType)
}

func TestService_MonitorBudgets_FallsBackToLifetimeBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.campaigns.EXPECT().ListMonitorable(gomock.Any()).Return([]*domain.Campaign{
		{ID: "camp-1", DailyBudget: floatPtr(0), LifetimeBudget: floatPtr(1000)},
	}, nil)
	f.metrics.EXPECT().SumSpendByCampaign(gomock.Any(), "camp-1").Return(900.0, nil)

	result, err := f.service.MonitorBudgets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.AlertsCreated)
	assert.Equal(t, 0, result.CampaignsSkipped)
}

func TestService_MonitorBudgets_SkipsZeroBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.campaigns.EXPECT().ListMonitorable(gomock.Any()).Return([]*domain.Campaign{
		{ID: "camp-zero", DailyBudget: floatPtr(0)},
		{ID: "camp-ok", DailyBudget: floatPtr(50)},
	}, nil)
	f.metrics.EXPECT().SumSpendByCampaign(gomock.Any(), "camp-ok").Return(10.0, nil)

	result, err := f.service.MonitorBudgets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.CampaignsChecked)
	assert.Equal(t, 1, result.CampaignsSkipped)
	assert.Equal(t, 0, result.AlertsCreated)
	assert.Empty(t, f.alerts.alerts)
}

func TestService_MonitorBudgets_CampaignFailureDoesNotAbortRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.campaigns.EXPECT().ListMonitorable(gomock.Any()).Return([]*domain.Campaign{
		{ID: "camp-broken", DailyBudget: floatPtr(100)},
		{ID: "camp-ok", DailyBudget: floatPtr(100)},
	}, nil)
	f.metrics.EXPECT().SumSpendByCampaign(gomock.Any(), "camp-broken").Return(0.0, errors.New("connection reset"))
	f.metrics.EXPECT().SumSpendByCampaign(gomock.Any(), "camp-ok").Return(100.0, nil)

	result, err := f.service.MonitorBudgets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.CampaignsFailed)
	assert.Equal(t, 3, result.AlertsCreated)
	assert.Equal(t, 2, f.transactor.calls)

	require.Len(t, f.finished, 1)
	assert.Equal(t, domain.SyncStatusSuccess, f.finished[0].Status)
	assert.Equal(t, 1, f.finished[0].ErrorsCount)
}

func TestService_MonitorBudgets_ListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.campaigns.EXPECT().ListMonitorable(gomock.Any()).Return(nil, errors.New("relation does not exist"))

	result, err := f.service.MonitorBudgets(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)

	require.Len(t, f.finished, 1)
	assert.Equal(t, domain.SyncStatusError, f.finished[0].Status)
	require.NotNil(t, f.finished[0].ErrorMessage)
	assert.Contains(t, *f.finished[0].ErrorMessage, "relation does not exist")
}
