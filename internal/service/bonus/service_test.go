package bonus

import (
	"context"
	"testing"
	"time"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/bonus"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/employee"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/timesheet"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSchemeRepo struct {
	scheme bonus.Scheme
	found  bool
}

func (f *fakeSchemeRepo) GetByEmployee(_ context.Context, _, _ string) (bonus.Scheme, error) {
	if !f.found {
		return bonus.Scheme{}, pgx.ErrNoRows
	}
	return f.scheme, nil
}

func (f *fakeSchemeRepo) Upsert(_ context.Context, scheme bonus.Scheme) (bonus.Scheme, error) {
	f.scheme = scheme
	f.found = true
	return scheme, nil
}

type fakePayoutRepo struct {
	payouts []bonus.Payout
}

func (f *fakePayoutRepo) Create(_ context.Context, payout bonus.Payout) (bonus.Payout, error) {
	payout.ID = uuid.NewString()
	f.payouts = append(f.payouts, payout)
	return payout, nil
}

func (f *fakePayoutRepo) ListByEmployee(_ context.Context, _, _ string) ([]bonus.Payout, error) {
	return f.payouts, nil
}

type fakeEntryRepo struct {
	entries []timesheet.DailyEntry
}

func (f *fakeEntryRepo) Upsert(_ context.Context, entry timesheet.DailyEntry) (timesheet.DailyEntry, error) {
	return entry, nil
}

func (f *fakeEntryRepo) GetByEmployeeAndDate(_ context.Context, _ string, _ time.Time, _ string) (*timesheet.DailyEntry, error) {
	return nil, nil
}

func (f *fakeEntryRepo) ListByEmployee(_ context.Context, _, _ string) ([]timesheet.DailyEntry, error) {
	return f.entries, nil
}

func (f *fakeEntryRepo) ListByEmployeeMonth(_ context.Context, _ string, _ int, _ time.Month, _ string) ([]timesheet.DailyEntry, error) {
	return nil, nil
}

func (f *fakeEntryRepo) Delete(_ context.Context, _ string, _ time.Time, _ string) error {
	return nil
}

type fakeEmployeeRepo struct {
	employee employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, _, _ string) (employee.Employee, error) {
	return f.employee, nil
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(_ context.Context, _ string) ([]employee.Employee, error) {
	return []employee.Employee{f.employee}, nil
}

func (f *fakeEmployeeRepo) UpdateOvertimeBalance(_ context.Context, _ string, _ float64, _ string) error {
	return nil
}

func (f *fakeEmployeeRepo) UpdateSettings(_ context.Context, _ employee.UpdateSettingsRequest, _ string) (employee.Employee, error) {
	return f.employee, nil
}

func entryOn(date string, gross string) timesheet.DailyEntry {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return timesheet.DailyEntry{Date: day, GrossRevenue: d(gross)}
}

func newTestService(entries []timesheet.DailyEntry, payouts []bonus.Payout) (bonus.Service, *fakePayoutRepo) {
	schemeRepo := &fakeSchemeRepo{
		found: true,
		scheme: bonus.Scheme{
			Kind: bonus.SchemeStepped,
			Tiers: []bonus.Tier{
				{Threshold: d("500"), Percent: d("10")},
				{Threshold: d("1200"), Percent: d("20")},
			},
		},
	}
	payoutRepo := &fakePayoutRepo{payouts: payouts}
	entryRepo := &fakeEntryRepo{entries: entries}
	employeeRepo := &fakeEmployeeRepo{
		employee: employee.Employee{ID: "emp-1", CompanyID: "co-1", AnnualRevenueTarget: d("120000")},
	}
	return NewBonusService(schemeRepo, payoutRepo, entryRepo, employeeRepo), payoutRepo
}

func TestMonthSummary(t *testing.T) {
	// Net 11200 against a 10000 monthly target leaves 1200 over target.
	svc, _ := newTestService([]timesheet.DailyEntry{
		entryOn("2025-03-10", "6664"),
		entryOn("2025-03-20", "6664"),
	}, nil)

	got, err := svc.MonthSummary(context.Background(), "emp-1", 2025, time.March, "co-1")
	require.NoError(t, err)

	assert.Equal(t, 2025, got.Year)
	assert.Equal(t, time.March, got.Month)
	assert.True(t, got.NetRevenue.Equal(d("11200")), "net %s", got.NetRevenue)
	assert.True(t, got.OverTarget.Equal(d("1200")), "over %s", got.OverTarget)
	assert.True(t, got.Bonus.Equal(d("190")), "bonus %s", got.Bonus)
	assert.True(t, got.AvailablePayout.Equal(d("190")), "available %s", got.AvailablePayout)
}

func TestMonthSummaryCarriesUnpaidBonusForward(t *testing.T) {
	svc, _ := newTestService([]timesheet.DailyEntry{
		entryOn("2025-03-10", "13328"), // net 11200, bonus 190
		entryOn("2025-04-10", "11900"), // net 10000, on target, no bonus
	}, nil)

	got, err := svc.MonthSummary(context.Background(), "emp-1", 2025, time.April, "co-1")
	require.NoError(t, err)

	assert.True(t, got.Bonus.Equal(d("0")), "bonus %s", got.Bonus)
	assert.True(t, got.CarryIn.Equal(d("190")), "carry in %s", got.CarryIn)
	assert.True(t, got.AvailablePayout.Equal(d("190")), "available %s", got.AvailablePayout)
}

func TestMonthSummaryPayoutConsumesCarry(t *testing.T) {
	payouts := []bonus.Payout{
		{EmployeeID: "emp-1", CompanyID: "co-1", Year: 2025, Month: time.March, Amount: d("150")},
	}
	svc, _ := newTestService([]timesheet.DailyEntry{
		entryOn("2025-03-10", "13328"),
		entryOn("2025-04-10", "11900"),
	}, payouts)

	march, err := svc.MonthSummary(context.Background(), "emp-1", 2025, time.March, "co-1")
	require.NoError(t, err)
	assert.True(t, march.PaidOut.Equal(d("150")), "paid %s", march.PaidOut)
	assert.True(t, march.AvailablePayout.Equal(d("40")), "available %s", march.AvailablePayout)

	april, err := svc.MonthSummary(context.Background(), "emp-1", 2025, time.April, "co-1")
	require.NoError(t, err)
	assert.True(t, april.CarryIn.Equal(d("40")), "carry in %s", april.CarryIn)
}

func TestMonthSummaryRecomputesAfterBackdatedEdit(t *testing.T) {
	entryRepo := &fakeEntryRepo{entries: []timesheet.DailyEntry{
		entryOn("2025-04-10", "11900"),
	}}
	schemeRepo := &fakeSchemeRepo{
		found:  true,
		scheme: bonus.Scheme{Kind: bonus.SchemeLinear, Percent: d("10")},
	}
	employeeRepo := &fakeEmployeeRepo{
		employee: employee.Employee{ID: "emp-1", CompanyID: "co-1", AnnualRevenueTarget: d("120000")},
	}
	svc := NewBonusService(schemeRepo, &fakePayoutRepo{}, entryRepo, employeeRepo)

	before, err := svc.MonthSummary(context.Background(), "emp-1", 2025, time.April, "co-1")
	require.NoError(t, err)
	assert.True(t, before.CarryIn.Equal(d("0")))

	// Revenue added to March after the fact must flow into April's carry.
	entryRepo.entries = append(entryRepo.entries, entryOn("2025-03-15", "13090")) // net 11000

	after, err := svc.MonthSummary(context.Background(), "emp-1", 2025, time.April, "co-1")
	require.NoError(t, err)
	assert.True(t, after.CarryIn.Equal(d("100")), "carry in %s", after.CarryIn)
}

func TestMonthSummarySchemeNotFound(t *testing.T) {
	schemeRepo := &fakeSchemeRepo{}
	employeeRepo := &fakeEmployeeRepo{employee: employee.Employee{ID: "emp-1"}}
	svc := NewBonusService(schemeRepo, &fakePayoutRepo{}, &fakeEntryRepo{}, employeeRepo)

	_, err := svc.MonthSummary(context.Background(), "emp-1", 2025, time.March, "co-1")
	assert.ErrorIs(t, err, bonus.ErrSchemeNotFound)
}

func TestRecordPayout(t *testing.T) {
	svc, payoutRepo := newTestService([]timesheet.DailyEntry{
		entryOn("2025-03-10", "13328"),
	}, nil)

	got, err := svc.RecordPayout(context.Background(), "emp-1", 2025, time.March, "120", "co-1")
	require.NoError(t, err)

	require.Len(t, payoutRepo.payouts, 1)
	assert.True(t, got.PaidOut.Equal(d("120")), "paid %s", got.PaidOut)
	assert.True(t, got.AvailablePayout.Equal(d("70")), "available %s", got.AvailablePayout)
}

func TestRecordPayoutRejectsNonPositiveAmount(t *testing.T) {
	svc, payoutRepo := newTestService(nil, nil)

	_, err := svc.RecordPayout(context.Background(), "emp-1", 2025, time.March, "-10", "co-1")
	assert.Error(t, err)
	assert.Empty(t, payoutRepo.payouts)
}

func TestSaveSchemeValidates(t *testing.T) {
	schemeRepo := &fakeSchemeRepo{}
	svc := NewBonusService(schemeRepo, &fakePayoutRepo{}, &fakeEntryRepo{}, &fakeEmployeeRepo{})

	_, err := svc.SaveScheme(context.Background(), bonus.Scheme{Kind: "percentage"})
	assert.ErrorIs(t, err, bonus.ErrInvalidSchemeKind)
	assert.False(t, schemeRepo.found)

	saved, err := svc.SaveScheme(context.Background(), bonus.Scheme{Kind: bonus.SchemeLinear, Percent: d("5")})
	require.NoError(t, err)
	assert.Equal(t, bonus.SchemeLinear, saved.Kind)
}
