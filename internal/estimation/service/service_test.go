package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"scopeworks_backend/internal/estimation/precedent"
	"scopeworks_backend/internal/estimation/standards"
	"scopeworks_backend/platform/logger"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int64) *int64     { return &v }
func sptr(v string) *string   { return &v }

type fakeIntake struct{ snap SessionSnapshot }

func (f *fakeIntake) Snapshot(context.Context, uuid.UUID) (SessionSnapshot, error) {
	return f.snap, nil
}

type fakeEstimates struct {
	manHours  float64
	costCents int64
	calls     int
}

func (f *fakeEstimates) SaveEstimate(_ context.Context, _ uuid.UUID, manHours float64, costCents int64) error {
	f.manHours = manHours
	f.costCents = costCents
	f.calls++
	return nil
}

type fakeStandards struct{ rows []standards.ProductionStandard }

func (f *fakeStandards) ListForCategory(context.Context, string, string) ([]standards.ProductionStandard, error) {
	return f.rows, nil
}

type fakePrecedents struct{ rows []precedent.Precedent }

func (f *fakePrecedents) ListForCategory(context.Context, string, string, int) ([]precedent.Precedent, error) {
	return f.rows, nil
}

type fakeCfg struct{ pct int }

func (f fakeCfg) GetUrgencyFeePercent() int { return f.pct }

func leakSnapshot() SessionSnapshot {
	return SessionSnapshot{
		ID:            uuid.New(),
		Description:   "leaking pipe under the kitchen sink",
		Address:       sptr("123 Main St, Dallas, TX 75201"),
		Status:        "ready_for_scope",
		ServiceIntent: "service",
		ServiceType:   "Plumbing",
		Subcategory:   "Leak Repair",
		Confidence:    0.85,
		Answers:       map[string]string{"location": "kitchen"},
	}
}

func leakStandards() []standards.ProductionStandard {
	return []standards.ProductionStandard{
		{ItemDescription: "Locate and expose leak", UnitOfMeasure: "each", LaborHoursPerUnit: fptr(1.0)},
		{ItemDescription: "Replace damaged pipe section", UnitOfMeasure: "each", LaborHoursPerUnit: fptr(1.5), MaterialCostCents: iptr(4500)},
	}
}

func newService(intake *fakeIntake, std *fakeStandards, prec *fakePrecedents, est *fakeEstimates, pct int) *Service {
	return New(intake, est, std, prec, fakeCfg{pct: pct}, logger.New("test"))
}

func TestGenerateScopeStandardsOnly(t *testing.T) {
	est := &fakeEstimates{}
	svc := newService(&fakeIntake{snap: leakSnapshot()}, &fakeStandards{rows: leakStandards()}, &fakePrecedents{}, est, 25)

	scope, err := svc.GenerateScope(context.Background(), uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if scope.EstimatedManHours != 2.5 {
		t.Fatalf("expected 2.5 hours, got %v", scope.EstimatedManHours)
	}
	// Dallas TX multiplier 1.00, Plumbing rate 9500/h: 2.5*9500 = 23750.
	if scope.Cost.LaborCents != 23750 {
		t.Fatalf("expected labor 23750, got %d", scope.Cost.LaborCents)
	}
	if scope.Cost.MaterialCents != 4500 {
		t.Fatalf("expected material 4500, got %d", scope.Cost.MaterialCents)
	}
	if scope.Cost.SubtotalCents != 28250 {
		t.Fatalf("expected subtotal 28250, got %d", scope.Cost.SubtotalCents)
	}
	// Plumbing is not registered as taxable in TX.
	if scope.Tax.IsTaxable || scope.Cost.TaxCents != 0 {
		t.Fatalf("expected no tax, got %+v", scope.Tax)
	}
	want := []string{"production_standards"}
	if !reflect.DeepEqual(scope.Diagnostics.DataSourcesUsed, want) {
		t.Fatalf("expected %v, got %v", want, scope.Diagnostics.DataSourcesUsed)
	}
	if len(scope.Clarifications) != 0 {
		t.Fatalf("unexpected clarifications: %v", scope.Clarifications)
	}
	if est.calls != 1 || est.costCents != scope.Cost.TotalCents {
		t.Fatalf("estimate writeback mismatch: %+v vs %d", est, scope.Cost.TotalCents)
	}
}

func TestGenerateScopeUrgencySurchargeNotTaxed(t *testing.T) {
	snap := leakSnapshot()
	snap.Urgent = true
	snap.ServiceType = "Cleaning"
	snap.Subcategory = "Deep Cleaning"
	stds := []standards.ProductionStandard{
		{ItemDescription: "Deep clean", UnitOfMeasure: "job", LaborHoursPerUnit: fptr(4.0), MaterialCostCents: iptr(2000)},
	}
	svc := newService(&fakeIntake{snap: snap}, &fakeStandards{rows: stds}, &fakePrecedents{}, &fakeEstimates{}, 25)

	scope, err := svc.GenerateScope(context.Background(), uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	// Cleaning rate 5500/h * 4h * 1.00 = 22000 labor + 2000 material.
	if scope.Cost.SubtotalCents != 24000 {
		t.Fatalf("expected subtotal 24000, got %d", scope.Cost.SubtotalCents)
	}
	// Cleaning is taxable in TX at 6.25%: tax on subtotal only.
	if scope.Tax.TaxableCents != 24000 {
		t.Fatalf("urgency fee must stay out of the taxable amount, got %d", scope.Tax.TaxableCents)
	}
	if scope.Cost.TaxCents != 1500 {
		t.Fatalf("expected tax 1500, got %d", scope.Cost.TaxCents)
	}
	if scope.Cost.UrgencyFeeCents != 6000 {
		t.Fatalf("expected 25%% urgency fee 6000, got %d", scope.Cost.UrgencyFeeCents)
	}
	if scope.Cost.TotalCents != 24000+1500+6000 {
		t.Fatalf("total mismatch: %d", scope.Cost.TotalCents)
	}
}

func TestGenerateScopeNoStandardsYieldsClarification(t *testing.T) {
	svc := newService(&fakeIntake{snap: leakSnapshot()}, &fakeStandards{}, &fakePrecedents{}, &fakeEstimates{}, 25)

	scope, err := svc.GenerateScope(context.Background(), uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if len(scope.Clarifications) == 0 {
		t.Fatal("missing standards must surface a clarification, not silent zeros")
	}
	if len(scope.Diagnostics.DataSourcesUsed) != 0 {
		t.Fatalf("no data source should be claimed: %v", scope.Diagnostics.DataSourcesUsed)
	}
}

func TestGenerateScopePrecedentsBlend(t *testing.T) {
	now := time.Now()
	precs := []precedent.Precedent{
		{StructuredAnswers: map[string]string{"location": "kitchen"}, ActualManHours: fptr(5.0), ActualCostCents: iptr(50000), AccuracyScore: fptr(0.9), CompletedAt: now},
	}
	svc := newService(&fakeIntake{snap: leakSnapshot()}, &fakeStandards{rows: leakStandards()}, &fakePrecedents{rows: precs}, &fakeEstimates{}, 25)

	scope, err := svc.GenerateScope(context.Background(), uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	// 2.5*0.7 + 5.0*0.3 = 3.25
	if scope.EstimatedManHours != 3.25 {
		t.Fatalf("expected blended 3.25 hours, got %v", scope.EstimatedManHours)
	}
	want := []string{"production_standards", "historical_jobs"}
	if !reflect.DeepEqual(scope.Diagnostics.DataSourcesUsed, want) {
		t.Fatalf("expected %v, got %v", want, scope.Diagnostics.DataSourcesUsed)
	}
	if scope.Diagnostics.PrecedentRange == nil || scope.Diagnostics.PrecedentRange.JobCount != 1 {
		t.Fatalf("expected precedent range, got %+v", scope.Diagnostics.PrecedentRange)
	}
}

func TestGenerateScopeIdempotent(t *testing.T) {
	svc := newService(&fakeIntake{snap: leakSnapshot()}, &fakeStandards{rows: leakStandards()}, &fakePrecedents{}, &fakeEstimates{}, 25)

	first, err := svc.GenerateScope(context.Background(), uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.GenerateScope(context.Background(), uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if first.Cost != second.Cost {
		t.Fatalf("cost figures differ across identical runs: %+v vs %+v", first.Cost, second.Cost)
	}
	if first.EstimatedManHours != second.EstimatedManHours {
		t.Fatalf("hours differ: %v vs %v", first.EstimatedManHours, second.EstimatedManHours)
	}
}

func TestGenerateScopeMissingRequiredAnswers(t *testing.T) {
	snap := leakSnapshot()
	snap.MissingRequired = []string{"Where is the leak located?"}
	svc := newService(&fakeIntake{snap: snap}, &fakeStandards{rows: leakStandards()}, &fakePrecedents{}, &fakeEstimates{}, 25)

	scope, err := svc.GenerateScope(context.Background(), uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if len(scope.Clarifications) != 1 {
		t.Fatalf("expected one clarification, got %v", scope.Clarifications)
	}
}

func TestGenerateScopeRegionalAppliesLaborOnly(t *testing.T) {
	snap := leakSnapshot()
	snap.Address = sptr("456 Oak Ave, San Francisco, CA 94110")
	svc := newService(&fakeIntake{snap: snap}, &fakeStandards{rows: leakStandards()}, &fakePrecedents{}, &fakeEstimates{}, 25)

	scope, err := svc.GenerateScope(context.Background(), uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if scope.Regional.Multiplier != 1.25 || scope.Regional.AdjustmentPercent != 25 {
		t.Fatalf("unexpected regional note: %+v", scope.Regional)
	}
	// 2.5h * 9500 * 1.25 = 29688 (half-up), materials unchanged.
	if scope.Cost.LaborCents != 29688 {
		t.Fatalf("expected labor 29688, got %d", scope.Cost.LaborCents)
	}
	if scope.Cost.MaterialCents != 4500 {
		t.Fatalf("materials must not be regionally adjusted, got %d", scope.Cost.MaterialCents)
	}
}
