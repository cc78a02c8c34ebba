package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rbcaldoza/docflows/internal/application/port"
	appwf "github.com/rbcaldoza/docflows/internal/application/workflow"
	"github.com/rbcaldoza/docflows/internal/domain/approval"
	"github.com/rbcaldoza/docflows/internal/domain/entity"
	"github.com/rbcaldoza/docflows/internal/domain/routing"
)

// In-memory fakes backing the service scenario tests. They enforce the same
// contracts the sqlite repositories do: conditional status updates and
// unique downstream documents.

type noopLogger struct{}

func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}

type memTxManager struct{}

func (memTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memRequisitionRepo struct {
	seq  int64
	rows map[int64]*entity.RequisitionSlip
}

func newMemRequisitionRepo() *memRequisitionRepo {
	return &memRequisitionRepo{rows: make(map[int64]*entity.RequisitionSlip)}
}

func (m *memRequisitionRepo) Create(ctx context.Context, slip *entity.RequisitionSlip) error {
	m.seq++
	slip.ID = m.seq
	for _, item := range slip.Items {
		item.RequisitionID = slip.ID
	}
	m.rows[slip.ID] = slip
	return nil
}

func (m *memRequisitionRepo) GetByID(ctx context.Context, id int64) (*entity.RequisitionSlip, error) {
	return m.rows[id], nil
}

func (m *memRequisitionRepo) List(ctx context.Context, limit, offset int) ([]*entity.RequisitionSlip, error) {
	var out []*entity.RequisitionSlip
	for _, slip := range m.rows {
		out = append(out, slip)
	}
	return out, nil
}

func (m *memRequisitionRepo) Update(ctx context.Context, slip *entity.RequisitionSlip) error {
	m.rows[slip.ID] = slip
	return nil
}

func (m *memRequisitionRepo) Delete(ctx context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

func (m *memRequisitionRepo) UpdateStatusIf(ctx context.Context, id int64, from, to string) error {
	slip, ok := m.rows[id]
	if !ok || slip.Status != from {
		return port.ErrConcurrentUpdate
	}
	slip.Status = to
	return nil
}

func (m *memRequisitionRepo) SetApprovalLevel(ctx context.Context, id int64, level int) error {
	if slip, ok := m.rows[id]; ok {
		slip.CurrentApprovalLevel = level
	}
	return nil
}

type memPaymentRepo struct {
	seq  int64
	rows map[int64]*entity.RequisitionForPayment
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{rows: make(map[int64]*entity.RequisitionForPayment)}
}

func (m *memPaymentRepo) Create(ctx context.Context, rfp *entity.RequisitionForPayment) error {
	m.seq++
	rfp.ID = m.seq
	m.rows[rfp.ID] = rfp
	return nil
}

func (m *memPaymentRepo) GetByID(ctx context.Context, id int64) (*entity.RequisitionForPayment, error) {
	return m.rows[id], nil
}

func (m *memPaymentRepo) List(ctx context.Context, limit, offset int) ([]*entity.RequisitionForPayment, error) {
	var out []*entity.RequisitionForPayment
	for _, rfp := range m.rows {
		out = append(out, rfp)
	}
	return out, nil
}

func (m *memPaymentRepo) Update(ctx context.Context, rfp *entity.RequisitionForPayment) error {
	m.rows[rfp.ID] = rfp
	return nil
}

func (m *memPaymentRepo) Delete(ctx context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

func (m *memPaymentRepo) UpdateStatusIf(ctx context.Context, id int64, from, to string) error {
	rfp, ok := m.rows[id]
	if !ok || rfp.Status != from {
		return port.ErrConcurrentUpdate
	}
	rfp.Status = to
	return nil
}

func (m *memPaymentRepo) SetApprovalLevel(ctx context.Context, id int64, level int) error {
	if rfp, ok := m.rows[id]; ok {
		rfp.CurrentApprovalLevel = level
	}
	return nil
}

type memVoucherRepo struct {
	seq  int64
	rows map[int64]*entity.CheckVoucher
}

func newMemVoucherRepo() *memVoucherRepo {
	return &memVoucherRepo{rows: make(map[int64]*entity.CheckVoucher)}
}

func (m *memVoucherRepo) Create(ctx context.Context, cv *entity.CheckVoucher) error {
	for _, existing := range m.rows {
		if existing.RFPID == cv.RFPID {
			return port.ErrDuplicate
		}
	}
	m.seq++
	cv.ID = m.seq
	m.rows[cv.ID] = cv
	return nil
}

func (m *memVoucherRepo) GetByID(ctx context.Context, id int64) (*entity.CheckVoucher, error) {
	return m.rows[id], nil
}

func (m *memVoucherRepo) GetByRFPID(ctx context.Context, rfpID int64) (*entity.CheckVoucher, error) {
	for _, cv := range m.rows {
		if cv.RFPID == rfpID {
			return cv, nil
		}
	}
	return nil, nil
}

func (m *memVoucherRepo) List(ctx context.Context, limit, offset int) ([]*entity.CheckVoucher, error) {
	var out []*entity.CheckVoucher
	for _, cv := range m.rows {
		out = append(out, cv)
	}
	return out, nil
}

func (m *memVoucherRepo) UpdateStatusIf(ctx context.Context, id int64, from, to string) error {
	cv, ok := m.rows[id]
	if !ok || cv.Status != from {
		return port.ErrConcurrentUpdate
	}
	cv.Status = to
	return nil
}

type memCheckRepo struct {
	seq  int64
	rows map[int64]*entity.Check
}

func newMemCheckRepo() *memCheckRepo {
	return &memCheckRepo{rows: make(map[int64]*entity.Check)}
}

func (m *memCheckRepo) Create(ctx context.Context, check *entity.Check) error {
	for _, existing := range m.rows {
		if existing.CheckVoucherID == check.CheckVoucherID {
			return port.ErrDuplicate
		}
	}
	m.seq++
	check.ID = m.seq
	m.rows[check.ID] = check
	return nil
}

func (m *memCheckRepo) GetByID(ctx context.Context, id int64) (*entity.Check, error) {
	return m.rows[id], nil
}

func (m *memCheckRepo) GetByVoucherID(ctx context.Context, voucherID int64) (*entity.Check, error) {
	for _, check := range m.rows {
		if check.CheckVoucherID == voucherID {
			return check, nil
		}
	}
	return nil, nil
}

func (m *memCheckRepo) List(ctx context.Context, limit, offset int) ([]*entity.Check, error) {
	var out []*entity.Check
	for _, check := range m.rows {
		out = append(out, check)
	}
	return out, nil
}

func (m *memCheckRepo) UpdateStatusIf(ctx context.Context, id int64, from, to string) error {
	check, ok := m.rows[id]
	if !ok || check.Status != from {
		return port.ErrConcurrentUpdate
	}
	check.Status = to
	return nil
}

func (m *memCheckRepo) SetDisbursementDate(ctx context.Context, id int64, t time.Time) error {
	if check, ok := m.rows[id]; ok {
		check.DisbursementDate = &t
	}
	return nil
}

func (m *memCheckRepo) SetVoidReason(ctx context.Context, id int64, reason string) error {
	if check, ok := m.rows[id]; ok {
		check.VoidReason = reason
	}
	return nil
}

type memRecordRepo struct {
	seq  int64
	rows []*entity.ApprovalRecord
}

func (m *memRecordRepo) Create(ctx context.Context, record *entity.ApprovalRecord) error {
	m.seq++
	record.ID = m.seq
	m.rows = append(m.rows, record)
	return nil
}

func (m *memRecordRepo) GetByEntity(ctx context.Context, entityType string, entityID int64) ([]*entity.ApprovalRecord, error) {
	var out []*entity.ApprovalRecord
	for _, record := range m.rows {
		if record.EntityType == entityType && record.EntityID == entityID {
			out = append(out, record)
		}
	}
	return out, nil
}

type memSeriesRepo struct {
	counters map[string]int64
}

func newMemSeriesRepo() *memSeriesRepo {
	return &memSeriesRepo{counters: make(map[string]int64)}
}

func (m *memSeriesRepo) Next(ctx context.Context, series string) (string, error) {
	m.counters[series]++
	return fmt.Sprintf("%s-%06d", series, m.counters[series]), nil
}

// memAuthority resolves approver levels by (actor, department) and roles by
// actor
type memAuthority struct {
	levels map[string]map[string]int
	roles  map[string][]string
}

func newMemAuthority() *memAuthority {
	return &memAuthority{
		levels: make(map[string]map[string]int),
		roles:  make(map[string][]string),
	}
}

func (m *memAuthority) grantLevel(actorID, departmentID string, level int) {
	if m.levels[actorID] == nil {
		m.levels[actorID] = make(map[string]int)
	}
	m.levels[actorID][departmentID] = level
}

func (m *memAuthority) grantRole(actorID, role string) {
	m.roles[actorID] = append(m.roles[actorID], role)
}

func (m *memAuthority) ActorHasLevel(ctx context.Context, actorID, departmentID string, level int) (bool, error) {
	return m.levels[actorID][departmentID] == level, nil
}

func (m *memAuthority) ActorHasRole(ctx context.Context, actorID, role string) (bool, error) {
	for _, r := range m.roles[actorID] {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

// fixture wires every service over the in-memory fakes with the production
// coordinator, routing table and approval policy
type fixture struct {
	requisitions *memRequisitionRepo
	payments     *memPaymentRepo
	vouchers     *memVoucherRepo
	checks       *memCheckRepo
	records      *memRecordRepo
	series       *memSeriesRepo
	authority    *memAuthority

	requisitionSvc RequisitionService
	paymentSvc     PaymentService
	voucherSvc     VoucherService
	checkSvc       CheckService
}

func newFixture() *fixture {
	f := &fixture{
		requisitions: newMemRequisitionRepo(),
		payments:     newMemPaymentRepo(),
		vouchers:     newMemVoucherRepo(),
		checks:       newMemCheckRepo(),
		records:      &memRecordRepo{},
		series:       newMemSeriesRepo(),
		authority:    newMemAuthority(),
	}

	tx := memTxManager{}
	coordinator := appwf.NewCoordinator(
		f.requisitions, f.payments, f.vouchers, f.checks,
		f.records, tx, approval.Default(),
	)
	logger := noopLogger{}
	table := routing.Default()

	f.requisitionSvc = NewRequisitionService(
		f.requisitions, f.records, f.series, f.authority, coordinator, tx, table, logger)
	f.paymentSvc = NewPaymentService(
		f.payments, f.requisitions, f.vouchers, f.records, f.series, f.authority, coordinator, tx, logger)
	f.voucherSvc = NewVoucherService(
		f.vouchers, f.payments, f.checks, f.records, f.authority, coordinator, logger)
	f.checkSvc = NewCheckService(
		f.checks, f.vouchers, f.payments, f.records, f.authority, coordinator, logger)

	return f
}

// grantApprovalChain registers the standard three approvers for a department
func (f *fixture) grantApprovalChain(departmentID string) (dept, unit, general string) {
	dept, unit, general = "mgr-dept", "mgr-unit", "mgr-general"
	f.authority.grantLevel(dept, departmentID, 1)
	f.authority.grantLevel(unit, departmentID, 2)
	f.authority.grantLevel(general, departmentID, 3)
	return dept, unit, general
}
