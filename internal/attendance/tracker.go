package attendance

import (
	"context"
	"fmt"
	"sync"
	"time"

	autherrors "go-erp/internal/auth/errors"
	"go-erp/internal/domain"
	"go-erp/internal/employee"
	"go-erp/internal/shared/contextutil"

	"go.uber.org/zap"
)

// Outcome is the result of one scan transition.
type Outcome struct {
	Record    Record
	Persisted bool
}

// Tracker owns the per-day attendance state of this process. Days are loaded
// lazily from the repository; employees without a row get a local placeholder.
type Tracker struct {
	repo Repository
	loc  *time.Location

	mu      sync.Mutex
	days    map[string]map[int64]*Record
	loaded  map[string]bool
	localID int64

	// scanned[date][employee] is the generation of the last scan written
	// locally. Loads that started before that generation skip the employee.
	gen     uint64
	scanned map[string]map[int64]uint64

	// scanMu serializes scans so two in the same instant toggle twice.
	scanMu sync.Mutex

	logger *zap.Logger
}

func NewTracker(repo Repository, loc *time.Location, logger ...*zap.Logger) *Tracker {
	l := zap.L().Named("attendance.tracker")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.tracker")
	}
	if loc == nil {
		loc = time.Local
	}
	return &Tracker{
		repo:   repo,
		loc:    loc,
		days:    make(map[string]map[int64]*Record),
		loaded:  make(map[string]bool),
		scanned: make(map[string]map[int64]uint64),
		logger:  l,
	}
}

// Date formats now as a calendar day in the tracker's zone.
func (t *Tracker) Date(now time.Time) string {
	return now.In(t.loc).Format(dateLayout)
}

// load merges the persisted rows for date into the day map. A failed load
// leaves the day unloaded so the next call retries. Records scanned after
// the load started are kept over the fetched rows.
func (t *Tracker) load(ctx context.Context, date string) {
	t.mu.Lock()
	done := t.loaded[date]
	startGen := t.gen
	t.mu.Unlock()
	if done {
		return
	}

	rows, err := t.repo.FindByDate(ctx, date)
	if err != nil {
		contextutil.GetLogger(ctx, t.logger).Warn("load attendance day failed, using local records",
			zap.String("date", date),
			zap.Error(err),
		)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	day := t.dayLocked(date)
	for i := range rows {
		rec := rows[i]
		if t.scanned[date][rec.EmployeeID] > startGen {
			continue
		}
		rec.Persisted = true
		day[rec.EmployeeID] = &rec
	}
	t.loaded[date] = true
}

// dayLocked returns the record map for date. Opening a new day drops every
// earlier one.
func (t *Tracker) dayLocked(date string) map[int64]*Record {
	day, ok := t.days[date]
	if ok {
		return day
	}
	for d := range t.days {
		if d < date {
			delete(t.days, d)
			delete(t.loaded, d)
			delete(t.scanned, d)
		}
	}
	day = make(map[int64]*Record)
	t.days[date] = day
	return day
}

// Days reports how many calendar days the tracker currently holds.
func (t *Tracker) Days() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.days)
}

// EnsureTodayRecord returns the record for (emp, date), synthesizing and
// registering a checked-in placeholder when none exists.
func (t *Tracker) EnsureTodayRecord(ctx context.Context, emp employee.Employee, date string) Record {
	t.load(ctx, date)

	t.mu.Lock()
	defer t.mu.Unlock()

	day := t.dayLocked(date)
	if rec, ok := day[emp.ID]; ok {
		return *rec
	}

	// Local ids are negative so they never collide with gateway ids.
	t.localID--
	rec := &Record{
		ID:             t.localID,
		EmployeeID:     emp.ID,
		EmployeeName:   emp.Name,
		Department:     emp.Department,
		AttendanceDate: date,
		Status:         StatusCheckedIn,
		CreatedAt:      time.Now(),
	}
	day[emp.ID] = rec
	return *rec
}

// Scan toggles today's record for emp and upserts it. A failed write keeps
// the local change and reports Persisted=false.
func (t *Tracker) Scan(ctx context.Context, viewer *domain.Viewer, emp employee.Employee, now time.Time) (Outcome, error) {
	if viewer == nil {
		return Outcome{}, autherrors.ErrNotAuthenticated
	}
	log := contextutil.GetLogger(ctx, t.logger)

	t.scanMu.Lock()
	defer t.scanMu.Unlock()

	local := now.In(t.loc)
	date := local.Format(dateLayout)
	clock := local.Format(timeLayout)

	cur := t.EnsureTodayRecord(ctx, emp, date)
	next := transition(cur, clock)
	next.EmployeeName = emp.Name
	next.Department = emp.Department
	next.Note = scanNote
	if next.CreatedAt.IsZero() {
		next.CreatedAt = now
	}

	row := next
	if row.ID < 0 {
		row.ID = 0
	}

	persisted := true
	if err := t.repo.Upsert(ctx, &row); err != nil {
		persisted = false
		log.Warn("persist attendance scan failed, kept locally",
			zap.Int64("employee_id", emp.ID),
			zap.String("date", date),
			zap.Error(err),
		)
	} else {
		next.ID = row.ID
		next.Persisted = true
	}

	t.mu.Lock()
	stored := next
	t.dayLocked(date)[emp.ID] = &stored
	t.gen++
	marks, ok := t.scanned[date]
	if !ok {
		marks = make(map[int64]uint64)
		t.scanned[date] = marks
	}
	marks[emp.ID] = t.gen
	t.mu.Unlock()

	log.Info("attendance scanned",
		zap.Int64("employee_id", emp.ID),
		zap.Int64("scanned_by", viewer.ID),
		zap.String("status", string(next.Status)),
		zap.Bool("persisted", persisted),
	)
	return Outcome{Record: next, Persisted: persisted}, nil
}

// transition applies one scan: a fresh placeholder checks in, a checked-in
// record checks out, and any other status checks in again.
func transition(cur Record, clock string) Record {
	next := cur
	switch {
	case cur.placeholder():
		next.Status = StatusCheckedIn
		next.CheckInTime = &clock
	case cur.Status == StatusCheckedIn:
		next.Status = StatusCheckedOut
		next.CheckOutTime = &clock
	default:
		next.Status = StatusCheckedIn
		next.CheckInTime = &clock
	}
	return next
}

// Forget marks every day stale. The next read reloads the persisted rows over
// the local ones; placeholders and local-only scans survive until replaced.
func (t *Tracker) Forget() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loaded = make(map[string]bool)
}

func scanMessage(name string, status Status, clock string, persisted bool) string {
	msg := fmt.Sprintf("%s님 %s 처리 완료! (%s)", name, status, clock)
	if !persisted {
		msg += " - 로컬 저장"
	}
	return msg
}
