package attendance

import (
	"context"
	"strconv"
	"time"

	autherrors "go-erp/internal/auth/errors"
	"go-erp/internal/domain"
	"go-erp/internal/employee"
	"go-erp/internal/events"
	"go-erp/internal/gateway"
	"go-erp/internal/messaging/kafka"
	"go-erp/internal/permission"
	permissionerrors "go-erp/internal/permission/errors"
	"go-erp/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Service interface {
	Today(ctx context.Context, viewer domain.Viewer) ([]RecordResponse, error)
	History(ctx context.Context, viewer domain.Viewer, employeeID int64) ([]RecordResponse, error)
	IssueQR(ctx context.Context, viewer domain.Viewer) (QRCode, error)
	OpenSession(ctx context.Context, viewer domain.Viewer, device *DeviceReport) (Session, error)
	StopSession(ctx context.Context, viewer domain.Viewer, sessionID string) error
	Scan(ctx context.Context, viewer *domain.Viewer, req ScanRequest) (ScanResult, error)
	LastScan(ctx context.Context) (ScanResult, bool)
	Watch(ctx context.Context, gw gateway.Gateway) (gateway.Subscription, error)
}

type service struct {
	employees employee.Service
	repo      Repository
	tracker   *Tracker
	qr        *QRIssuer
	sessions  *Sessions
	board     *Board
	outbox    kafka.OutboxRepository
	now       func() time.Time
	logger    *zap.Logger
}

// Options configures the tracker zone, QR signing and timers.
type Options struct {
	Location    *time.Location
	QRSecret    []byte
	QRTTL       time.Duration
	SessionTTL  time.Duration
	BoardWindow time.Duration
	Outbox      kafka.OutboxRepository
	Clock       func() time.Time
}

func NewService(employees employee.Service, repo Repository, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.QRTTL <= 0 {
		opts.QRTTL = 5 * time.Minute
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 2 * time.Minute
	}

	qr := NewQRIssuer(opts.QRSecret, opts.QRTTL)
	qr.now = opts.Clock
	sessions := NewSessions(opts.SessionTTL)
	sessions.now = opts.Clock

	return &service{
		employees: employees,
		repo:      repo,
		tracker:   NewTracker(repo, opts.Location, l),
		qr:        qr,
		sessions:  sessions,
		board:     NewBoard(opts.BoardWindow),
		outbox:    opts.Outbox,
		now:       opts.Clock,
		logger:    l,
	}
}

// Today returns one record per employee the viewer may see, creating
// placeholders for employees who have not scanned yet.
func (s *service) Today(ctx context.Context, viewer domain.Viewer) ([]RecordResponse, error) {
	emps, err := s.employees.Roster(ctx)
	if err != nil {
		return nil, err
	}
	dir := employee.NewDirectory(emps)
	date := s.tracker.Date(s.now())

	res := make([]RecordResponse, 0, len(emps))
	for _, e := range emps {
		if !permission.CanView(viewer, permission.DefaultPermission(e), dir) {
			continue
		}
		res = append(res, mapToResponse(s.tracker.EnsureTodayRecord(ctx, e, date)))
	}
	return res, nil
}

func (s *service) History(ctx context.Context, viewer domain.Viewer, employeeID int64) ([]RecordResponse, error) {
	emps, err := s.employees.Roster(ctx)
	if err != nil {
		return nil, err
	}
	target, err := s.employees.Find(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !permission.CanView(viewer, permission.DefaultPermission(target), employee.NewDirectory(emps)) {
		return nil, permissionerrors.ErrCannotView
	}

	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("load attendance history failed",
			zap.Int64("employee_id", employeeID),
			zap.Error(err),
		)
		return nil, err
	}

	res := make([]RecordResponse, len(rows))
	for i, r := range rows {
		r.Persisted = true
		res[i] = mapToResponse(r)
	}
	return res, nil
}

// IssueQR signs a short-lived attendance code for the viewer.
func (s *service) IssueQR(ctx context.Context, viewer domain.Viewer) (QRCode, error) {
	emp, err := s.employees.Find(ctx, viewer.ID)
	if err != nil {
		return QRCode{}, err
	}
	code, err := s.qr.Issue(emp)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("issue qr failed", zap.Error(err))
		return QRCode{}, err
	}
	return code, nil
}

func (s *service) OpenSession(ctx context.Context, viewer domain.Viewer, device *DeviceReport) (Session, error) {
	sess, err := s.sessions.Open(viewer, device)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Info("scan session refused", zap.Error(err))
		return Session{}, err
	}
	return sess, nil
}

func (s *service) StopSession(ctx context.Context, viewer domain.Viewer, sessionID string) error {
	return s.sessions.Stop(viewer, sessionID)
}

func (s *service) Scan(ctx context.Context, viewer *domain.Viewer, req ScanRequest) (ScanResult, error) {
	if viewer == nil {
		return ScanResult{}, autherrors.ErrNotAuthenticated
	}
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := s.sessions.Active(*viewer, req.SessionID); err != nil {
		return ScanResult{}, err
	}
	claims, err := s.qr.Verify(req.QRToken)
	if err != nil {
		log.Info("qr verification failed", zap.Error(err))
		return ScanResult{}, err
	}
	emp, err := s.employees.Find(ctx, claims.EmployeeID)
	if err != nil {
		return ScanResult{}, err
	}

	now := s.now()
	out, err := s.tracker.Scan(ctx, viewer, emp, now)
	if err != nil {
		return ScanResult{}, err
	}
	_ = s.sessions.Stop(*viewer, req.SessionID)

	clock := now.In(s.tracker.loc).Format(timeLayout)
	res := ScanResult{
		Record:    mapToResponse(out.Record),
		Persisted: out.Persisted,
		Message:   scanMessage(emp.Name, out.Record.Status, clock, out.Persisted),
		ScannedAt: now,
	}
	s.board.Publish(res)
	s.recordEvent(ctx, *viewer, out, now)
	return res, nil
}

func (s *service) recordEvent(ctx context.Context, viewer domain.Viewer, out Outcome, now time.Time) {
	if s.outbox == nil {
		return
	}
	log := contextutil.GetLogger(ctx, s.logger)
	requestID := contextutil.GetRequestID(ctx)

	event, err := kafka.NewOutboxEvent(
		events.AttendanceScannedTopic,
		"attendance",
		strconv.FormatInt(out.Record.EmployeeID, 10),
		"attendance.scanned",
		requestID,
		events.AttendanceScannedEvent{
			EventType:      "attendance.scanned",
			RequestID:      requestID,
			EmployeeID:     out.Record.EmployeeID,
			AttendanceDate: out.Record.AttendanceDate,
			Status:         string(out.Record.Status),
			ScannedBy:      viewer.ID,
			Persisted:      out.Persisted,
			OccurredAt:     now.UTC(),
		},
	)
	if err == nil {
		err = s.outbox.Create(ctx, event)
	}
	if err != nil {
		log.Warn("queue attendance event failed", zap.Error(err))
	}
}

func (s *service) LastScan(ctx context.Context) (ScanResult, bool) {
	return s.board.Current()
}

// Watch marks cached days stale whenever the attendance table changes.
func (s *service) Watch(ctx context.Context, gw gateway.Gateway) (gateway.Subscription, error) {
	return gw.SubscribeChanges(ctx, gateway.TableAttendance, gateway.MaskAll, func(e gateway.ChangeEvent) {
		s.logger.Debug("attendance changed, reloading on next read", zap.String("event_id", e.EventID))
		s.tracker.Forget()
	})
}
