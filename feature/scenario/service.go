package scenario

import (
	"context"
	"errors"
	"fmt"

	"nested-models/core/events"
	"nested-models/core/model"
	"nested-models/core/reconcile"
	"nested-models/feature/scenario/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service replays scenarios on a shared model runtime.
type Service struct {
	runtime *model.Runtime
	logger  *zap.Logger
	workers int
}

// NewService creates a scenario service. workers bounds concurrent replays in
// ReplayFiles; values below one mean one.
func NewService(rt *model.Runtime, logger *zap.Logger, workers int) *Service {
	if rt == nil {
		rt = model.DefaultRuntime()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}
	return &Service{runtime: rt, logger: logger, workers: workers}
}

// ReplayFiles loads and replays every file. Each scenario runs on its own
// model graph; results keep the order of paths. The first failure cancels the
// remaining replays.
func (s *Service) ReplayFiles(ctx context.Context, paths []string) ([]*models.Result, error) {
	results := make([]*models.Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, path := range paths {
		g.Go(func() error {
			sc, err := Load(path)
			if err != nil {
				return err
			}
			res, err := s.Replay(ctx, sc)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Replay builds the root model and runs every step. Steps rejected by
// validation are recorded in the result; any other failure aborts the replay.
func (s *Service) Replay(ctx context.Context, sc *models.Scenario) (*models.Result, error) {
	sess, err := s.open(sc)
	if err != nil {
		return nil, err
	}
	if err := sess.run(ctx, sc.Steps); err != nil {
		return nil, err
	}

	sess.result.Snapshot = sess.root.ToJSON()
	sess.log.Debug("scenario replayed",
		zap.Int("steps", len(sc.Steps)),
		zap.Int("events", len(sess.result.Events)),
		zap.Int("rejected", len(sess.result.Rejected)))
	return sess.result, nil
}

// Plan replays the steps before step (1-based) and returns the plan the
// reconcile step would execute, without executing it.
func (s *Service) Plan(ctx context.Context, sc *models.Scenario, step int) (*reconcile.ReconcilePlan, error) {
	if step < 1 || step > len(sc.Steps) {
		return nil, fmt.Errorf("step %d out of range 1..%d", step, len(sc.Steps))
	}
	st := sc.Steps[step-1]
	if st.Op != models.OpReconcile {
		return nil, fmt.Errorf("step %d is %q, not %q", step, st.Op, models.OpReconcile)
	}

	sess, err := s.open(sc)
	if err != nil {
		return nil, err
	}
	if err := sess.run(ctx, sc.Steps[:step-1]); err != nil {
		return nil, err
	}
	target, err := resolvePath(sess.root, st.Path)
	if err != nil {
		return nil, fmt.Errorf("step %d: %w", step, err)
	}
	c, ok := target.(*model.Collection)
	if !ok {
		return nil, fmt.Errorf("step %d: %q is not a collection: %w", step, st.Path, ErrBadPath)
	}
	return c.Plan(st.Items), nil
}

// session is one scenario being replayed.
type session struct {
	svc    *Service
	root   *model.Model
	result *models.Result
	log    *zap.Logger
	step   int
}

func (s *Service) open(sc *models.Scenario) (*session, error) {
	reg, err := compile(sc)
	if err != nil {
		return nil, err
	}
	rootType, ok := reg.types[sc.Root]
	if !ok {
		return nil, fmt.Errorf("root %q: %w", sc.Root, ErrUnknownType)
	}
	initial, err := batchOf(&sc.Initial)
	if err != nil {
		return nil, fmt.Errorf("initial: %w", err)
	}
	root, err := s.runtime.NewFromBatch(rootType, initial)
	if err != nil {
		return nil, fmt.Errorf("failed to build root: %w", err)
	}

	sess := &session{
		svc:    s,
		root:   root,
		result: &models.Result{Name: sc.Name},
		log:    s.logger.With(zap.String("scenario", sc.Name)),
	}
	root.On(events.All, sess.record("root"))
	return sess, nil
}

func (sess *session) record(target string) events.Handler {
	return func(e events.Event) {
		sess.result.Events = append(sess.result.Events, models.EventRecord{
			Step:   sess.step,
			Target: target,
			Name:   e.Name,
			Key:    e.Key,
		})
	}
}

func (sess *session) run(ctx context.Context, steps []models.Step) error {
	for i, st := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		sess.step = i + 1

		target, err := resolvePath(sess.root, st.Path)
		if err != nil {
			return fmt.Errorf("step %d: %w", sess.step, err)
		}
		if target != any(sess.root) {
			sub := subscribe(target, sess.record(st.Path))
			err = sess.svc.apply(target, st)
			unsubscribe(target, sub)
		} else {
			err = sess.svc.apply(target, st)
		}

		switch {
		case errors.Is(err, model.ErrInvalid):
			sess.log.Debug("step rejected", zap.Int("step", sess.step), zap.Error(err))
			sess.result.Rejected = append(sess.result.Rejected, models.Rejection{
				Step:  sess.step,
				Path:  st.Path,
				Error: err.Error(),
			})
		case err != nil:
			return fmt.Errorf("step %d (%s): %w", sess.step, st.Op, err)
		}
	}
	return nil
}

func (s *Service) apply(target any, st models.Step) error {
	opts := model.Options{Silent: st.Silent}
	switch t := target.(type) {
	case *model.Model:
		switch st.Op {
		case models.OpSet:
			b, err := batchOf(&st.Attrs)
			if err != nil {
				return err
			}
			return t.SetBatch(b, opts)
		case models.OpUnset:
			return t.Unset(st.Key, opts)
		}
	case *model.Collection:
		switch st.Op {
		case models.OpReset:
			return t.Reset(st.Items, opts)
		case models.OpAdd:
			_, err := t.Add(st.Items, opts)
			return err
		case models.OpReconcile:
			summary := t.Reconcile(st.Items, opts)
			s.logger.Debug("reconciled",
				zap.Int("updates", summary.Updates),
				zap.Int("removals", summary.Removals),
				zap.Int("additions", summary.Additions))
			return nil
		case models.OpRemove:
			var drop []*model.Model
			for _, id := range st.IDs {
				if m := t.Get(id); m != nil {
					drop = append(drop, m)
				}
			}
			t.Remove(drop, opts)
			return nil
		}
	}
	return fmt.Errorf("%q on %T: %w", st.Op, target, ErrUnknownOp)
}

func subscribe(target any, fn events.Handler) events.Subscription {
	switch t := target.(type) {
	case *model.Model:
		return t.On(events.All, fn)
	case *model.Collection:
		return t.On(events.All, fn)
	}
	return 0
}

func unsubscribe(target any, sub events.Subscription) {
	switch t := target.(type) {
	case *model.Model:
		t.Off(sub)
	case *model.Collection:
		t.Off(sub)
	}
}
