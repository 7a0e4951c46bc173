package dispatcher

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/registry"
	"github.com/noah-isme/educa-portal/internal/validation"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

type tokens map[string]string

func (t tokens) Token(_ context.Context, sid string) (string, error) {
	tok, ok := t[sid]
	if !ok {
		return "", appErrors.ErrMissingCredential
	}
	return tok, nil
}

type countingObserver struct {
	outcomes []string
}

func (o *countingObserver) ObserveAction(_, _, outcome string) {
	o.outcomes = append(o.outcomes, outcome)
}

func newDispatcher(obs *countingObserver) *Dispatcher {
	return New(tokens{"sid": "tok"}, validation.New(), zap.NewNop(), WithObserver(obs))
}

func enrollmentRegistry(ids ...models.ID) *registry.Registry[models.Enrollment] {
	reg := registry.New("enrollments", "tok", models.EnrollmentID, registry.Source[models.Enrollment]{}, zap.NewNop())
	items := make([]models.Enrollment, 0, len(ids))
	for _, id := range ids {
		items = append(items, models.Enrollment{ID: id, ReferenciaPago: "#" + id.String()})
	}
	reg.Load(items)
	return reg
}

func ids(items []models.Enrollment) []models.ID {
	out := make([]models.ID, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestDispatchSuccessAppliesAndNotifies(t *testing.T) {
	obs := &countingObserver{}
	d := newDispatcher(obs)
	var gotToken string
	applied := false

	res := d.Dispatch(context.Background(), "sid", Action{
		Kind: KindTransition,
		Name: "approve_enrollment",
		Do: func(_ context.Context, token string) (string, error) {
			gotToken = token
			return "", nil
		},
		Apply:   func() { applied = true },
		Success: "Inscripción aprobada correctamente.",
	})

	require.NoError(t, res.Err)
	assert.Equal(t, "tok", gotToken)
	assert.True(t, applied)
	require.NotNil(t, res.Notice)
	assert.Equal(t, models.NoticeSuccess, res.Notice.Level)
	assert.Equal(t, "Inscripción aprobada correctamente.", res.Notice.Message)
	assert.Equal(t, []string{OutcomeSuccess}, obs.outcomes)
}

func TestDispatchFailureUsesServerMessageAndLeavesStateAlone(t *testing.T) {
	d := newDispatcher(&countingObserver{})
	applied := false

	res := d.Dispatch(context.Background(), "sid", Action{
		Kind: KindCreate,
		Name: "create_course",
		Do: func(context.Context, string) (string, error) {
			return "", appErrors.Upstream(http.StatusConflict, "El código ya existe", nil)
		},
		Apply: func() { applied = true },
	})

	assert.Error(t, res.Err)
	assert.False(t, applied)
	require.NotNil(t, res.Notice)
	assert.Equal(t, models.NoticeError, res.Notice.Level)
	assert.Equal(t, "El código ya existe", res.Notice.Message)
}

func TestDispatchFailureFallsBackToGenericMessage(t *testing.T) {
	d := newDispatcher(&countingObserver{})

	res := d.Dispatch(context.Background(), "sid", Action{
		Kind: KindDelete,
		Name: "delete_course",
		Do:   func(context.Context, string) (string, error) { return "", errors.New("boom") },
	})

	require.NotNil(t, res.Notice)
	assert.Equal(t, appErrors.GenericMessage, res.Notice.Message)
}

func TestDispatchWithoutCredentialIsNotAttempted(t *testing.T) {
	obs := &countingObserver{}
	d := newDispatcher(obs)
	called := false

	res := d.Dispatch(context.Background(), "unknown", Action{
		Kind: KindCreate,
		Name: "create_course",
		Do:   func(context.Context, string) (string, error) { called = true; return "", nil },
	})

	assert.ErrorIs(t, res.Err, appErrors.ErrMissingCredential)
	assert.Nil(t, res.Notice)
	assert.False(t, called)
	assert.Equal(t, []string{OutcomeNoSession}, obs.outcomes)
}

func TestInvalidEnrollmentIssuesNoRequest(t *testing.T) {
	d := newDispatcher(&countingObserver{})
	called := false

	res := d.Dispatch(context.Background(), "sid", Action{
		Kind: KindCreate,
		Name: "create_enrollment",
		Payload: dto.EnrollmentForm{
			ReferenciaPago:  "123456",
			FechaExpedicion: "2024-06-01",
			Banco:           "Banesco",
			Monto:           "100",
			SeccionID:       "10",
		},
		Do: func(context.Context, string) (string, error) { called = true; return "", nil },
	})

	require.ErrorIs(t, res.Err, appErrors.ErrValidation)
	assert.False(t, called)
	var appErr *appErrors.Error
	require.True(t, errors.As(res.Err, &appErr))
	assert.Equal(t, "La referencia debe comenzar con #", appErr.Fields["referenciaPago"])
}

func TestApproveStudentChangesOnlyThatStudent(t *testing.T) {
	d := newDispatcher(&countingObserver{})
	roster := registry.New("roster", "tok", models.StudentID, registry.Source[models.Student]{}, zap.NewNop())
	roster.Load([]models.Student{
		{ID: 1, Nombre: "Ana", Aprobado: models.StudentFailed},
		{ID: 2, Nombre: "Luis"},
		{ID: 3, Nombre: "Eva", Aprobado: models.StudentPassed},
	})

	res := d.Dispatch(context.Background(), "sid", Action{
		Kind: KindTransition,
		Name: "pass_student",
		Do:   func(context.Context, string) (string, error) { return "", nil },
		Apply: func() {
			roster.Mutate(2, func(s models.Student) models.Student { return s.WithStatus(models.StudentPassed) })
		},
		Success: "Estudiante aprobado.",
	})

	require.NoError(t, res.Err)
	students := roster.Items()
	assert.Equal(t, models.StudentFailed, students[0].Status())
	assert.Equal(t, models.StudentPassed, students[1].Status())
	assert.Equal(t, models.StudentPassed, students[2].Status())
	assert.Equal(t, "Estudiante aprobado.", res.Notice.Message)
}

func TestOptimisticDeleteConfirmed(t *testing.T) {
	d := newDispatcher(&countingObserver{})
	reg := enrollmentRegistry(1, 2, 3)
	var seenDuringRequest []models.ID

	res := d.Dispatch(context.Background(), "sid", Action{
		Kind:       KindDelete,
		Name:       "delete_enrollment",
		Optimistic: RemoveOptimistically(reg, 2),
		Do: func(context.Context, string) (string, error) {
			seenDuringRequest = ids(reg.Items())
			return "Inscripción eliminada correctamente.", nil
		},
	})

	require.NoError(t, res.Err)
	assert.NotEmpty(t, res.OpID)
	assert.Equal(t, []models.ID{1, 3}, seenDuringRequest)
	assert.Equal(t, []models.ID{1, 3}, ids(reg.Items()))
	assert.Empty(t, d.Log().Pending())
}

func TestOptimisticDeleteRolledBackOnServerRejection(t *testing.T) {
	obs := &countingObserver{}
	d := newDispatcher(obs)
	reg := enrollmentRegistry(1, 2, 3)

	res := d.Dispatch(context.Background(), "sid", Action{
		Kind:       KindDelete,
		Name:       "delete_enrollment",
		Optimistic: RemoveOptimistically(reg, 2),
		Do: func(context.Context, string) (string, error) {
			return "", appErrors.Upstream(http.StatusConflict, "La inscripción ya fue aprobada", nil)
		},
	})

	assert.Error(t, res.Err)
	assert.False(t, res.Pending)
	assert.Equal(t, []models.ID{1, 2, 3}, ids(reg.Items()))
	assert.Empty(t, d.Log().Pending())
	assert.Equal(t, "La inscripción ya fue aprobada", res.Notice.Message)
	assert.Equal(t, []string{OutcomeRejected}, obs.outcomes)
}

func TestOptimisticDeleteStaysPendingWhenUnreachable(t *testing.T) {
	obs := &countingObserver{}
	d := newDispatcher(obs)
	reg := enrollmentRegistry(1, 2, 3)

	res := d.Dispatch(context.Background(), "sid", Action{
		Kind:       KindDelete,
		Name:       "delete_enrollment",
		Optimistic: RemoveOptimistically(reg, 2),
		Do: func(context.Context, string) (string, error) {
			return "", appErrors.Wrap(errors.New("dial tcp: refused"), appErrors.ErrUnreachable.Code, appErrors.ErrUnreachable.Status, appErrors.GenericMessage)
		},
	})

	assert.True(t, res.Pending)
	assert.Equal(t, []models.ID{1, 3}, ids(reg.Items()))
	pending := d.Log().Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, res.OpID, pending[0].ID)
	assert.Equal(t, EntryPending, pending[0].State)
	assert.Equal(t, []string{OutcomePending}, obs.outcomes)

	// the undo was released with the request, settling only forgets the entry
	require.True(t, d.Log().Rollback(res.OpID))
	assert.Equal(t, []models.ID{1, 3}, ids(reg.Items()))
	assert.Empty(t, d.Log().Pending())
}

func TestLocalRemoveIsExactRegardlessOfServer(t *testing.T) {
	d := newDispatcher(&countingObserver{})
	for _, serverErr := range []error{nil, appErrors.Upstream(http.StatusInternalServerError, "", nil)} {
		reg := enrollmentRegistry(4, 5, 6, 7)

		removed := reg.Remove(6)
		d.Dispatch(context.Background(), "sid", Action{
			Kind: KindDelete,
			Name: "delete_enrollment",
			Do:   func(context.Context, string) (string, error) { return "", serverErr },
		})

		assert.Equal(t, 1, removed)
		assert.Equal(t, []models.ID{4, 5, 7}, ids(reg.Items()))
	}
}

func TestLogEvictsOldestPending(t *testing.T) {
	l := NewLog(2)
	tick := time.Unix(0, 0)
	l.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	first := l.Record("a", nil)
	l.Record("b", nil)
	l.Record("c", nil)

	assert.Len(t, l.Pending(), 2)
	assert.False(t, l.Confirm(first))
}

func TestLogReleaseDropsUndo(t *testing.T) {
	l := NewLog(0)
	undone := false
	id := l.Record("delete_enrollment", func() { undone = true })

	require.True(t, l.Release(id))
	assert.Nil(t, l.entries[id].undo)
	require.Len(t, l.Pending(), 1)

	require.True(t, l.Rollback(id))
	assert.False(t, undone)
	assert.False(t, l.Release("missing"))
}

func TestLogExpiresStalePending(t *testing.T) {
	l := NewLog(0)
	current := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }
	stale := l.Record("delete_enrollment", nil)

	current = current.Add(defaultLogTTL + time.Second)
	fresh := l.Record("delete_certificate", nil)

	pending := l.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, fresh, pending[0].ID)
	assert.False(t, l.Confirm(stale))
}
