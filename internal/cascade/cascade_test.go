package cascade

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/internal/models"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

func intPtr(v int) *int { return &v }

func roster(n int) []models.Student {
	out := make([]models.Student, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, models.Student{ID: models.ID(i), Nombre: "Estudiante"})
	}
	return out
}

func progFixture() map[models.ID][]models.Section {
	return map[models.ID][]models.Section{
		1: {
			{ID: 10, Codigo: "PROG101-A", Capacidad: 30, CursoID: 1, EstudiantesInscritos: intPtr(25)},
			{ID: 11, Codigo: "PROG101-B", Capacidad: 20, CursoID: 1, HorarioID: idPtr(5)},
		},
		2: {},
	}
}

func idPtr(v models.ID) *models.ID { return &v }

func TestZeroSectionCourseLeavesPanelsEmpty(t *testing.T) {
	c := New(Loaders{Sections: Preloaded(progFixture())}, zap.NewNop())

	require.NoError(t, c.SelectCourse(context.Background(), 2))
	snap := c.Snapshot()

	assert.Equal(t, CourseSelected, snap.State)
	assert.Empty(t, snap.Sections)
	assert.Empty(t, snap.Students)
	assert.Nil(t, snap.Schedule)
	assert.Equal(t, ScheduleUnselected, snap.SchedulePanel)
	assert.Nil(t, snap.Capacity)
}

func TestCapacityOfSelectedSection(t *testing.T) {
	c := New(Loaders{
		Sections: Preloaded(progFixture()),
		Roster: func(context.Context, models.Section) ([]models.Student, error) {
			return roster(25), nil
		},
	}, zap.NewNop())

	require.NoError(t, c.SelectCourse(context.Background(), 1))
	require.NoError(t, c.SelectSection(context.Background(), 10))

	capacity, ok := c.Capacity()
	require.True(t, ok)
	assert.Equal(t, Capacity{Inscritos: 25, Disponibles: 5}, capacity)
	assert.Equal(t, SectionSelected, c.State())
	assert.Len(t, c.Snapshot().Students, 25)
}

func TestCapacityFallsBackToRosterAndClampsAtZero(t *testing.T) {
	sections := map[models.ID][]models.Section{
		1: {{ID: 10, Codigo: "PROG101-A", Capacidad: 3, CursoID: 1}},
	}
	c := New(Loaders{
		Sections: Preloaded(sections),
		Roster: func(context.Context, models.Section) ([]models.Student, error) {
			return roster(4), nil
		},
	}, zap.NewNop())

	require.NoError(t, c.SelectCourse(context.Background(), 1))
	require.NoError(t, c.SelectSection(context.Background(), 10))

	capacity, _ := c.Capacity()
	assert.Equal(t, Capacity{Inscritos: 4, Disponibles: 0}, capacity)
}

func TestSectionWithoutScheduleIsExplicitNone(t *testing.T) {
	scheduleCalls := 0
	c := New(Loaders{
		Sections: Preloaded(progFixture()),
		Schedule: func(context.Context, models.Section) (*models.Schedule, error) {
			scheduleCalls++
			return &models.Schedule{ID: 5, HoraInicio: "08:00", HoraFin: "10:00"}, nil
		},
	}, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, c.SelectCourse(ctx, 1))

	require.NoError(t, c.SelectSection(ctx, 10))
	assert.Equal(t, ScheduleNone, c.Snapshot().SchedulePanel)
	assert.Zero(t, scheduleCalls)

	require.NoError(t, c.SelectSection(ctx, 11))
	snap := c.Snapshot()
	assert.Equal(t, ScheduleLoaded, snap.SchedulePanel)
	require.NotNil(t, snap.Schedule)
	assert.Equal(t, models.ID(5), snap.Schedule.ID)
}

func TestSectionFiltersByCode(t *testing.T) {
	c := New(Loaders{
		Sections: Preloaded(progFixture()),
		Enrollments: func(context.Context) ([]models.Enrollment, error) {
			return []models.Enrollment{
				{ID: 1, CodigoSeccion: "PROG101-A"},
				{ID: 2, CodigoSeccion: "PROG101-B"},
			}, nil
		},
		Certificates: func(context.Context) ([]models.Certificate, error) {
			return []models.Certificate{
				{ID: 7, CodigoSeccion: "PROG101-B"},
				{ID: 8, CodigoSeccion: "PROG101-A"},
			}, nil
		},
	}, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, c.SelectCourse(ctx, 1))
	require.NoError(t, c.SelectSection(ctx, 10))

	snap := c.Snapshot()
	require.Len(t, snap.Enrollments, 1)
	assert.Equal(t, models.ID(1), snap.Enrollments[0].ID)
	require.Len(t, snap.Certificates, 1)
	assert.Equal(t, models.ID(8), snap.Certificates[0].ID)
}

func TestChangingCourseResetsDownstream(t *testing.T) {
	c := New(Loaders{
		Sections: Preloaded(progFixture()),
		Roster: func(context.Context, models.Section) ([]models.Student, error) {
			return roster(2), nil
		},
	}, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, c.SelectCourse(ctx, 1))
	require.NoError(t, c.SelectSection(ctx, 10))

	require.NoError(t, c.SelectCourse(ctx, 0))
	snap := c.Snapshot()
	assert.Equal(t, NoCourse, snap.State)
	assert.Empty(t, snap.Sections)
	assert.Empty(t, snap.Students)
	assert.Equal(t, ScheduleUnselected, snap.SchedulePanel)

	_, ok := c.Section()
	assert.False(t, ok)
}

func TestSelectSectionRequiresCourse(t *testing.T) {
	c := New(Loaders{Sections: Preloaded(progFixture())}, zap.NewNop())

	err := c.SelectSection(context.Background(), 10)
	assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)

	require.NoError(t, c.SelectCourse(context.Background(), 1))
	err = c.SelectSection(context.Background(), 99)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestSectionFetchFailureKeepsSectionUnselected(t *testing.T) {
	c := New(Loaders{
		Sections: Preloaded(progFixture()),
		Roster: func(context.Context, models.Section) ([]models.Student, error) {
			return nil, errors.New("boom")
		},
	}, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, c.SelectCourse(ctx, 1))

	assert.Error(t, c.SelectSection(ctx, 10))
	assert.Equal(t, CourseSelected, c.State())
	assert.Len(t, c.Snapshot().Sections, 2)
}

func TestLateCourseResultIsIgnored(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	c := New(Loaders{
		Sections: func(_ context.Context, courseID models.ID) ([]models.Section, error) {
			if courseID == 1 {
				close(started)
				<-release
				return progFixture()[1], nil
			}
			return []models.Section{{ID: 30, Codigo: "MAT200-A", Capacidad: 10, CursoID: courseID}}, nil
		},
	}, zap.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, c.SelectCourse(ctx, 1))
	}()
	<-started
	require.NoError(t, c.SelectCourse(ctx, 3))
	close(release)
	wg.Wait()

	snap := c.Snapshot()
	assert.Equal(t, models.ID(3), snap.CourseID)
	require.Len(t, snap.Sections, 1)
	assert.Equal(t, "MAT200-A", snap.Sections[0].Codigo)
}

func TestUpdateStudentTouchesOnlyTarget(t *testing.T) {
	c := New(Loaders{
		Sections: Preloaded(progFixture()),
		Roster: func(context.Context, models.Section) ([]models.Student, error) {
			return roster(3), nil
		},
	}, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, c.SelectCourse(ctx, 1))
	require.NoError(t, c.SelectSection(ctx, 10))

	ok := c.UpdateStudent(2, func(s models.Student) models.Student {
		return s.WithStatus(models.StudentPassed)
	})
	require.True(t, ok)

	students := c.Snapshot().Students
	assert.Equal(t, models.StudentStatus(""), students[0].Status())
	assert.Equal(t, models.StudentPassed, students[1].Status())
	assert.Equal(t, models.StudentStatus(""), students[2].Status())
}
