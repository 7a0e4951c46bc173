// Package cascade implements the course → section selection state machine
// shared by the admin, teacher, certificate and schedule views.
package cascade

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/internal/models"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

// State is the selection level.
type State string

const (
	NoCourse        State = "no_course"
	CourseSelected  State = "course_selected"
	SectionSelected State = "section_selected"
)

// SchedulePanel tells the view what to render in the schedule slot.
type SchedulePanel string

const (
	ScheduleUnselected SchedulePanel = "unselected"
	ScheduleNone       SchedulePanel = "none"
	ScheduleLoaded     SchedulePanel = "loaded"
)

// Loaders fetch the data behind each transition. Sections is required; the
// others are optional and their panels stay empty when nil.
type Loaders struct {
	Sections     func(ctx context.Context, courseID models.ID) ([]models.Section, error)
	Roster       func(ctx context.Context, section models.Section) ([]models.Student, error)
	Schedule     func(ctx context.Context, section models.Section) (*models.Schedule, error)
	Enrollments  func(ctx context.Context) ([]models.Enrollment, error)
	Certificates func(ctx context.Context) ([]models.Certificate, error)
}

// Preloaded serves sections from an already fetched set, as the schedule and
// certificate views do.
func Preloaded(byCourse map[models.ID][]models.Section) func(context.Context, models.ID) ([]models.Section, error) {
	return func(_ context.Context, courseID models.ID) ([]models.Section, error) {
		return byCourse[courseID], nil
	}
}

// Capacity is the enrolled/available split of a section.
type Capacity struct {
	Inscritos   int `json:"Inscritos"`
	Disponibles int `json:"Disponibles"`
}

// Snapshot is an immutable view of the cascade for rendering.
type Snapshot struct {
	State         State                `json:"state"`
	CourseID      models.ID            `json:"cursoId,omitempty"`
	SectionID     models.ID            `json:"seccionId,omitempty"`
	Sections      []models.Section     `json:"secciones"`
	Students      []models.Student     `json:"estudiantes"`
	SchedulePanel SchedulePanel        `json:"horarioEstado"`
	Schedule      *models.Schedule     `json:"horario,omitempty"`
	Enrollments   []models.Enrollment  `json:"inscripciones"`
	Certificates  []models.Certificate `json:"certificados"`
	Capacity      *Capacity            `json:"capacidad,omitempty"`
}

// Cascade holds the selection state of one view.
type Cascade struct {
	loaders Loaders
	logger  *zap.Logger

	mu           sync.Mutex
	gen          uint64
	state        State
	courseID     models.ID
	section      *models.Section
	sections     []models.Section
	students     []models.Student
	panel        SchedulePanel
	schedule     *models.Schedule
	enrollments  []models.Enrollment
	certificates []models.Certificate
}

// New returns a cascade with nothing selected.
func New(loaders Loaders, logger *zap.Logger) *Cascade {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cascade{loaders: loaders, logger: logger}
	c.resetLocked(NoCourse)
	return c
}

// resetLocked clears everything downstream of the course selection.
func (c *Cascade) resetLocked(state State) {
	c.state = state
	if state == NoCourse {
		c.courseID = 0
		c.sections = []models.Section{}
	}
	c.clearSectionLocked()
}

func (c *Cascade) clearSectionLocked() {
	c.section = nil
	c.students = []models.Student{}
	c.panel = ScheduleUnselected
	c.schedule = nil
	c.enrollments = []models.Enrollment{}
	c.certificates = []models.Certificate{}
}

// SelectCourse loads the sections of courseID and drops any section
// selection. A zero id deselects the course.
func (c *Cascade) SelectCourse(ctx context.Context, courseID models.ID) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	if courseID.IsZero() {
		c.resetLocked(NoCourse)
		c.mu.Unlock()
		return nil
	}
	c.resetLocked(NoCourse)
	c.mu.Unlock()

	sections, err := c.loaders.Sections(ctx, courseID)
	if err != nil {
		c.logger.Error("sections fetch failed", zap.String("curso", courseID.String()), zap.Error(err))
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		c.logger.Debug("stale course selection ignored", zap.String("curso", courseID.String()))
		return nil
	}
	c.state = CourseSelected
	c.courseID = courseID
	c.sections = append([]models.Section{}, sections...)
	return nil
}

// SelectSection loads the roster, schedule, enrollments and certificates of
// a section of the selected course. A zero id clears the section selection.
func (c *Cascade) SelectSection(ctx context.Context, sectionID models.ID) error {
	c.mu.Lock()
	if c.state == NoCourse {
		c.mu.Unlock()
		return appErrors.Clone(appErrors.ErrInvalidTransition, "seleccione un curso primero")
	}
	c.gen++
	gen := c.gen
	c.clearSectionLocked()
	c.state = CourseSelected
	if sectionID.IsZero() {
		c.mu.Unlock()
		return nil
	}
	var section *models.Section
	for i := range c.sections {
		if c.sections[i].ID == sectionID {
			s := c.sections[i]
			section = &s
			break
		}
	}
	c.mu.Unlock()
	if section == nil {
		return appErrors.Clone(appErrors.ErrNotFound, "la sección no pertenece al curso seleccionado")
	}

	students, schedule, enrollments, certificates, err := c.loadSection(ctx, *section)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		c.logger.Debug("stale section selection ignored", zap.String("seccion", sectionID.String()))
		return nil
	}
	c.state = SectionSelected
	c.section = section
	c.students = students
	c.schedule = schedule
	if schedule != nil {
		c.panel = ScheduleLoaded
	} else {
		c.panel = ScheduleNone
	}
	c.enrollments = filterEnrollments(enrollments, section.Codigo)
	c.certificates = filterCertificates(certificates, section.Codigo)
	return nil
}

// loadSection runs the independent section fetches concurrently; each one
// only writes its own result.
func (c *Cascade) loadSection(ctx context.Context, section models.Section) ([]models.Student, *models.Schedule, []models.Enrollment, []models.Certificate, error) {
	var (
		wg           sync.WaitGroup
		students     []models.Student
		schedule     *models.Schedule
		enrollments  []models.Enrollment
		certificates []models.Certificate
		errs         [4]error
	)

	students = append([]models.Student{}, section.Estudiantes...)
	if c.loaders.Roster != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			students, errs[0] = c.loaders.Roster(ctx, section)
		}()
	}

	if section.Horario != nil {
		h := *section.Horario
		schedule = &h
	} else if c.loaders.Schedule != nil && section.HasSchedule() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			schedule, errs[1] = c.loaders.Schedule(ctx, section)
		}()
	}

	if c.loaders.Enrollments != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			enrollments, errs[2] = c.loaders.Enrollments(ctx)
		}()
	}
	if c.loaders.Certificates != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			certificates, errs[3] = c.loaders.Certificates(ctx)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			c.logger.Error("section fetch failed", zap.String("seccion", section.ID.String()), zap.Error(err))
			return nil, nil, nil, nil, err
		}
	}
	if students == nil {
		students = []models.Student{}
	}
	return students, schedule, enrollments, certificates, nil
}

func filterEnrollments(in []models.Enrollment, code string) []models.Enrollment {
	out := []models.Enrollment{}
	for _, e := range in {
		if e.CodigoSeccion == code {
			out = append(out, e)
		}
	}
	return out
}

func filterCertificates(in []models.Certificate, code string) []models.Certificate {
	out := []models.Certificate{}
	for _, cert := range in {
		if cert.CodigoSeccion == code {
			out = append(out, cert)
		}
	}
	return out
}

// State returns the current selection level.
func (c *Cascade) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Section returns the selected section.
func (c *Cascade) Section() (models.Section, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.section == nil {
		return models.Section{}, false
	}
	return *c.section, true
}

// UpdateStudent applies fn to one student of the loaded roster.
func (c *Cascade) UpdateStudent(studentID models.ID, fn func(models.Student) models.Student) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.students {
		if c.students[i].ID == studentID {
			c.students[i] = fn(c.students[i])
			return true
		}
	}
	return false
}

// SetSchedule replaces the schedule of the selected section after an edit.
func (c *Cascade) SetSchedule(schedule *models.Schedule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.section == nil {
		return
	}
	if schedule == nil {
		c.schedule, c.panel = nil, ScheduleNone
		return
	}
	s := *schedule
	c.schedule, c.panel = &s, ScheduleLoaded
}

// RemoveCertificate drops a certificate from the filtered list.
func (c *Cascade) RemoveCertificate(id models.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := []models.Certificate{}
	for _, cert := range c.certificates {
		if cert.ID != id {
			kept = append(kept, cert)
		}
	}
	c.certificates = kept
}

// Capacity returns the enrolled/available split of the selected section.
// The enrolled count comes from estudiantesInscritos when the API provides
// it, otherwise from the roster.
func (c *Cascade) Capacity() (Capacity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.section == nil {
		return Capacity{}, false
	}
	return CapacityOf(*c.section, len(c.students)), true
}

// CapacityOf splits the capacity of section given the length of its roster.
func CapacityOf(section models.Section, rosterLen int) Capacity {
	enrolled := rosterLen
	if section.EstudiantesInscritos != nil {
		enrolled = *section.EstudiantesInscritos
	}
	available := section.Capacidad - enrolled
	if available < 0 {
		available = 0
	}
	return Capacity{Inscritos: enrolled, Disponibles: available}
}

// Snapshot copies the current state.
func (c *Cascade) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		State:         c.state,
		CourseID:      c.courseID,
		Sections:      append([]models.Section{}, c.sections...),
		Students:      append([]models.Student{}, c.students...),
		SchedulePanel: c.panel,
		Enrollments:   append([]models.Enrollment{}, c.enrollments...),
		Certificates:  append([]models.Certificate{}, c.certificates...),
	}
	if c.section != nil {
		snap.SectionID = c.section.ID
		capacity := CapacityOf(*c.section, len(c.students))
		snap.Capacity = &capacity
	}
	if c.schedule != nil {
		s := *c.schedule
		snap.Schedule = &s
	}
	return snap
}
