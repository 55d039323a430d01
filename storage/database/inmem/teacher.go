package inmemdb

import (
	"strings"

	"github.com/google/uuid"

	"github.com/walimuhq/walimu/core/teacher"
)

type teacherRepository struct {
	db *teacherTable
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db.teacher}
}

// query returns copies of all rows in insertion order.
func (repo *teacherRepository) query() []teacher.Teacher {
	teachers := make([]teacher.Teacher, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		if tchr, ok := repo.db.table[id]; ok {
			teachers = append(teachers, copyTeacher(tchr))
		}
	}
	return teachers
}

func (repo *teacherRepository) CreateTeacher(tchr teacher.Teacher) (teacher.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	// uuid: collision-free, never reused
	tchr.ID = uuid.New().String()
	stored := copyTeacher(&tchr)
	repo.db.table[tchr.ID] = &stored
	repo.db.order = append(repo.db.order, tchr.ID)
	return tchr, nil
}

func (repo *teacherRepository) QueryAllTeachers() ([]teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *teacherRepository) GetTeacherByID(id string) (teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if tchr, ok := repo.db.table[id]; ok {
		return copyTeacher(tchr), nil
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) FilterTeachers(filter teacher.QueryFilter) ([]teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	teachers := repo.query()

	// teachers with search keyword matching any Name, Subject or Email ?
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		var filtered []teacher.Teacher
		for _, t := range teachers {
			if strings.Contains(strings.ToLower(t.Name), search) ||
				strings.Contains(strings.ToLower(t.Subject), search) ||
				strings.Contains(strings.ToLower(t.Email), search) {
				filtered = append(filtered, t)
			}
		}
		teachers = filtered
	}
	if teachers != nil && filter.Status != "" {
		var filtered []teacher.Teacher
		for _, t := range teachers {
			if t.Status == filter.Status {
				filtered = append(filtered, t)
			}
		}
		teachers = filtered
	}

	return teachers, nil
}

func (repo *teacherRepository) UpdateTeacher(tchr teacher.Teacher) (teacher.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	origTchr, ok := repo.db.table[tchr.ID]
	if !ok {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	tchr.CreatedAt = origTchr.CreatedAt // immutable
	stored := copyTeacher(&tchr)
	repo.db.table[tchr.ID] = &stored
	return tchr, nil
}

func (repo *teacherRepository) DeleteTeachersByID(ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		if _, ok := repo.db.table[id]; !ok {
			return teacher.ErrNotFound
		}
	}
	for _, id := range ids {
		delete(repo.db.table, id)
		for i, oid := range repo.db.order {
			if oid == id {
				repo.db.order = append(repo.db.order[:i], repo.db.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

// copyTeacher returns a value copy that shares no memory with the
// stored row, so callers never hold a mutable reference into the store.
func copyTeacher(tchr *teacher.Teacher) teacher.Teacher {
	cp := *tchr
	if tchr.Classes != nil {
		cp.Classes = make([]string, len(tchr.Classes))
		copy(cp.Classes, tchr.Classes)
	}
	return cp
}
