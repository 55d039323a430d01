package inmemdb

import (
	_ "embed"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/walimuhq/walimu/core/teacher"
)

//go:embed fixtures/teachers.json
var teachersFixture []byte

// Seed loads the example roster the session starts with.
func Seed(repo teacher.Repository) error {
	var rows []teacher.Teacher
	if err := json.Unmarshal(teachersFixture, &rows); err != nil {
		return errors.Wrap(err, "unmarshalling teachers fixture")
	}

	now := time.Now().UTC()
	for _, tchr := range rows {
		tchr.CreatedAt = now
		tchr.UpdatedAt = now
		if _, err := repo.CreateTeacher(tchr); err != nil {
			return errors.Wrapf(err, "seeding teacher %q", tchr.Name)
		}
	}
	return nil
}
