package inmemdb

import (
	"sync"

	"github.com/walimuhq/walimu/core/teacher"
)

type (
	// DB is the in-memory session store. It lives for the duration of
	// the process; there is no persistence across sessions.
	DB struct {
		teacher *teacherTable
	}

	teacherTable struct {
		sync.RWMutex
		table map[string]*teacher.Teacher
		order []string // insertion order; display order is meaningful
	}
)

func Open() *DB {
	return &DB{
		teacher: &teacherTable{table: make(map[string]*teacher.Teacher)},
	}
}

// Reset drops all rows. Tests only.
func (db *DB) Reset() {
	db.teacher.Lock()
	defer db.teacher.Unlock()
	db.teacher.table = make(map[string]*teacher.Teacher)
	db.teacher.order = nil
}
