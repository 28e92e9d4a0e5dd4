// Package inmemdb keeps the gradebook tables in process memory. Everything is lost on exit.
package inmemdb

import (
	"sync"

	"github.com/trezcool/gradebook/core/directory"
	"github.com/trezcool/gradebook/core/grade"
)

type (
	DB struct {
		student *studentTable
		subject *subjectTable
		grade   *gradeTable
	}

	// studentTable & subjectTable remember insertion order in `keys`.
	studentTable struct {
		sync.RWMutex
		table map[string]*directory.Student
		keys  []string
	}

	subjectTable struct {
		sync.RWMutex
		table map[string]*directory.Subject
		keys  []string
	}

	// gradeTable is indexed as {studentID: {subjectCode: Grade}}.
	gradeTable struct {
		sync.RWMutex
		table map[string]map[string]*grade.Grade
	}
)

func Open() (*DB, error) {
	db := &DB{
		student: &studentTable{table: make(map[string]*directory.Student)},
		subject: &subjectTable{table: make(map[string]*directory.Subject)},
		grade:   &gradeTable{table: make(map[string]map[string]*grade.Grade)},
	}
	return db, nil
}

// removeKey deletes the first occurrence of key from keys, preserving order.
func removeKey(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}
