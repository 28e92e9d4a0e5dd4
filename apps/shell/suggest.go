package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/directory"
)

// minSimilarity is the lowest difflib ratio worth a suggestion.
var minSimilarity = 0.6

type hintError struct {
	err        error
	suggestion string
}

func (e hintError) Error() string {
	return fmt.Sprintf("%v (did you mean %q?)", e.err, e.suggestion)
}

func (e hintError) Unwrap() error {
	return e.err
}

// hint decorates an unknown student or subject error with the most similar known identifier.
func (sh *shell) hint(err error, studentID, subjectCode string) error {
	var vErr *core.ValidationError
	isRef := errors.As(err, &vErr) && errors.Is(err, core.ErrReference)

	switch {
	case errors.Is(err, directory.ErrStudentNotFound) || isRef && hasField(vErr, "student_id"):
		students, lErr := sh.book.ListStudents()
		if lErr != nil {
			return err
		}
		ids := make([]string, 0, len(students))
		for _, s := range students {
			ids = append(ids, s.ID)
		}
		return withSuggestion(err, studentID, ids)
	case errors.Is(err, directory.ErrSubjectNotFound) || isRef && hasField(vErr, "subject_code"):
		subjects, lErr := sh.book.ListSubjects()
		if lErr != nil {
			return err
		}
		codes := make([]string, 0, len(subjects))
		for _, s := range subjects {
			codes = append(codes, s.Code)
		}
		return withSuggestion(err, subjectCode, codes)
	}
	return err
}

func hasField(vErr *core.ValidationError, field string) bool {
	for _, fErr := range vErr.Fields {
		if fErr.Field == field {
			return true
		}
	}
	return false
}

func withSuggestion(err error, name string, candidates []string) error {
	if match, ok := closest(name, candidates); ok {
		return hintError{err: err, suggestion: match}
	}
	return err
}

// closest returns the candidate most similar to name (case-insensitive), if it is similar enough.
func closest(name string, candidates []string) (string, bool) {
	name = strings.ToLower(core.CleanString(name))
	if name == "" {
		return "", false
	}

	var best string
	var bestRatio float64
	for _, c := range candidates {
		ratio := difflib.NewMatcher(strings.Split(name, ""), strings.Split(strings.ToLower(c), "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = c, ratio
		}
	}
	return best, bestRatio >= minSimilarity
}
