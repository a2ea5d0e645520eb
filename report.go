// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendersys

import (
	"fmt"
	"strings"
)

// unspecifiedError replaces an empty message on a report marked as failed.
const unspecifiedError = "unspecified error"

// Report is a success/failure message cell.
//
// The zero value is an empty report. All methods are safe to call on a nil
// *Report; a nil report silently drops everything written to it, which lets
// callers pass nil when they do not want diagnostics.
type Report struct {
	text      string
	hasErrors bool
}

// Reset overwrites the report with text. If hasErrors is true and text is
// empty, the text is replaced with a generic message so that a failed report
// never has an empty message.
func (r *Report) Reset(text string, hasErrors bool) {
	if r == nil {
		return
	}
	if hasErrors && text == "" {
		text = unspecifiedError
	}
	r.text = text
	r.hasErrors = hasErrors
}

// Printf appends a formatted line without changing the error flag.
func (r *Report) Printf(format string, args ...any) {
	if r == nil {
		return
	}
	r.appendLine(fmt.Sprintf(format, args...))
}

// Errorf appends a formatted line and marks the report as failed.
func (r *Report) Errorf(format string, args ...any) {
	if r == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		msg = unspecifiedError
	}
	r.appendLine(msg)
	r.hasErrors = true
}

func (r *Report) appendLine(line string) {
	if r.text != "" && !strings.HasSuffix(r.text, "\n") {
		r.text += "\n"
	}
	r.text += line
}

// Text returns the report message. It is empty for a report that has never
// been written.
func (r *Report) Text() string {
	if r == nil {
		return ""
	}
	return r.text
}

// HasErrors reports whether the report has been marked as failed.
func (r *Report) HasErrors() bool {
	return r != nil && r.hasErrors
}

// IsEmpty reports whether the report carries neither text nor an error.
func (r *Report) IsEmpty() bool {
	return r == nil || (r.text == "" && !r.hasErrors)
}

// String implements fmt.Stringer.
func (r *Report) String() string {
	if r.HasErrors() {
		return "error: " + r.Text()
	}
	return r.Text()
}
