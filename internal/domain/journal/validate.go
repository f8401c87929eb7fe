package journal

import (
	"fmt"
	"sort"
	"strings"
)

const (
	maxTitleLen       = 200
	maxNameLen        = 100
	maxTagNameLen     = 50
	maxTagColorLen    = 20
	requiredMsg       = "this field is required"
	notAStringMsg     = "must be a string"
	tooLongMsgPattern = "must be at most %d characters"
)

// ValidationError carries per-field messages so API responses and push
// results can report exactly what was wrong.
type ValidationError struct {
	fields map[string]string
}

func (e *ValidationError) add(field, msg string) {
	if e.fields == nil {
		e.fields = make(map[string]string)
	}
	e.fields[field] = msg
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.fields))
	for f := range e.fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

func (e *ValidationError) FieldErrors() map[string]string {
	return e.fields
}

func (e *ValidationError) orNil() error {
	if len(e.fields) == 0 {
		return nil
	}
	return e
}

func ValidateEntry(title string) error {
	var verr ValidationError
	checkRequired(&verr, "title", title, maxTitleLen)
	return verr.orNil()
}

func ValidateCategory(name string) error {
	var verr ValidationError
	checkRequired(&verr, "name", name, maxNameLen)
	return verr.orNil()
}

func ValidateTag(name, color string) error {
	var verr ValidationError
	checkRequired(&verr, "name", name, maxTagNameLen)
	if len(color) > maxTagColorLen {
		verr.add("color", fmt.Sprintf(tooLongMsgPattern, maxTagColorLen))
	}
	return verr.orNil()
}

func checkRequired(verr *ValidationError, field, value string, maxLen int) {
	if strings.TrimSpace(value) == "" {
		verr.add(field, requiredMsg)
		return
	}
	if len(value) > maxLen {
		verr.add(field, fmt.Sprintf(tooLongMsgPattern, maxLen))
	}
}

// Payload validators check the free-form record payloads arriving over sync.
// Absent keys mean "keep the current value", so only present keys are checked.

func ValidateEntryPayload(payload map[string]any) error {
	var verr ValidationError
	if title, ok := payloadString(&verr, payload, "title"); ok {
		checkRequired(&verr, "title", title, maxTitleLen)
	}
	payloadString(&verr, payload, "content")
	return verr.orNil()
}

func ValidateCategoryPayload(payload map[string]any) error {
	var verr ValidationError
	if name, ok := payloadString(&verr, payload, "name"); ok {
		checkRequired(&verr, "name", name, maxNameLen)
	}
	payloadString(&verr, payload, "description")
	return verr.orNil()
}

func ValidateTagPayload(payload map[string]any) error {
	var verr ValidationError
	if name, ok := payloadString(&verr, payload, "name"); ok {
		checkRequired(&verr, "name", name, maxTagNameLen)
	}
	if color, ok := payloadString(&verr, payload, "color"); ok && len(color) > maxTagColorLen {
		verr.add("color", fmt.Sprintf(tooLongMsgPattern, maxTagColorLen))
	}
	return verr.orNil()
}

// Create payloads carry whole records, so the required fields must be
// present themselves.

func ValidateNewEntryPayload(payload map[string]any) error {
	var verr ValidationError
	requirePayloadField(&verr, payload, "title", maxTitleLen)
	payloadString(&verr, payload, "content")
	return verr.orNil()
}

func ValidateNewCategoryPayload(payload map[string]any) error {
	var verr ValidationError
	requirePayloadField(&verr, payload, "name", maxNameLen)
	payloadString(&verr, payload, "description")
	return verr.orNil()
}

func ValidateNewTagPayload(payload map[string]any) error {
	var verr ValidationError
	requirePayloadField(&verr, payload, "name", maxTagNameLen)
	if color, ok := payloadString(&verr, payload, "color"); ok && len(color) > maxTagColorLen {
		verr.add("color", fmt.Sprintf(tooLongMsgPattern, maxTagColorLen))
	}
	return verr.orNil()
}

func requirePayloadField(verr *ValidationError, payload map[string]any, key string, maxLen int) {
	v, ok := payload[key]
	if !ok || v == nil {
		verr.add(key, requiredMsg)
		return
	}
	s, ok := v.(string)
	if !ok {
		verr.add(key, notAStringMsg)
		return
	}
	checkRequired(verr, key, s, maxLen)
}

// payloadString reports whether the key is present with a usable string
// value; a present non-string value is recorded as a field error.
func payloadString(verr *ValidationError, payload map[string]any, key string) (string, bool) {
	v, ok := payload[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		verr.add(key, notAStringMsg)
		return "", false
	}
	return s, true
}
