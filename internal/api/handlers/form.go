package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"konnection/backend/internal/storage"
)

const dateLayout = "2006-01-02"

// Multipart form helpers. A key that is absent returns nil so handlers can
// tell "not sent" apart from "sent empty", which drives the patch semantics.

func formValue(form *multipart.Form, key string) *string {
	if form == nil {
		return nil
	}
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func formInt(form *multipart.Form, key string) (*int, error) {
	raw := formValue(form, key)
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", key, *raw)
	}
	return &v, nil
}

func formFloat(form *multipart.Form, key string) (*float64, error) {
	raw := formValue(form, key)
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", key, *raw)
	}
	return &v, nil
}

func formBool(form *multipart.Form, key string) (*bool, error) {
	raw := formValue(form, key)
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(*raw))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", key, *raw)
	}
	return &v, nil
}

func formDate(form *multipart.Form, key string) (*string, error) {
	raw := formValue(form, key)
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*raw)
	if _, err := time.Parse(dateLayout, v); err != nil {
		return nil, fmt.Errorf("invalid %s: %q, expected YYYY-MM-DD", key, v)
	}
	return &v, nil
}

// formList returns all values of a repeated key. Present-but-empty means
// "clear the set"; absent means "leave it alone".
func formList(form *multipart.Form, key string) *[]string {
	if form == nil {
		return nil
	}
	values, ok := form.Value[key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return &out
}

// formInt64List parses a repeated key of ids, also accepting comma-separated
// values within one entry.
func formInt64List(form *multipart.Form, key string) ([]int64, error) {
	if form == nil {
		return nil, nil
	}
	values, ok := form.Value[key]
	if !ok {
		return nil, nil
	}
	var out []int64
	for _, entry := range values {
		for _, part := range strings.Split(entry, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %q", key, part)
			}
			out = append(out, id)
		}
	}
	return out, nil
}

// formFiles reads the uploaded files under a key into memory.
func formFiles(form *multipart.Form, key string) ([]storage.File, error) {
	if form == nil {
		return nil, nil
	}
	headers := form.File[key]
	files := make([]storage.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file %s: %w", fh.Filename, err)
		}
		files = append(files, storage.File{Name: fh.Filename, Data: data})
	}
	return files, nil
}
