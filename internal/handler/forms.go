package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"nebulanotes/internal/service"
)

const (
	maxFormMemory = 1 << 20
	// multipartOverhead is allowed on top of a file limit for the other
	// form fields and part headers.
	multipartOverhead = 1 << 20
	adminHome         = "/admin"
)

var errFileTooLarge = errors.New("file too large")

// decodeForm copies trimmed form values into the string fields of dst
// that carry a `form` tag. dst must be a pointer to a struct.
func decodeForm(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode form: %T is not a struct pointer", dst)
	}
	v = v.Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("form")
		if name == "" || field.Type.Kind() != reflect.String {
			continue
		}
		v.Field(i).SetString(strings.TrimSpace(r.PostFormValue(name)))
	}

	return nil
}

// bindForm decodes and validates a form input. Any failure is reported as
// service.ErrValidation.
func (h *Handlers) bindForm(r *http.Request, dst any) error {
	if err := decodeForm(r, dst); err != nil {
		return fmt.Errorf("%w: %v", service.ErrValidation, err)
	}
	if err := h.Validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", service.ErrValidation, err)
	}
	return nil
}

// parseIndex reads the "index" field, which must be a plain integer.
func parseIndex(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PostFormValue("index"))
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", service.ErrValidation, raw)
	}
	return index, nil
}

// readUpload reads the multipart file field. A missing field yields an
// empty upload; a body or file larger than limit yields errFileTooLarge.
func readUpload(w http.ResponseWriter, r *http.Request, field string, limit int64) (service.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			return service.Upload{}, errFileTooLarge
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return service.Upload{}, nil
		}
		return service.Upload{}, fmt.Errorf("parse multipart form: %w", err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return service.Upload{}, nil
		}
		return service.Upload{}, fmt.Errorf("read form file: %w", err)
	}
	defer file.Close()

	if header.Size > limit {
		return service.Upload{}, errFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return service.Upload{}, fmt.Errorf("read form file: %w", err)
	}
	if int64(len(data)) > limit {
		return service.Upload{}, errFileTooLarge
	}

	return service.Upload{FileName: header.Filename, Data: data}, nil
}

// resolveReturnTo only honours targets inside the admin area.
func resolveReturnTo(value string) string {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, adminHome) {
		return value
	}
	return adminHome
}

// withQuery appends key=value using "?" or "&" as needed.
func withQuery(target, key, value string) string {
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + url.QueryEscape(key) + "=" + url.QueryEscape(value)
}

func redirectWith(w http.ResponseWriter, r *http.Request, target, key, value string) {
	http.Redirect(w, r, withQuery(target, key, value), http.StatusSeeOther)
}
