package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// window reads start/end from q, defaulting each side to def.
func window(op string, q url.Values, defStart, defEnd time.Time) (time.Time, time.Time, error) {
	start, err := dateParam(op, q, "start", defStart)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := dateParam(op, q, "end", defEnd)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, WrapKind(op, ErrBadRequest, fmt.Errorf("end %s before start %s",
			end.Format(dateLayout), start.Format(dateLayout)))
	}
	return start, end, nil
}

func dateParam(op string, q url.Values, key string, def time.Time) (time.Time, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, WrapKind(op, ErrBadRequest, fmt.Errorf("%s must be YYYY-MM-DD", key))
	}
	return t, nil
}

func boolParam(op string, q url.Values, key string, def bool) (bool, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, WrapKind(op, ErrBadRequest, fmt.Errorf("%s must be a boolean", key))
	}
	return v, nil
}

func nameParams(op string, q url.Values, firstKey, lastKey string) (string, string, error) {
	first := strings.TrimSpace(q.Get(firstKey))
	last := strings.TrimSpace(q.Get(lastKey))
	if first == "" || last == "" {
		return "", "", WrapKind(op, ErrBadRequest, fmt.Errorf("missing %s or %s", firstKey, lastKey))
	}
	return first, last, nil
}
