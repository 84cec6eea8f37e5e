package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SubjectID identifies a tracked employee. Clients send it either as a JSON
// number or as a numeric string; both decode to the same value.
type SubjectID int64

// ParseSubjectID parses a path or query value into a SubjectID
func ParseSubjectID(s string) (SubjectID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid user id %q", ErrValidation, s)
	}
	return SubjectID(id), nil
}

// UnmarshalJSON accepts 7, 7.0 and "7"
func (id *SubjectID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	if v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
		*id = SubjectID(v)
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f != float64(int64(f)) {
		return fmt.Errorf("invalid user id %s", data)
	}
	*id = SubjectID(int64(f))
	return nil
}

func (id SubjectID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
