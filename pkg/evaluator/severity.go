package evaluator

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

// Severity is the single ordered status scale used for every metric and for
// the overall field status. Higher is worse.
type Severity int

const (
	Excellent Severity = iota
	Good
	Monitor
	Critical
)

var severityNames = [...]string{"EXCELLENT", "GOOD", "MONITOR", "CRITICAL"}

func (s Severity) String() string {
	if s < Excellent || s > Critical {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

func (s Severity) Valid() bool { return s >= Excellent && s <= Critical }

// ParseSeverity accepts the canonical names and the older PASSED/FAILED
// vocabulary, case-insensitively.
func ParseSeverity(v string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "EXCELLENT":
		return Excellent, nil
	case "GOOD", "PASSED", "PASS":
		return Good, nil
	case "MONITOR":
		return Monitor, nil
	case "CRITICAL", "FAILED", "FAIL":
		return Critical, nil
	}
	return Excellent, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, v)
}

// Worst returns the most severe of the given statuses; Excellent when empty.
func Worst(in ...Severity) Severity {
	w := Excellent
	for _, s := range in {
		if s > w {
			w = s
		}
	}
	return w
}

func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	v, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// GormDataType stores severities as text columns.
func (Severity) GormDataType() string { return "string" }

func (s Severity) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
	return s.String(), nil
}

func (s *Severity) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	case int64:
		*s = Severity(v)
		if !s.Valid() {
			return fmt.Errorf("invalid severity %d", v)
		}
		return nil
	case nil:
		return errors.New("severity is NULL")
	}
	return fmt.Errorf("cannot scan %T into Severity", src)
}
