package dto

import (
	"bytes"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day serialized as "2006-01-02".
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("date must be a string in %s format", DateLayout)
	}
	t, err := time.Parse(DateLayout, string(b[1:len(b)-1]))
	if err != nil {
		return fmt.Errorf("date must be in %s format", DateLayout)
	}
	d.Time = t
	return nil
}

func datePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}
