package domain

import (
	"bytes"
	"time"

	"github.com/pkg/errors"
)

const (
	dateLayout   = "2006-01-02"
	minuteLayout = "2006-01-02T15:04Z07:00"
)

type Breach struct {
	// Name is stable and unique; use Title for display.
	Name         string    `json:"Name"`
	Title        string    `json:"Title"`
	Domain       string    `json:"Domain"`
	BreachDate   Date      `json:"BreachDate"`
	AddedDate    Timestamp `json:"AddedDate"`
	ModifiedDate Timestamp `json:"ModifiedDate"`
	PwnCount     int64     `json:"PwnCount"`
	// Description is HTML.
	Description string `json:"Description"`
	LogoPath    string `json:"LogoPath"`
	// DataClasses is alphabetical as sent by the service.
	DataClasses  []string `json:"DataClasses"`
	IsVerified   bool     `json:"IsVerified"`
	IsFabricated bool     `json:"IsFabricated"`
	IsSensitive  bool     `json:"IsSensitive"`
	IsRetired    bool     `json:"IsRetired"`
	IsSpamList   bool     `json:"IsSpamList"`
	IsMalware    bool     `json:"IsMalware"`
}

// Date is a calendar day encoded as "2006-01-02".
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return errors.Errorf("invalid date %s", b)
	}
	s := string(b[1 : len(b)-1])
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return errors.Wrapf(err, "parse date %q", s)
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// Timestamp accepts minute precision ("2013-12-04T00:00Z") as well as
// RFC 3339 and encodes back in the layout it was decoded from.
type Timestamp struct {
	time.Time
	layout string
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, layout: time.RFC3339}
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	layout := ts.layout
	if layout == "" {
		layout = time.RFC3339Nano
	}
	return []byte(`"` + ts.Format(layout) + `"`), nil
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return errors.Errorf("invalid timestamp %s", b)
	}
	s := string(b[1 : len(b)-1])
	if t, err := time.Parse(minuteLayout, s); err == nil {
		*ts = Timestamp{Time: t, layout: minuteLayout}
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return errors.Wrapf(err, "parse timestamp %q", s)
	}
	*ts = Timestamp{Time: t, layout: time.RFC3339Nano}
	return nil
}
