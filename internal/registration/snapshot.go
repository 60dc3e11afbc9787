package registration

import (
	"maps"
	"time"

	"signup/internal/notification"
)

// Snapshot is the storable form of a Form. It carries the password, so stores
// must seal it before it leaves the process.
type Snapshot struct {
	Values       map[Field]string           `json:"values"`
	Touched      map[Field]bool             `json:"touched"`
	Loading      bool                       `json:"loading"`
	LoadingUntil *time.Time                 `json:"loading_until,omitempty"`
	Notification *notification.Notification `json:"notification,omitempty"`
}

// Snapshot copies the form's state.
func (f *Form) Snapshot() Snapshot {
	s := Snapshot{
		Values:  maps.Clone(f.values),
		Touched: maps.Clone(f.touched),
		Loading: f.loading,
	}
	if f.loading && !f.loadingUntil.IsZero() {
		until := f.loadingUntil
		s.LoadingUntil = &until
	}
	if n, ok := f.notice.Current(); ok {
		s.Notification = &n
	}
	return s
}

// Restore rebuilds a Form from a snapshot. Unknown field keys are dropped and
// missing ones default to empty and untouched.
func Restore(s Snapshot) *Form {
	f := NewForm()
	for _, name := range fields {
		f.values[name] = s.Values[name]
		f.touched[name] = s.Touched[name]
	}
	f.loading = s.Loading
	if s.Loading && s.LoadingUntil != nil {
		f.loadingUntil = *s.LoadingUntil
	}
	if s.Notification != nil && s.Notification.Kind.IsValid() {
		f.notice.Show(s.Notification.Kind, s.Notification.Text)
	}
	return f
}
