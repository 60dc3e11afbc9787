package registration

import (
	"signup/internal/notification"
)

// View is the render model for one form: what the page or API client needs to
// draw inputs, inline errors, the submit control and the notification region.
// The password value is never included.
type View struct {
	Values       map[Field]string           `json:"values"`
	Touched      map[Field]bool             `json:"touched"`
	Errors       map[Field]string           `json:"errors"`
	Valid        map[Field]bool             `json:"valid"`
	FormValid    bool                       `json:"form_valid"`
	Loading      bool                       `json:"loading"`
	CanSubmit    bool                       `json:"can_submit"`
	SubmitLabel  string                     `json:"submit_label"`
	Notification *notification.Notification `json:"notification"`
}

// View derives the render model from the current state.
func (f *Form) View() View {
	v := View{
		Values:      make(map[Field]string, len(fields)),
		Touched:     make(map[Field]bool, len(fields)),
		Errors:      make(map[Field]string),
		Valid:       make(map[Field]bool, len(fields)),
		FormValid:   f.IsFormValid(),
		Loading:     f.loading,
		CanSubmit:   f.CanSubmit(),
		SubmitLabel: f.SubmitLabel(),
	}
	for _, name := range fields {
		if name != FieldPassword {
			v.Values[name] = f.values[name]
		}
		v.Touched[name] = f.touched[name]
		v.Valid[name] = f.IsFieldValid(name)
		if msg := f.InlineError(name); msg != "" {
			v.Errors[name] = msg
		}
	}
	if n, ok := f.notice.Current(); ok {
		v.Notification = &n
	}
	return v
}
