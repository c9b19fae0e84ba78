package contact

// Field selects a form input.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldMessage
	fieldCount
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldEmail:
		return "Email"
	case FieldMessage:
		return "Message"
	}
	return "?"
}

// maxFieldLen caps each field so a stuck key cannot grow it forever.
const maxFieldLen = 2000

// FormState is the editable form shown in the contact panel.
type FormState struct {
	values  [fieldCount][]rune
	focus   Field
	sending bool
	status  string
	ok      bool
}

// Focus returns the field receiving input.
func (s *FormState) Focus() Field { return s.focus }

// Next moves focus to the following field, wrapping around.
func (s *FormState) Next() { s.focus = (s.focus + 1) % fieldCount }

// Prev moves focus to the previous field, wrapping around.
func (s *FormState) Prev() { s.focus = (s.focus + fieldCount - 1) % fieldCount }

// Type appends runes to the focused field. Input is ignored while a
// submission is in flight.
func (s *FormState) Type(rs ...rune) {
	if s.sending {
		return
	}
	v := s.values[s.focus]
	for _, r := range rs {
		if len(v) >= maxFieldLen {
			break
		}
		v = append(v, r)
	}
	s.values[s.focus] = v
}

// Backspace removes the last rune of the focused field.
func (s *FormState) Backspace() {
	if s.sending {
		return
	}
	if v := s.values[s.focus]; len(v) > 0 {
		s.values[s.focus] = v[:len(v)-1]
	}
}

// Value returns the text of a field.
func (s *FormState) Value(f Field) string { return string(s.values[f]) }

// Form snapshots the current values.
func (s *FormState) Form() Form {
	return Form{
		Name:    s.Value(FieldName),
		Email:   s.Value(FieldEmail),
		Message: s.Value(FieldMessage),
	}
}

// Begin marks a submission in flight. It returns false if one already is.
func (s *FormState) Begin() bool {
	if s.sending {
		return false
	}
	s.sending = true
	s.status = "Sending..."
	s.ok = false
	return true
}

// Sending reports whether a submission is in flight.
func (s *FormState) Sending() bool { return s.sending }

// Apply records the outcome. Fields are cleared only on success so a
// failed message can be retried or copied.
func (s *FormState) Apply(r Result) {
	s.sending = false
	s.status = r.Message
	s.ok = r.OK
	if r.OK {
		for i := range s.values {
			s.values[i] = nil
		}
		s.focus = FieldName
	}
}

// Status returns the last outcome message and whether it was a success.
func (s *FormState) Status() (string, bool) { return s.status, s.ok }
