package web

import "net/http"

// formConfirmer answers a confirmation from the submitted form. The first
// submission carries no answer; the rendered dialog re-posts with confirm=yes.
type formConfirmer struct {
	confirmed bool
	asked     string
}

func newFormConfirmer(r *http.Request) *formConfirmer {
	return &formConfirmer{confirmed: r.PostFormValue("confirm") == "yes"}
}

func (f *formConfirmer) Confirm(message string) bool {
	f.asked = message
	return f.confirmed
}

// pending reports whether the user still has to answer the question.
func (f *formConfirmer) pending() bool {
	return f.asked != "" && !f.confirmed
}
