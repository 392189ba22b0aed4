// Package orderform is a self-contained, mountable order intake form: a
// server-rendered page, a product search endpoint backing its device selects,
// and a submission endpoint that validates the draft and appends it to the
// configured sheet.
package orderform
