// Package apperr defines the error taxonomy shared by the bookmark services.
//
// Every failure surfaced to a caller is classified into one of a small set of
// kinds so the HTTP layer can answer consistently:
//
//   - Validation: a required field is missing or the payload has the wrong shape.
//   - NotFound: a referenced id does not resolve in the store.
//   - Protected: the operation targets one of the permanent root containers.
//   - TypeMismatch: a folder was expected but a link was found, or vice versa.
//   - Store: the underlying store call itself failed.
//
// # Usage
//
//	if title == "" {
//	    return apperr.Validation("createFolder", "title is required")
//	}
//
//	if apperr.IsKind(err, apperr.KindNotFound) {
//	    // ...
//	}
package apperr
