// Package vcf is the adapter between the shell and the vCard engine
// (github.com/emersion/go-vcard).
//
// # Handles
//
// Every card the shell touches is an opaque *Card issued by an Adapter. A
// handle must be released exactly once by the code that obtained it; the
// Adapter keeps a count of live handles (Adapter.Live) so tests can assert
// that no path leaks one. Use is the scope guard all callers go through:
//
//	err := a.Use(func() (*vcf.Card, error) { return a.ParseFile(path) },
//	    func(c *vcf.Card) error {
//	        if err := a.EditName(c, name); err != nil {
//	            return err
//	        }
//	        return a.WriteToFile(path, c)
//	    })
//
// # Errors
//
// Failures wrap the sentinels of internal/common (ErrParse, ErrValidation,
// ErrCreation, ErrEdit, ErrWrite). An operation that fails while creating a
// handle never leaves one live.
//
// An Adapter is owned by the UI goroutine and is not safe for concurrent use.
package vcf
