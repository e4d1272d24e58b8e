package resp

import "strings"

// ReplyError is an error reply sent by the server, e.g. in response to a
// command used on the wrong type of key.
//
// The code is the leading space-delimited word of the reply, by Redis
// convention an upper-case identifier like ERR or WRONGTYPE. Message holds
// the rest of the reply text, without the code.
type ReplyError struct {
	Code    string
	Message string
}

// newReplyError splits the raw text of an error reply into code and message.
func newReplyError(raw []byte) *ReplyError {
	code, msg, _ := strings.Cut(string(raw), " ")
	return &ReplyError{Code: code, Message: msg}
}

// Error implements the error interface.
func (e *ReplyError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + " " + e.Message
}

// Unwrap returns ErrReply so that errors.Is(err, ErrReply) matches any reply error.
func (e *ReplyError) Unwrap() error {
	return ErrReply
}
